package table

import (
	"errors"
	"testing"

	"pipe-stock/internal/stock/model"
)

func TestScanHeader(t *testing.T) {
	header := []string{"Sr No", "Pipe Category in  NB or  OD or mm", "1.2", "1.6 mm", "Thk 2,0", "Remarks"}
	cols := ScanHeader(header, Layout{})
	if len(cols.Labels) != 1 || cols.Labels[0] != 1 {
		t.Fatalf("labels=%v", cols.Labels)
	}
	want := map[int]float64{2: 1.2, 3: 1.6, 4: 2.0}
	if len(cols.Thickness) != len(want) {
		t.Fatalf("thickness=%v", cols.Thickness)
	}
	for i, v := range want {
		if cols.Thickness[i] != v {
			t.Fatalf("col %d: got %v want %v", i, cols.Thickness[i], v)
		}
	}
	if cols.Value != -1 {
		t.Fatalf("value=%d", cols.Value)
	}
}

func TestScanHeaderFlat(t *testing.T) {
	cols := ScanHeader([]string{"Pipe Category", "Location", "Stock (MT)"}, Layout{})
	if cols.Value != 2 {
		t.Fatalf("value=%d", cols.Value)
	}
	if len(cols.Labels) != 1 || cols.Labels[0] != 0 {
		t.Fatalf("labels=%v", cols.Labels)
	}
}

func TestReshapeWide(t *testing.T) {
	rows := [][]string{
		{"Strip width chart", "", ""},
		{"Pipe Category", "1.2", "1.6"},
		{"40x40", "38", "40"},
		{"25 NB", "", "52"},
		{"Pipe Category", "1.2", "1.6"},
		{"", "10", "11"},
	}
	recs, err := Reshape(rows, Layout{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("len=%d: %+v", len(recs), recs)
	}
	if recs[0].Labels[0] != "40x40" || *recs[0].Thickness != 1.2 || recs[0].Value != 38 {
		t.Fatalf("unexpected first record %+v", recs[0])
	}
	if recs[2].Labels[0] != "25 NB" || *recs[2].Thickness != 1.6 || recs[2].Value != 52 {
		t.Fatalf("unexpected last record %+v", recs[2])
	}
}

func TestReshapeMultipleNotations(t *testing.T) {
	rows := [][]string{
		{"NB", "OD", "2.0"},
		{"25 NB", "33.7 OD", "1.5"},
	}
	recs, err := Reshape(rows, Layout{HeaderRow: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || len(recs[0].Labels) != 2 || recs[0].Labels[1] != "33.7 OD" {
		t.Fatalf("unexpected %+v", recs)
	}
}

func TestReshapeErrors(t *testing.T) {
	_, err := Reshape([][]string{{"foo", "bar"}, {"a", "b"}}, Layout{HeaderRow: 1})
	if !errors.Is(err, ErrNoCategoryColumn) {
		t.Fatalf("got %v", err)
	}
	_, err = Reshape([][]string{{"Pipe", "Remarks"}, {"a", "b"}}, Layout{HeaderRow: 1, Value: "stock"})
	if !errors.Is(err, ErrNoValueColumns) {
		t.Fatalf("got %v", err)
	}
	if _, err := Reshape([][]string{{"Pipe"}}, Layout{HeaderRow: 3}); err == nil {
		t.Fatal("expected error for header beyond rows")
	}
}

func TestGroupStockSumsDuplicates(t *testing.T) {
	t16 := 1.6
	recs := []model.Record{
		{Labels: []string{"40x40"}, Thickness: &t16, Value: 2},
		{Labels: []string{"40 X 40"}, Thickness: &t16, Value: 1},
		{Labels: []string{"25 NB"}, Value: 3},
	}
	rows := GroupStock(recs)
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if v, ok := rows[0].Lookup(1.6); !ok || v != 3 {
		t.Fatalf("got %v,%v want 3", v, ok)
	}
	if rows[0].Category != "40x40" {
		t.Fatalf("category=%q", rows[0].Category)
	}
	if !rows[1].IsFlat() || *rows[1].Flat != 3 {
		t.Fatalf("flat row lost: %+v", rows[1])
	}
}

func TestGroupReferenceSortsAndKeepsFirst(t *testing.T) {
	t12, t16, t20 := 1.2, 1.6, 2.0
	recs := []model.Record{
		{Labels: []string{"40x40"}, Thickness: &t20, Value: 41},
		{Labels: []string{"40x40"}, Thickness: &t12, Value: 38},
		{Labels: []string{"40x40"}, Thickness: &t16, Value: 40},
		{Labels: []string{"40x40"}, Thickness: &t16, Value: 99},
	}
	rows := GroupReference(recs, model.KindWidth)
	if len(rows) != 1 || rows[0].Kind != model.KindWidth {
		t.Fatalf("unexpected %+v", rows)
	}
	got := rows[0].Thicknesses()
	if len(got) != 3 || got[0] != 1.2 || got[1] != 1.6 || got[2] != 2.0 {
		t.Fatalf("thicknesses=%v", got)
	}
	if v, _ := rows[0].Lookup(1.6); v != 40 {
		t.Fatalf("got %v want 40", v)
	}
}
