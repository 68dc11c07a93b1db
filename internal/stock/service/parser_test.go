package service

import (
	"testing"

	"pipe-stock/internal/stock/model"
)

func TestParseQuery(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	cases := []struct {
		in        string
		category  string
		notation  model.Notation
		thickness *float64
		mass      *float64
		qty       *int
	}{
		{"40x40 1.6mm", "40x40", model.NotationMM, f(1.6), nil, nil},
		{"2x2,18kg", "2x2", model.NotationMM, nil, f(18), nil},
		{"25 NB 3kg", "25 NB", model.NotationNB, nil, f(3), nil},
		{`0.75" 1.2mm`, `0.75"`, model.NotationInch, f(1.2), nil, nil},
		{`3/4"`, `0.75"`, model.NotationInch, nil, nil, nil},
		{`1 1/4 inch 2mm`, `1.25"`, model.NotationInch, f(2), nil, nil},
		{"40x40x1.6", "40x40", model.NotationMM, f(1.6), nil, nil},
		{"40 × 40 1.6 500", "40x40", model.NotationMM, f(1.6), nil, n(500)},
		{"500 pcs 40x40 2mm", "40x40", model.NotationMM, f(2), nil, n(500)},
		{"48.3 OD 2.5mm", "48.3 OD", model.NotationOD, f(2.5), nil, nil},
		{"NB 25", "25 NB", model.NotationNB, nil, nil, nil},
		{"Black ERW", "black erw", model.NotationText, nil, nil, nil},
	}
	for _, c := range cases {
		q := ParseQuery(c.in)
		if q.Category != c.category || q.Notation != c.notation {
			t.Fatalf("%q: category=%q notation=%q", c.in, q.Category, q.Notation)
		}
		if !eqFloat(q.Thickness, c.thickness) {
			t.Fatalf("%q: thickness=%v want %v", c.in, deref(q.Thickness), deref(c.thickness))
		}
		if !eqFloat(q.Mass, c.mass) {
			t.Fatalf("%q: mass=%v want %v", c.in, deref(q.Mass), deref(c.mass))
		}
		if (q.Qty == nil) != (c.qty == nil) || (q.Qty != nil && *q.Qty != *c.qty) {
			t.Fatalf("%q: qty=%v want %v", c.in, q.Qty, c.qty)
		}
		if q.Raw != c.in {
			t.Fatalf("raw=%q", q.Raw)
		}
	}
}

func TestParseQueryKeepsThicknessWithMass(t *testing.T) {
	q := ParseQuery("25 NB 3kg 3.2mm")
	if q.Mass == nil || *q.Mass != 3 {
		t.Fatalf("mass=%v", q.Mass)
	}
	if q.Thickness == nil || *q.Thickness != 3.2 {
		t.Fatalf("thickness=%v", q.Thickness)
	}
}

func TestParseQueryEmpty(t *testing.T) {
	q := ParseQuery("")
	if q.Category != "" || q.Thickness != nil || q.Mass != nil {
		t.Fatalf("unexpected %+v", q)
	}
}

func TestFoldCategory(t *testing.T) {
	cases := map[string]string{
		"40 X 40":  "40 x 40",
		"40×40.00": "40x40",
		`3/4"`:     `0.75"`,
		`1 1/2"`:   `1.5"`,
		"2 inch":   `2"`,
		"25  NB":   "25 nb",
		"1.60":     "1.6",
		"４０x４０":    "40x40",
		"40*40":    "40x40",
	}
	for in, want := range cases {
		if got := foldCategory(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestSplitToken(t *testing.T) {
	got := splitToken(`25 NB / 1" pipe`)
	want := []string{"25", "1"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	d := *a - *b
	return d < 1e-9 && d > -1e-9
}

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
