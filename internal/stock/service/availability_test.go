package service

import (
	"testing"

	"pipe-stock/internal/stock/model"
)

func TestTonsKgRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1.234, 2, 17.75} {
		if got := KgToTons(TonsToKg(v)); got != v {
			t.Fatalf("%v: got %v", v, got)
		}
	}
	if TonsToKg(2) != 2000 {
		t.Fatal("2 t != 2000 kg")
	}
}

func TestVerdictFor(t *testing.T) {
	cases := []struct {
		avail     float64
		requested int
		massKnown bool
		want      model.Verdict
	}{
		{0, 0, true, model.NotAvailable},
		{0, 5, true, model.NotAvailable},
		{10, 5, false, model.NotAvailable},
		{10, 10, true, model.Available},
		{10, 0, true, model.Available},
		{9, 10, true, model.Low},
	}
	for _, c := range cases {
		if got := VerdictFor(c.avail, c.requested, c.massKnown); got != c.want {
			t.Fatalf("%+v: got %s", c, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	mass := 3.0144

	a := Evaluate(2, model.UnitTons, &mass, 500)
	if a.Pieces != 663 || a.Verdict != model.Available {
		t.Fatalf("a=%+v", a)
	}
	if a.StockKg == nil || *a.StockKg != 2000 {
		t.Fatalf("stock kg=%v", a.StockKg)
	}
	if a.Remaining == nil || *a.Remaining != 163 {
		t.Fatalf("remaining=%v", a.Remaining)
	}

	a = Evaluate(2, model.UnitTons, &mass, 700)
	if a.Verdict != model.Low || a.Remaining != nil {
		t.Fatalf("a=%+v", a)
	}

	a = Evaluate(2000, model.UnitKg, &mass, 1)
	if a.Pieces != 663 {
		t.Fatalf("kg pieces=%v", a.Pieces)
	}

	a = Evaluate(0, model.UnitTons, &mass, 0)
	if a.Verdict != model.NotAvailable || a.Pieces != 0 {
		t.Fatalf("zero stock a=%+v", a)
	}

	a = Evaluate(-3, model.UnitTons, &mass, 1)
	if a.StockRaw != 0 || a.Verdict != model.NotAvailable {
		t.Fatalf("negative stock a=%+v", a)
	}

	a = Evaluate(2, model.UnitTons, nil, 1)
	if a.Verdict != model.NotAvailable || a.Pieces != 0 {
		t.Fatalf("no mass a=%+v", a)
	}
}

func TestEvaluatePiecesNeedNoMass(t *testing.T) {
	a := Evaluate(12.7, model.UnitPieces, nil, 10)
	if a.Pieces != 12 || a.Verdict != model.Available || *a.Remaining != 2 {
		t.Fatalf("a=%+v", a)
	}
	if a.StockKg != nil {
		t.Fatalf("stock kg without mass: %v", *a.StockKg)
	}
	mass := 2.5
	a = Evaluate(4, model.UnitPieces, &mass, 5)
	if a.Verdict != model.Low || a.StockKg == nil || *a.StockKg != 10 {
		t.Fatalf("a=%+v", a)
	}
}
