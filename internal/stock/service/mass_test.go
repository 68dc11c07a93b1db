package service

import (
	"errors"
	"math"
	"testing"
)

func TestStripMass(t *testing.T) {
	m, err := StripMass(DefaultMassFactor, 40, 1.6)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m-3.0144) > 1e-9 {
		t.Fatalf("m=%v", m)
	}
	for _, c := range [][3]float64{{0, 40, 1.6}, {0.0471, 0, 1.6}, {0.0471, 40, -1}} {
		if _, err := StripMass(c[0], c[1], c[2]); !errors.Is(err, ErrMassUnavailable) {
			t.Fatalf("%v: err=%v", c, err)
		}
	}
}

func TestStripMassMonotonic(t *testing.T) {
	prev := 0.0
	for _, th := range []float64{1.2, 1.6, 2.0, 2.5, 3.2} {
		m, err := StripMass(DefaultMassFactor, 40, th)
		if err != nil {
			t.Fatal(err)
		}
		if m <= prev {
			t.Fatalf("thickness %v: %v <= %v", th, m, prev)
		}
		prev = m
	}
}

func TestMassFactorFor(t *testing.T) {
	if k := MassFactorFor(DefaultDensity, DefaultLength); math.Abs(k-DefaultMassFactor) > 1e-12 {
		t.Fatalf("k=%v", k)
	}
	if k := MassFactorFor(7850, 12); math.Abs(k-0.0942) > 1e-12 {
		t.Fatalf("k=%v", k)
	}
}
