package utils

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain", input: "2", want: 2, ok: true},
		{name: "decimal dot", input: "1.6", want: 1.6, ok: true},
		{name: "decimal comma", input: "1,6", want: 1.6, ok: true},
		{name: "comma thousands", input: "1,234.5", want: 1234.5, ok: true},
		{name: "european", input: "1.234,5", want: 1234.5, ok: true},
		{name: "nbsp", input: "2\u00A0345,6", want: 2345.6, ok: true},
		{name: "unit suffix", input: "2.5 MT", want: 2.5, ok: true},
		{name: "parens negative", input: "(3)", want: -3, ok: true},
		{name: "empty", input: "  ", ok: false},
		{name: "text", input: "n/a", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseNumber(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok=%v want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFirstNumber(t *testing.T) {
	cases := map[string]float64{
		"1.6":        1.6,
		"Thk 1,6 mm": 1.6,
		"2.0 MM":     2,
		"t=3":        3,
	}
	for in, want := range cases {
		got, ok := FirstNumber(in)
		if !ok || got != want {
			t.Fatalf("%q: got %v,%v want %v", in, got, ok, want)
		}
	}
	if _, ok := FirstNumber("Pipe Category"); ok {
		t.Fatal("expected no number")
	}
}
