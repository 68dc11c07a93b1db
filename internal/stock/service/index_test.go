package service

import (
	"testing"

	"pipe-stock/internal/stock/model"
)

func TestIndexMatch(t *testing.T) {
	idx := NewIndex([][]string{
		{"40x40", `1.5"`},
		{"25 NB", `1"`},
		{"40x80"},
	}, false, DefaultFuzzyThreshold)

	cases := []struct {
		token  string
		row    int
		method model.MatchMethod
	}{
		{"40x40", 0, model.MatchExact},
		{"40 X 40", 0, model.MatchExact},
		{"25nb", 1, model.MatchExact},
		{`1 1/2"`, 0, model.MatchExact},
		{"40x8", 2, model.MatchContains},
		{"40/60", 0, model.MatchSplit},
	}
	for _, c := range cases {
		h, ok := idx.Match(c.token)
		if !ok {
			t.Fatalf("%q: not found", c.token)
		}
		if h.Row != c.row || h.Method != c.method {
			t.Fatalf("%q: row=%d method=%s", c.token, h.Row, h.Method)
		}
	}
	if _, ok := idx.Match("zznotfound"); ok {
		t.Fatal("zznotfound must not match")
	}
	if _, ok := idx.Match(""); ok {
		t.Fatal("empty token must not match")
	}
}

func TestIndexFirstRowWins(t *testing.T) {
	idx := NewIndex([][]string{{"40x40"}, {"40 x 40"}}, false, DefaultFuzzyThreshold)
	h, ok := idx.Match("40x40")
	if !ok || h.Row != 0 {
		t.Fatalf("hit=%+v ok=%v", h, ok)
	}
}

func TestIndexFuzzy(t *testing.T) {
	labels := [][]string{{"black"}, {"galvanized"}}
	if _, ok := NewIndex(labels, false, 0.75).Match("blak"); ok {
		t.Fatal("fuzzy disabled must not match")
	}
	h, ok := NewIndex(labels, true, 0.75).Match("blak")
	if !ok || h.Row != 0 || h.Method != model.MatchFuzzy || h.Score == nil {
		t.Fatalf("hit=%+v ok=%v", h, ok)
	}
	if _, ok := NewIndex(labels, true, 0.95).Match("blak"); ok {
		t.Fatal("score below threshold must not match")
	}
}

func TestIndexMatchAll(t *testing.T) {
	idx := NewIndex([][]string{{"40x40"}, {"25 NB"}, {"40x40 galv"}}, false, DefaultFuzzyThreshold)
	got := idx.MatchAll("40x40")
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
	if got := idx.MatchAll("zz"); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestSimilarity(t *testing.T) {
	if s := similarity("abc", "abc"); s != 1 {
		t.Fatalf("s=%v", s)
	}
	if s := similarity("ab", "ba"); s != 0.5 {
		t.Fatalf("transposition s=%v", s)
	}
	if s := similarity("", "x"); s != 0 {
		t.Fatalf("s=%v", s)
	}
}
