package pagination

import (
	"math"
	"testing"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit, got %d", got)
	}
	if got := NormalizeLimit(5); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := NormalizeLimitWith(0, 20, 50); got != 20 {
		t.Fatalf("expected custom default, got %d", got)
	}
}

func TestResolve(t *testing.T) {
	w := Resolve(Params{Page: 1, Limit: 2}, 6)
	if w.Start != 0 || w.End != 2 {
		t.Fatalf("unexpected first window %+v", w)
	}
	w = Resolve(Params{Page: 3, Limit: 2}, 6)
	if w.Start != 4 || w.End != 6 {
		t.Fatalf("unexpected last window %+v", w)
	}
	w = Resolve(Params{Page: 4, Limit: 2}, 6)
	if w.Start != 6 || w.End != 6 {
		t.Fatalf("past-the-end page should be empty, got %+v", w)
	}
	w = Resolve(Params{Page: 0, Limit: 5}, 3)
	if w.Page != 1 || w.Start != 0 || w.End != 3 {
		t.Fatalf("page 0 should clamp to first page, got %+v", w)
	}
}

func TestResolveHugePageIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt/12 + 5, math.MaxInt} {
		w := Resolve(Params{Page: page, Limit: 12}, 6)
		if w.Start != 6 || w.End != 6 {
			t.Fatalf("page %d: expected empty window at the end, got %+v", page, w)
		}
	}
	w := ResolveWith(Params{Page: 2, Limit: math.MaxInt}, 6, 12, math.MaxInt)
	if w.Start != 6 || w.End != 6 {
		t.Fatalf("huge limit: expected empty second page, got %+v", w)
	}
	w = ResolveWith(Params{Page: 1, Limit: math.MaxInt}, 6, 12, math.MaxInt)
	if w.Start != 0 || w.End != 6 {
		t.Fatalf("huge limit: expected whole collection on first page, got %+v", w)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{6, 2, 3},
		{7, 2, 4},
		{0, 12, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d)=%d want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
