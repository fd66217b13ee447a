package models

import (
	"testing"
)

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("parse range %s..%s: %v", start, end, err)
	}
	return r
}

func TestParseDateRange(t *testing.T) {
	r := mustRange(t, "2024-01-01", "2024-01-15")
	if r.String() != "2024-01-01..2024-01-15" {
		t.Fatalf("unexpected range string: %s", r.String())
	}

	if _, err := ParseDateRange("2024-01-15", "2024-01-01"); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := ParseDateRange("", "2024-01-01"); err == nil {
		t.Fatal("expected error for missing start")
	}
	if _, err := ParseDateRange("01/02/2024", "2024-01-01"); err == nil {
		t.Fatal("expected error for bad layout")
	}
}

func TestRelate(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want RangeRelation
	}{
		{"equal", mustRange(t, "2024-01-01", "2024-01-15"), mustRange(t, "2024-01-01", "2024-01-15"), RangeEqual},
		{"single day equal", mustRange(t, "2024-01-01", "2024-01-01"), mustRange(t, "2024-01-01", "2024-01-01"), RangeEqual},
		{"contained", mustRange(t, "2024-01-05", "2024-01-10"), mustRange(t, "2024-01-01", "2024-01-15"), RangeContained},
		{"contained shared start", mustRange(t, "2024-01-01", "2024-01-10"), mustRange(t, "2024-01-01", "2024-01-15"), RangeContained},
		{"contains", mustRange(t, "2024-01-01", "2024-01-31"), mustRange(t, "2024-01-10", "2024-01-20"), RangeContains},
		{"partial overlap", mustRange(t, "2024-01-01", "2024-01-15"), mustRange(t, "2024-01-10", "2024-01-20"), RangePartial},
		{"partial overlap reversed", mustRange(t, "2024-01-10", "2024-01-20"), mustRange(t, "2024-01-01", "2024-01-15"), RangePartial},
		{"adjacent after", mustRange(t, "2024-01-01", "2024-01-15"), mustRange(t, "2024-01-16", "2024-01-31"), RangeAdjacent},
		{"adjacent before", mustRange(t, "2024-01-16", "2024-01-31"), mustRange(t, "2024-01-01", "2024-01-15"), RangeAdjacent},
		{"adjacent across month", mustRange(t, "2024-01-01", "2024-01-31"), mustRange(t, "2024-02-01", "2024-02-29"), RangeAdjacent},
		{"disjoint", mustRange(t, "2024-01-01", "2024-01-15"), mustRange(t, "2024-02-01", "2024-02-15"), RangeDisjoint},
		{"single day overlap is partial", mustRange(t, "2024-01-01", "2024-01-15"), mustRange(t, "2024-01-15", "2024-01-31"), RangePartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Relate(tt.b); got != tt.want {
				t.Fatalf("Relate(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOverlapsAndAdjacent(t *testing.T) {
	a := mustRange(t, "2024-01-01", "2024-01-15")
	b := mustRange(t, "2024-01-16", "2024-01-31")

	if a.Overlaps(b) {
		t.Fatal("touching ranges must not overlap")
	}
	if !a.AdjacentTo(b) || !b.AdjacentTo(a) {
		t.Fatal("expected adjacency in both directions")
	}

	c := mustRange(t, "2024-01-15", "2024-01-20")
	if !a.Overlaps(c) {
		t.Fatal("shared endpoint must overlap")
	}
	if a.AdjacentTo(c) {
		t.Fatal("overlapping ranges must not be adjacent")
	}
}
