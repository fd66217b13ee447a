package marketcal

import (
	"testing"
	"time"

	"fincache/internal/models"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := models.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return parsed
}

func TestIsTradingDay(t *testing.T) {
	tests := []struct {
		day  string
		want bool
		name string
	}{
		{"2024-01-02", true, "regular Tuesday"},
		{"2024-01-06", false, "Saturday"},
		{"2024-01-07", false, "Sunday"},
		{"2024-01-01", false, "New Year's Day"},
		{"2024-01-15", false, "MLK Day"},
		{"2024-02-19", false, "Washington's Birthday"},
		{"2024-03-29", false, "Good Friday"},
		{"2024-05-27", false, "Memorial Day"},
		{"2024-06-19", false, "Juneteenth"},
		{"2024-07-04", false, "Independence Day"},
		{"2024-09-02", false, "Labor Day"},
		{"2024-11-28", false, "Thanksgiving"},
		{"2024-12-25", false, "Christmas"},
		{"2024-11-29", true, "day after Thanksgiving (early close)"},
		{"2021-07-05", false, "July 4 observed on Monday"},
		{"2021-12-24", false, "Christmas observed on Friday"},
		{"2021-06-19", false, "Juneteenth 2021 falls on Saturday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTradingDay(date(t, tt.day)); got != tt.want {
				t.Fatalf("IsTradingDay(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestNextAndPrevTradingDay(t *testing.T) {
	// Friday 2024-01-12 -> Tuesday 2024-01-16 (MLK Monday skipped).
	next := NextTradingDay(date(t, "2024-01-12"))
	if !next.Equal(date(t, "2024-01-16")) {
		t.Fatalf("expected 2024-01-16, got %s", next.Format(models.DateLayout))
	}

	prev := PrevTradingDay(date(t, "2024-01-16"))
	if !prev.Equal(date(t, "2024-01-12")) {
		t.Fatalf("expected 2024-01-12, got %s", prev.Format(models.DateLayout))
	}
}

func TestTradingDays(t *testing.T) {
	// 2024-01-01 .. 2024-01-07: holiday Monday, four sessions, weekend.
	r, err := models.ParseDateRange("2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if got := TradingDays(r); got != 4 {
		t.Fatalf("expected 4 trading days, got %d", got)
	}
}

func TestTradingAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{"friday to monday", [2]string{"2024-01-08", "2024-01-12"}, [2]string{"2024-01-16", "2024-01-19"}, true},
		{"calendar adjacent", [2]string{"2024-01-02", "2024-01-03"}, [2]string{"2024-01-04", "2024-01-05"}, true},
		{"gap of one session", [2]string{"2024-01-02", "2024-01-03"}, [2]string{"2024-01-05", "2024-01-08"}, false},
		{"reversed order", [2]string{"2024-01-16", "2024-01-19"}, [2]string{"2024-01-08", "2024-01-12"}, true},
		{"overlapping", [2]string{"2024-01-02", "2024-01-10"}, [2]string{"2024-01-08", "2024-01-12"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := models.ParseDateRange(tt.a[0], tt.a[1])
			if err != nil {
				t.Fatalf("parse a: %v", err)
			}
			b, err := models.ParseDateRange(tt.b[0], tt.b[1])
			if err != nil {
				t.Fatalf("parse b: %v", err)
			}
			if got := TradingAdjacent(a, b); got != tt.want {
				t.Fatalf("TradingAdjacent(%s, %s) = %v, want %v", a, b, got, tt.want)
			}
		})
	}
}
