package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical encoding for coverage dates.
const DateLayout = "2006-01-02"

// DateRange is a closed interval of calendar dates. Start and End are
// UTC midnight; End is inclusive.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// RangeRelation classifies how one date range relates to another.
type RangeRelation int

const (
	RangeDisjoint RangeRelation = iota
	RangeAdjacent
	RangePartial
	RangeContained
	RangeContains
	RangeEqual
)

func (r RangeRelation) String() string {
	switch r {
	case RangeDisjoint:
		return "disjoint"
	case RangeAdjacent:
		return "adjacent"
	case RangePartial:
		return "overlapping-partial"
	case RangeContained:
		return "overlapping-contained"
	case RangeContains:
		return "overlapping-contains"
	case RangeEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// NewDateRange builds a validated range from inclusive start and end dates.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateDate(start)
	end = truncateDate(end)
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("start and end dates are required")
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end.Format(DateLayout), start.Format(DateLayout))
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses two YYYY-MM-DD strings into a range.
func ParseDateRange(start, end string) (DateRange, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(startDate, endDate)
}

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Equal reports whether both endpoints coincide.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// Contains reports whether other lies entirely within r.
func (r DateRange) Contains(other DateRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Overlaps reports whether the closed intervals share at least one date.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// AdjacentTo reports whether the ranges touch without overlapping, i.e.
// one begins on the calendar day after the other ends.
func (r DateRange) AdjacentTo(other DateRange) bool {
	if r.Overlaps(other) {
		return false
	}
	return r.End.AddDate(0, 0, 1).Equal(other.Start) || other.End.AddDate(0, 0, 1).Equal(r.Start)
}

// Relate classifies r with respect to other. RangeContained means r lies
// within other; RangeContains means r covers other.
func (r DateRange) Relate(other DateRange) RangeRelation {
	switch {
	case r.Equal(other):
		return RangeEqual
	case other.Contains(r):
		return RangeContained
	case r.Contains(other):
		return RangeContains
	case r.Overlaps(other):
		return RangePartial
	case r.AdjacentTo(other):
		return RangeAdjacent
	default:
		return RangeDisjoint
	}
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
