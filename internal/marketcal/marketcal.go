// Package marketcal provides US equity trading-day arithmetic: weekends
// and NYSE full-closure holidays. It lets range adjacency be judged in
// trading days, so a daily dataset ending Friday and one starting the
// following Monday count as contiguous coverage.
package marketcal

import (
	"time"

	"fincache/internal/models"
)

// IsTradingDay reports whether the market is open on the given date.
// Early-close sessions count as trading days.
func IsTradingDay(date time.Time) bool {
	date = midnight(date)
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !isHoliday(date)
}

// NextTradingDay returns the first trading day strictly after date.
func NextTradingDay(date time.Time) time.Time {
	date = midnight(date)
	for {
		date = date.AddDate(0, 0, 1)
		if IsTradingDay(date) {
			return date
		}
	}
}

// PrevTradingDay returns the last trading day strictly before date.
func PrevTradingDay(date time.Time) time.Time {
	date = midnight(date)
	for {
		date = date.AddDate(0, 0, -1)
		if IsTradingDay(date) {
			return date
		}
	}
}

// TradingDays counts trading days within a closed date range.
func TradingDays(r models.DateRange) int {
	count := 0
	for d := midnight(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			count++
		}
	}
	return count
}

// TradingAdjacent reports whether two non-overlapping ranges have no
// trading day strictly between them, in either order.
func TradingAdjacent(a, b models.DateRange) bool {
	if a.Overlaps(b) {
		return false
	}
	earlier, later := a, b
	if b.End.Before(a.Start) {
		earlier, later = b, a
	}
	return !NextTradingDay(earlier.End).Before(later.Start)
}

func isHoliday(date time.Time) bool {
	year := date.Year()
	for _, holiday := range holidays(year) {
		if date.Equal(holiday) {
			return true
		}
	}
	return false
}

// holidays returns the observed NYSE full-closure dates for a year.
func holidays(year int) []time.Time {
	days := []time.Time{
		observed(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.January, time.Monday, 3),  // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3), // Washington's Birthday
		goodFriday(year),
		lastWeekday(year, time.May, time.Monday), // Memorial Day
		observed(time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC)),
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
		observed(time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)),
	}
	if year >= 2022 {
		days = append(days, observed(time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC)))
	}
	return days
}

// observed shifts weekend holidays to the adjacent weekday.
func observed(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	}
	return date
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	date := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(date.Weekday()) - int(weekday) + 7) % 7
	return date.AddDate(0, 0, -offset)
}

// goodFriday is two days before Easter Sunday (Gregorian computus).
func goodFriday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	easter := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return easter.AddDate(0, 0, -2)
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
