package cache

import (
	"context"

	"fincache/internal/marketcal"
	"fincache/internal/models"
	"fincache/internal/registry"
)

// CoverageReport describes the date coverage one dataset key has in the
// registry: the contiguous segments entries form and the gaps between
// them. It is purely informational; resolution never merges entries.
type CoverageReport struct {
	Key        string             `json:"key"`
	Entries    int                `json:"entries"`
	Segments   []models.DateRange `json:"segments"`
	Gaps       []models.DateRange `json:"gaps,omitempty"`
	Contiguous bool               `json:"contiguous"`
}

// Coverage reports which dates a dataset key covers, optionally limited
// to entries intersecting within. For daily datasets two entries count
// as contiguous when no trading session falls strictly between them, so
// a Friday-to-Monday boundary is not a gap.
func (c *Cache) Coverage(ctx context.Context, key models.DatasetKey, within *models.DateRange) (*CoverageReport, error) {
	filter := registry.KeyFilter(key)
	filter.Range = within

	entries, err := c.registry.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &CoverageReport{Key: key.String(), Entries: len(entries)}
	if len(entries) == 0 {
		return report, nil
	}

	daily := key.Frequency == "daily"
	segment := entries[0].Range
	for _, entry := range entries[1:] {
		if contiguous(segment, entry.Range, daily) {
			if entry.Range.End.After(segment.End) {
				segment.End = entry.Range.End
			}
			continue
		}
		report.Segments = append(report.Segments, segment)
		report.Gaps = append(report.Gaps, models.DateRange{
			Start: segment.End.AddDate(0, 0, 1),
			End:   entry.Range.Start.AddDate(0, 0, -1),
		})
		segment = entry.Range
	}
	report.Segments = append(report.Segments, segment)
	report.Contiguous = len(report.Gaps) == 0
	return report, nil
}

// contiguous reports whether next extends segment without leaving a
// hole. Entries arrive ordered by start date, so next never begins
// before segment does.
func contiguous(segment, next models.DateRange, daily bool) bool {
	if segment.Overlaps(next) || segment.AdjacentTo(next) {
		return true
	}
	if daily {
		return marketcal.TradingAdjacent(segment, next)
	}
	return false
}
