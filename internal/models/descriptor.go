package models

import (
	"fmt"
	"strings"
)

// DatasetDescriptor carries the caller-supplied semantics of a payload.
// It never includes a storage location.
type DatasetDescriptor struct {
	DatasetType       DatasetType `json:"dataset_type"`
	Symbol            string      `json:"symbol"`
	Frequency         string      `json:"frequency,omitempty"`
	Source            string      `json:"source"`
	Range             DateRange   `json:"range"`
	SchemaFingerprint string      `json:"schema_fingerprint,omitempty"`
	Format            Format      `json:"format"`
	RowCount          int64       `json:"row_count,omitempty"`
}

// DatasetKey identifies a logical, continuously-extendable dataset.
type DatasetKey struct {
	DatasetType DatasetType `json:"dataset_type"`
	Symbol      string      `json:"symbol"`
	Frequency   string      `json:"frequency,omitempty"`
	Source      string      `json:"source"`
}

func (k DatasetKey) String() string {
	freq := k.Frequency
	if freq == "" {
		freq = "-"
	}
	return fmt.Sprintf("%s/%s/%s/%s", k.DatasetType, k.Symbol, freq, k.Source)
}

// Key returns the dataset key tuple for the descriptor.
func (d DatasetDescriptor) Key() DatasetKey {
	return DatasetKey{
		DatasetType: d.DatasetType,
		Symbol:      d.Symbol,
		Frequency:   d.Frequency,
		Source:      d.Source,
	}
}

// Validate checks required descriptor fields.
func (d DatasetDescriptor) Validate() error {
	if !IsValidDatasetType(d.DatasetType) {
		return fmt.Errorf("invalid dataset type: %q", d.DatasetType)
	}
	if strings.TrimSpace(d.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if strings.TrimSpace(d.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if !IsValidFormat(d.Format) {
		return fmt.Errorf("invalid format: %q", d.Format)
	}
	if d.Range.IsZero() {
		return fmt.Errorf("date range is required")
	}
	if d.Range.End.Before(d.Range.Start) {
		return fmt.Errorf("end date is before start date")
	}
	if d.RowCount < 0 {
		return fmt.Errorf("row count must not be negative")
	}
	return nil
}

// Normalize lowercases enum-ish fields and trims whitespace.
func (d DatasetDescriptor) Normalize() DatasetDescriptor {
	d.DatasetType = DatasetType(strings.ToLower(strings.TrimSpace(string(d.DatasetType))))
	d.Symbol = strings.ToUpper(strings.TrimSpace(d.Symbol))
	d.Frequency = strings.ToLower(strings.TrimSpace(d.Frequency))
	d.Source = strings.ToLower(strings.TrimSpace(d.Source))
	d.Format = Format(strings.ToLower(strings.TrimSpace(string(d.Format))))
	d.SchemaFingerprint = strings.TrimSpace(d.SchemaFingerprint)
	return d
}
