package models

import "time"

// RegistryEntry is one durable row of the dataset registry. FilePath is
// relative to the blob store root and resolves to exactly one blob for as
// long as the entry exists.
type RegistryEntry struct {
	ID                string      `json:"id"`
	DatasetType       DatasetType `json:"dataset_type"`
	Symbol            string      `json:"symbol"`
	Frequency         string      `json:"frequency,omitempty"`
	Source            string      `json:"source"`
	Range             DateRange   `json:"range"`
	FilePath          string      `json:"file_path"`
	Format            Format      `json:"format"`
	SchemaFingerprint string      `json:"schema_fingerprint,omitempty"`
	FileHash          string      `json:"file_hash,omitempty"`
	RowCount          int64       `json:"row_count,omitempty"`
	LastUpdated       time.Time   `json:"last_updated"`
}

// Key returns the dataset key tuple for the entry.
func (e RegistryEntry) Key() DatasetKey {
	return DatasetKey{
		DatasetType: e.DatasetType,
		Symbol:      e.Symbol,
		Frequency:   e.Frequency,
		Source:      e.Source,
	}
}

// Descriptor reconstructs the semantic descriptor from a registry row.
func (e RegistryEntry) Descriptor() DatasetDescriptor {
	return DatasetDescriptor{
		DatasetType:       e.DatasetType,
		Symbol:            e.Symbol,
		Frequency:         e.Frequency,
		Source:            e.Source,
		Range:             e.Range,
		SchemaFingerprint: e.SchemaFingerprint,
		Format:            e.Format,
		RowCount:          e.RowCount,
	}
}
