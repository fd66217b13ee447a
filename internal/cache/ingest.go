package cache

import (
	"context"
	"log/slog"
	"time"

	"fincache/internal/identity"
	"fincache/internal/models"
	"fincache/internal/registry"
)

// Outcome describes how an ingestion was reconciled against existing
// entries for the same dataset key.
type Outcome string

const (
	// OutcomeNew means a fresh entry was stored, possibly alongside
	// partially-overlapping entries for the same key.
	OutcomeNew Outcome = "new"
	// OutcomeDuplicate means an identical entry already existed; the
	// ingestion was a no-op.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeSuperseded means the new entry replaced one or more
	// existing entries whose coverage it contains.
	OutcomeSuperseded Outcome = "superseded"
)

// IngestResult reports the entry an ingestion resolved to.
type IngestResult struct {
	Entry      models.RegistryEntry `json:"entry"`
	Outcome    Outcome              `json:"outcome"`
	Superseded []string             `json:"superseded,omitempty"`
}

// Ingest stores one payload described by desc, reconciling it against
// existing entries for the same dataset key:
//
//   - exact duplicate (equal range, identical content hash): no-op,
//     the existing entry is returned unchanged;
//   - supersede (an existing entry's range is contained in or equal to
//     the incoming range, content differs): the new blob and entry are
//     written first, then the old entries and blobs are removed;
//   - otherwise: stored as an independent new entry. Partial overlaps
//     are kept side by side, never merged.
//
// Ingestions for the same dataset key serialize; distinct keys proceed
// in parallel.
func (c *Cache) Ingest(ctx context.Context, payload []byte, desc models.DatasetDescriptor) (*IngestResult, error) {
	desc = desc.Normalize()
	if err := desc.Validate(); err != nil {
		return nil, ingestionError(desc.Key(), "validate descriptor", err)
	}
	key := desc.Key()

	unlock := c.locks.acquire(key)
	defer unlock()

	contentHash := identity.ContentHash(payload)

	existing, err := c.registry.Query(ctx, registry.KeyFilter(key))
	if err != nil {
		return nil, ingestionError(key, "query existing entries", err)
	}

	var superseded []models.RegistryEntry
	for _, entry := range existing {
		// Filters treat a zero field as a wildcard, so an empty
		// frequency in the key would match every frequency. Only
		// exact key matches take part in reconciliation.
		if entry.Key() != key {
			continue
		}
		switch entry.Range.Relate(desc.Range) {
		case models.RangeEqual:
			if entry.FileHash == contentHash {
				slog.Debug("duplicate ingest", "key", key.String(), "id", entry.ID)
				result := &IngestResult{Entry: entry, Outcome: OutcomeDuplicate}
				return result, nil
			}
			superseded = append(superseded, entry)
		case models.RangeContained:
			superseded = append(superseded, entry)
		}
	}

	scope := key.String() + " " + desc.Range.String()
	id, err := identity.StorageID(c.idPolicy, contentHash, scope)
	if err != nil {
		return nil, ingestionError(key, "derive storage id", err)
	}

	// New state is written before any old state is removed, so a crash
	// mid-supersession leaves the prior entry intact. A blob written
	// without its entry is an orphan, reclaimed only by explicit purge.
	path, err := c.blobs.Put(ctx, id, desc.Format.Ext(), payload)
	if err != nil {
		return nil, ingestionError(key, "write blob", err)
	}

	entry := models.RegistryEntry{
		ID:                id,
		DatasetType:       desc.DatasetType,
		Symbol:            desc.Symbol,
		Frequency:         desc.Frequency,
		Source:            desc.Source,
		Range:             desc.Range,
		FilePath:          path,
		Format:            desc.Format,
		SchemaFingerprint: desc.SchemaFingerprint,
		FileHash:          contentHash,
		RowCount:          desc.RowCount,
		LastUpdated:       time.Now().UTC(),
	}
	if err := c.registry.Insert(ctx, &entry); err != nil {
		return nil, ingestionError(key, "insert entry", err)
	}

	result := &IngestResult{Entry: entry, Outcome: OutcomeNew}
	for _, old := range superseded {
		if err := c.registry.Delete(ctx, old.ID); err != nil {
			return nil, ingestionError(key, "delete superseded entry", err)
		}
		if old.FilePath != path {
			if err := c.blobs.Delete(ctx, old.FilePath); err != nil {
				return nil, ingestionError(key, "delete superseded blob", err)
			}
		}
		result.Superseded = append(result.Superseded, old.ID)
	}
	if len(result.Superseded) > 0 {
		result.Outcome = OutcomeSuperseded
	}
	slog.Info("dataset ingested",
		"key", key.String(),
		"outcome", string(result.Outcome),
		"id", entry.ID,
		"range", desc.Range.String(),
		"superseded", len(result.Superseded),
	)
	return result, nil
}
