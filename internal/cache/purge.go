package cache

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"fincache/internal/blobstore"
	"fincache/internal/identity"
	"fincache/internal/registry"
)

// PurgeReport lists blob files with no registry entry pointing at them.
type PurgeReport struct {
	Orphans []string `json:"orphans"`
	Removed int      `json:"removed"`
}

// PurgeOrphans finds blob files that no registry entry references. With
// apply false it only reports them; with apply true it deletes them.
// Orphans accumulate from ingestions that wrote a blob but failed before
// the entry insert, and from superseded blobs whose delete failed.
func (c *Cache) PurgeOrphans(ctx context.Context, apply bool) (*PurgeReport, error) {
	referenced, err := c.registry.ListFilePaths(ctx)
	if err != nil {
		return nil, err
	}
	blobs, err := c.blobs.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &PurgeReport{}
	for _, path := range blobs {
		if _, ok := referenced[path]; ok {
			continue
		}
		report.Orphans = append(report.Orphans, path)
	}
	sort.Strings(report.Orphans)

	if !apply {
		return report, nil
	}
	for _, path := range report.Orphans {
		if err := c.blobs.Delete(ctx, path); err != nil {
			return report, err
		}
		report.Removed++
	}
	slog.Info("purged orphan blobs", "removed", report.Removed)
	return report, nil
}

// VerifyReport summarizes a consistency check between the registry and
// the blob store.
type VerifyReport struct {
	Checked   int      `json:"checked"`
	Missing   []string `json:"missing,omitempty"`
	Corrupted []string `json:"corrupted,omitempty"`
}

// OK reports whether every checked entry had an intact blob.
func (r *VerifyReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Corrupted) == 0
}

// Verify walks every registry entry, confirms its blob exists, and
// re-hashes the payload against the recorded file hash. Entries with no
// recorded hash only get the existence check.
func (c *Cache) Verify(ctx context.Context) (*VerifyReport, error) {
	entries, err := c.registry.Query(ctx, registry.Filter{})
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{}
	for _, entry := range entries {
		report.Checked++
		payload, err := c.blobs.Get(ctx, entry.FilePath)
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				report.Missing = append(report.Missing, entry.ID)
				continue
			}
			return nil, err
		}
		if entry.FileHash != "" && identity.ContentHash(payload) != entry.FileHash {
			report.Corrupted = append(report.Corrupted, entry.ID)
		}
	}
	if !report.OK() {
		slog.Warn("verification failed", "missing", len(report.Missing), "corrupted", len(report.Corrupted))
	}
	return report, nil
}
