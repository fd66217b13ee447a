// Package cache wires the registry and blob store into the dataset
// cache: it coordinates ingestion, resolves queries to registry entries,
// and reclaims orphaned blobs. Instances are injected with an explicit
// open/close lifecycle; there is no process-wide singleton.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"fincache/internal/blobstore"
	"fincache/internal/identity"
	"fincache/internal/models"
	"fincache/internal/registry"
)

const (
	dbDirName    = "db"
	dbFileName   = "registry"
	blobsDirName = "cache"
)

// Options configures a cache instance. Root is the platform-resolved
// cache root directory, supplied by the caller.
type Options struct {
	Root     string
	IDPolicy identity.IDPolicy
	Compress bool
}

// Cache is the facade over the registry and the blob store.
type Cache struct {
	registry *registry.Registry
	blobs    *blobstore.Store
	idPolicy identity.IDPolicy
	locks    *keyLocks
}

// Open initializes the cache under opts.Root, creating the directory
// layout and opening the registry database.
func Open(opts Options) (*Cache, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("cache root is required")
	}
	policy := opts.IDPolicy
	if policy == "" {
		policy = identity.PolicyContent
	}
	slog.Debug("opening cache", "root", opts.Root, "id_policy", string(policy), "compress", opts.Compress)

	var blobOpts []blobstore.Option
	if opts.Compress {
		blobOpts = append(blobOpts, blobstore.WithCompression())
	}
	blobs, err := blobstore.New(filepath.Join(opts.Root, blobsDirName), blobOpts...)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Open(filepath.Join(opts.Root, dbDirName, dbFileName))
	if err != nil {
		return nil, err
	}

	return &Cache{
		registry: reg,
		blobs:    blobs,
		idPolicy: policy,
		locks:    newKeyLocks(),
	}, nil
}

// Close releases the registry database handle.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.registry.Close()
}

// BlobRoot returns the absolute blob directory, letting callers read
// resolved files directly.
func (c *Cache) BlobRoot() string {
	return c.blobs.Root()
}

// Resolve returns the registry entries matching the filter, ordered by
// start_date ascending with ties broken by last_updated descending. It
// performs no deduplication or range stitching: overlapping coverage in
// the registry is surfaced as-is.
func (c *Cache) Resolve(ctx context.Context, filter registry.Filter) ([]models.RegistryEntry, error) {
	return c.registry.Query(ctx, filter)
}

// Entry returns one registry entry by id.
func (c *Cache) Entry(ctx context.Context, id string) (*models.RegistryEntry, error) {
	return c.registry.Get(ctx, id)
}

// Read returns the payload bytes and entry for one dataset id.
func (c *Cache) Read(ctx context.Context, id string) ([]byte, *models.RegistryEntry, error) {
	entry, err := c.registry.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	payload, err := c.blobs.Get(ctx, entry.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return payload, entry, nil
}

// Remove deletes one entry and its blob. The entry goes first so a
// failure never leaves a registered entry pointing at a missing blob.
func (c *Cache) Remove(ctx context.Context, id string) error {
	entry, err := c.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.registry.Delete(ctx, id); err != nil {
		return err
	}
	if err := c.blobs.Delete(ctx, entry.FilePath); err != nil {
		return err
	}
	slog.Info("entry removed", "id", id, "key", entry.Key().String())
	return nil
}

// Stats returns registry summary counters.
func (c *Cache) Stats(ctx context.Context) (*registry.Info, error) {
	return c.registry.Stats(ctx)
}
