package main

import (
	"fmt"
	"strings"

	"fincache/internal/cache"
	"fincache/internal/config"
	"fincache/internal/identity"
	"fincache/internal/models"
	"fincache/internal/registry"
)

func withCache(cfg *config.Config, fn func(*cache.Cache) error) error {
	c, err := cache.Open(cache.Options{
		Root:     cfg.Root,
		IDPolicy: identity.IDPolicy(cfg.IDPolicy),
		Compress: cfg.Compress,
	})
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// filterFlags holds the shared key and range selection flags.
type filterFlags struct {
	datasetType string
	symbol      string
	frequency   string
	source      string
	start       string
	end         string
	limit       int
}

func (f *filterFlags) filter() (registry.Filter, error) {
	// Rows are stored normalized, so filters must match that casing.
	filter := registry.Filter{
		Symbol:    strings.ToUpper(strings.TrimSpace(f.symbol)),
		Frequency: strings.ToLower(strings.TrimSpace(f.frequency)),
		Source:    strings.ToLower(strings.TrimSpace(f.source)),
		Limit:     f.limit,
	}
	if f.datasetType != "" {
		datasetType, err := models.ParseDatasetType(f.datasetType)
		if err != nil {
			return registry.Filter{}, err
		}
		filter.DatasetType = datasetType
	}
	if f.start != "" || f.end != "" {
		if f.start == "" || f.end == "" {
			return registry.Filter{}, fmt.Errorf("--start and --end must be given together")
		}
		r, err := models.ParseDateRange(f.start, f.end)
		if err != nil {
			return registry.Filter{}, err
		}
		filter.Range = &r
	}
	return filter, nil
}

func (f *filterFlags) key() (models.DatasetKey, error) {
	if f.datasetType == "" || f.symbol == "" || f.source == "" {
		return models.DatasetKey{}, fmt.Errorf("--type, --symbol and --source are required")
	}
	datasetType, err := models.ParseDatasetType(f.datasetType)
	if err != nil {
		return models.DatasetKey{}, err
	}
	desc := models.DatasetDescriptor{
		DatasetType: datasetType,
		Symbol:      f.symbol,
		Frequency:   f.frequency,
		Source:      f.source,
	}
	return desc.Normalize().Key(), nil
}
