package main

import (
	"sort"

	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache and registry info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				info, err := c.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(info)
				}

				_ = writePlain("root: %s\n", cfg.Root)
				_ = writePlain("schema_version: %d\n", info.SchemaVersion)
				_ = writePlain("total_entries: %d\n", info.TotalEntries)
				_ = writePlain("symbols: %d\n", info.Symbols)

				types := make([]string, 0, len(info.EntriesByType))
				for datasetType := range info.EntriesByType {
					types = append(types, datasetType)
				}
				sort.Strings(types)
				for _, datasetType := range types {
					_ = writePlain("  %s: %d\n", datasetType, info.EntriesByType[datasetType])
				}
				return nil
			})
		},
	}
}
