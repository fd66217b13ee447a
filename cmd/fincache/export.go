package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fincache/internal/cache"
	"fincache/internal/config"
	"fincache/internal/models"
	"fincache/internal/registry"
)

// exportEntry is the YAML shape of one registry entry. Dates are kept
// as plain strings so the export is stable and diff-friendly.
type exportEntry struct {
	ID                string `yaml:"id"`
	DatasetType       string `yaml:"dataset_type"`
	Symbol            string `yaml:"symbol"`
	Frequency         string `yaml:"frequency,omitempty"`
	Source            string `yaml:"source"`
	StartDate         string `yaml:"start_date"`
	EndDate           string `yaml:"end_date"`
	FilePath          string `yaml:"file_path"`
	Format            string `yaml:"format"`
	SchemaFingerprint string `yaml:"schema_fingerprint,omitempty"`
	FileHash          string `yaml:"file_hash,omitempty"`
	RowCount          int64  `yaml:"row_count,omitempty"`
	LastUpdated       string `yaml:"last_updated"`
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the registry as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				entries, err := c.Resolve(cmd.Context(), registry.Filter{})
				if err != nil {
					return err
				}

				exported := make([]exportEntry, 0, len(entries))
				for _, entry := range entries {
					exported = append(exported, toExportEntry(entry))
				}

				data, err := yaml.Marshal(exported)
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = os.Stdout.Write(data)
					return err
				}
				return os.WriteFile(out, data, 0o644)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func toExportEntry(entry models.RegistryEntry) exportEntry {
	return exportEntry{
		ID:                entry.ID,
		DatasetType:       string(entry.DatasetType),
		Symbol:            entry.Symbol,
		Frequency:         entry.Frequency,
		Source:            entry.Source,
		StartDate:         entry.Range.Start.Format(models.DateLayout),
		EndDate:           entry.Range.End.Format(models.DateLayout),
		FilePath:          entry.FilePath,
		Format:            string(entry.Format),
		SchemaFingerprint: entry.SchemaFingerprint,
		FileHash:          entry.FileHash,
		RowCount:          entry.RowCount,
		LastUpdated:       formatTime(entry.LastUpdated),
	}
}
