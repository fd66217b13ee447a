package main

import (
	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
	"fincache/internal/models"
)

func newCoverageCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report date coverage and gaps for one dataset key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			var within *models.DateRange
			if flags.start != "" || flags.end != "" {
				r, err := models.ParseDateRange(flags.start, flags.end)
				if err != nil {
					return err
				}
				within = &r
			}
			return withCache(cfg, func(c *cache.Cache) error {
				report, err := c.Coverage(cmd.Context(), key, within)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(report)
				}
				_ = writePlain("key: %s\n", report.Key)
				_ = writePlain("entries: %d\n", report.Entries)
				for _, segment := range report.Segments {
					_ = writePlain("covered: %s\n", segment)
				}
				for _, gap := range report.Gaps {
					_ = writePlain("gap: %s\n", gap)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.datasetType, "type", "", "dataset type")
	cmd.Flags().StringVar(&flags.symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&flags.frequency, "freq", "", "sampling frequency")
	cmd.Flags().StringVar(&flags.source, "source", "", "data provider")
	cmd.Flags().StringVar(&flags.start, "start", "", "limit to entries intersecting this start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "limit to entries intersecting this end (YYYY-MM-DD)")

	return cmd
}
