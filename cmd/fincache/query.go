package main

import (
	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newQueryCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List registry entries matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			return withCache(cfg, func(c *cache.Cache) error {
				entries, err := c.Resolve(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(entries)
				}
				return writeEntryList(entries)
			})
		},
	}

	cmd.Flags().StringVar(&flags.datasetType, "type", "", "dataset type filter")
	cmd.Flags().StringVar(&flags.symbol, "symbol", "", "symbol filter")
	cmd.Flags().StringVar(&flags.frequency, "freq", "", "frequency filter")
	cmd.Flags().StringVar(&flags.source, "source", "", "source filter")
	cmd.Flags().StringVar(&flags.start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.end, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "limit results")

	return cmd
}
