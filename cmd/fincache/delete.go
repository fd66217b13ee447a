package main

import (
	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newDeleteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one entry and its blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				if err := c.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]string{"deleted": args[0]})
				}
				return writePlain("deleted %s\n", args[0])
			})
		},
	}
}
