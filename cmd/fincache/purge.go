package main

import (
	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newPurgeCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Find and remove orphaned blob files",
		Long:  "Purge lists blob files no registry entry references. Without --apply it only reports them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				report, err := c.PurgeOrphans(cmd.Context(), apply)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(report)
				}
				for _, path := range report.Orphans {
					if err := writePlain("orphan %s\n", path); err != nil {
						return err
					}
				}
				if apply {
					return writePlain("removed %d blob(s)\n", report.Removed)
				}
				return writePlain("%d orphan(s); re-run with --apply to remove\n", len(report.Orphans))
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "delete the orphaned blobs")
	return cmd
}
