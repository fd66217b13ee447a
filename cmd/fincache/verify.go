package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newVerifyCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check registry entries against their blob files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				report, err := c.Verify(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					if err := writeJSON(report); err != nil {
						return err
					}
				} else {
					_ = writePlain("checked: %d\n", report.Checked)
					for _, id := range report.Missing {
						_ = writePlain("missing blob: %s\n", id)
					}
					for _, id := range report.Corrupted {
						_ = writePlain("hash mismatch: %s\n", id)
					}
				}
				if !report.OK() {
					return fmt.Errorf("verification failed: %d missing, %d corrupted", len(report.Missing), len(report.Corrupted))
				}
				return nil
			})
		},
	}
}
