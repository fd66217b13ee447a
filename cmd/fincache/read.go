package main

import (
	"os"

	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
)

func newReadCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Write a dataset payload to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cfg, func(c *cache.Cache) error {
				payload, _, err := c.Read(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = os.Stdout.Write(payload)
					return err
				}
				return os.WriteFile(out, payload, 0o644)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}
