package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fincache/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
		root       string
	)

	cmd := &cobra.Command{
		Use:   "fincache",
		Short: "Fincache is a local cache for financial time-series datasets",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root != "" {
				cfg.Root = root
			}
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&root, "root", "", "cache root directory")

	cmd.AddCommand(
		newIngestCmd(cfg, &jsonOutput),
		newQueryCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newReadCmd(cfg),
		newDeleteCmd(cfg, &jsonOutput),
		newPurgeCmd(cfg, &jsonOutput),
		newVerifyCmd(cfg, &jsonOutput),
		newCoverageCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
	)

	return cmd
}
