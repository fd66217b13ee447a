package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fincache/internal/cache"
	"fincache/internal/config"
	"fincache/internal/identity"
	"fincache/internal/models"
)

func newIngestCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		datasetType string
		symbol      string
		frequency   string
		source      string
		start       string
		end         string
		format      string
		rowCount    int64
		schema      string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a dataset payload",
		Long:  "Ingest reads a payload from a file (or stdin when the file is \"-\") and stores it under the described dataset key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args[0])
			if err != nil {
				return err
			}

			parsedType, err := models.ParseDatasetType(datasetType)
			if err != nil {
				return err
			}
			parsedFormat, err := models.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := models.ParseDateRange(start, end)
			if err != nil {
				return err
			}
			fingerprint, err := parseSchemaFields(schema)
			if err != nil {
				return err
			}

			desc := models.DatasetDescriptor{
				DatasetType:       parsedType,
				Symbol:            symbol,
				Frequency:         frequency,
				Source:            source,
				Range:             r,
				SchemaFingerprint: fingerprint,
				Format:            parsedFormat,
				RowCount:          rowCount,
			}

			return withCache(cfg, func(c *cache.Cache) error {
				result, err := c.Ingest(cmd.Context(), payload, desc)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(result)
				}
				if err := writePlain("%s %s\n", result.Outcome, result.Entry.ID); err != nil {
					return err
				}
				for _, id := range result.Superseded {
					if err := writePlain("superseded %s\n", id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&datasetType, "type", "", "dataset type (ohlcv, fundamentals, trades, news, estimates)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&frequency, "freq", "", "sampling frequency (e.g. daily)")
	cmd.Flags().StringVar(&source, "source", "", "data provider")
	cmd.Flags().StringVar(&start, "start", "", "coverage start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "coverage end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "", "payload format (parquet, json, csv, other)")
	cmd.Flags().Int64Var(&rowCount, "rows", 0, "row count")
	cmd.Flags().StringVar(&schema, "schema", "", "schema fields as name:type,name:type")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func parseSchemaFields(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	var fields []identity.SchemaField
	for _, part := range strings.Split(raw, ",") {
		name, fieldType, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(fieldType) == "" {
			return "", fmt.Errorf("invalid schema field %q: expected name:type", part)
		}
		fields = append(fields, identity.SchemaField{Name: name, Type: fieldType})
	}
	return identity.SchemaFingerprint(fields), nil
}
