package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"fincache/internal/models"
)

func writeJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeEntryList(entries []models.RegistryEntry) error {
	for _, entry := range entries {
		if err := writePlain("%s\n", formatEntryLine(entry)); err != nil {
			return err
		}
	}
	return nil
}

func writeEntryDetail(entry models.RegistryEntry) error {
	lines := []string{
		fmt.Sprintf("id: %s", entry.ID),
		fmt.Sprintf("key: %s", entry.Key()),
		fmt.Sprintf("range: %s", entry.Range),
		fmt.Sprintf("format: %s", entry.Format),
		fmt.Sprintf("file_path: %s", entry.FilePath),
		fmt.Sprintf("last_updated: %s", formatTime(entry.LastUpdated)),
	}
	if entry.FileHash != "" {
		lines = append(lines, fmt.Sprintf("file_hash: %s", entry.FileHash))
	}
	if entry.SchemaFingerprint != "" {
		lines = append(lines, fmt.Sprintf("schema_fingerprint: %s", entry.SchemaFingerprint))
	}
	if entry.RowCount > 0 {
		lines = append(lines, fmt.Sprintf("row_count: %d", entry.RowCount))
	}
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatEntryLine(entry models.RegistryEntry) string {
	return fmt.Sprintf("%s  %s  %s  [%s]", entry.ID, entry.Key(), entry.Range, entry.Format)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
