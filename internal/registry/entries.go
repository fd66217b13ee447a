package registry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fincache/internal/models"
)

const entryColumns = "id, dataset_type, symbol, frequency, source, start_date, end_date, file_path, format, schema_fingerprint, file_hash, row_count, last_updated"

// Filter narrows a registry query. Zero-valued fields are ignored; a
// non-nil Range restricts results to entries whose coverage intersects it.
type Filter struct {
	DatasetType models.DatasetType
	Symbol      string
	Frequency   string
	Source      string
	Range       *models.DateRange
	Limit       int
}

// KeyFilter returns a filter matching all entries of one dataset key.
func KeyFilter(key models.DatasetKey) Filter {
	return Filter{
		DatasetType: key.DatasetType,
		Symbol:      key.Symbol,
		Frequency:   key.Frequency,
		Source:      key.Source,
	}
}

// EntryUpdate describes mutable fields of an entry. Nil fields are left
// unchanged.
type EntryUpdate struct {
	FilePath          *string
	FileHash          *string
	SchemaFingerprint *string
	RowCount          *int64
	Range             *models.DateRange
	LastUpdated       time.Time
}

// Insert adds one entry row. It fails with ErrDuplicateID when the id is
// already present.
func (r *Registry) Insert(ctx context.Context, entry *models.RegistryEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (
			id, dataset_type, symbol, frequency, source, start_date, end_date,
			file_path, format, schema_fingerprint, file_hash, row_count, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		string(entry.DatasetType),
		entry.Symbol,
		nullIfEmpty(entry.Frequency),
		entry.Source,
		formatDate(entry.Range.Start),
		formatDate(entry.Range.End),
		entry.FilePath,
		string(entry.Format),
		nullIfEmpty(entry.SchemaFingerprint),
		nullIfEmpty(entry.FileHash),
		nullIfZero(entry.RowCount),
		formatTime(entry.LastUpdated),
	)
	if err != nil {
		if isUniqueConstraint(err) {
			return fmt.Errorf("insert entry %s: %w", entry.ID, ErrDuplicateID)
		}
		return fmt.Errorf("insert entry %s: %w", entry.ID, err)
	}
	return nil
}

// Get returns one entry by id, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*models.RegistryEntry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return entry, nil
}

// Update modifies mutable fields of one entry.
func (r *Registry) Update(ctx context.Context, id string, update EntryUpdate) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}

	set := []string{}
	args := []any{}

	if update.FilePath != nil {
		set = append(set, "file_path = ?")
		args = append(args, *update.FilePath)
	}
	if update.FileHash != nil {
		set = append(set, "file_hash = ?")
		args = append(args, nullIfEmpty(*update.FileHash))
	}
	if update.SchemaFingerprint != nil {
		set = append(set, "schema_fingerprint = ?")
		args = append(args, nullIfEmpty(*update.SchemaFingerprint))
	}
	if update.RowCount != nil {
		set = append(set, "row_count = ?")
		args = append(args, *update.RowCount)
	}
	if update.Range != nil {
		set = append(set, "start_date = ?", "end_date = ?")
		args = append(args, formatDate(update.Range.Start), formatDate(update.Range.End))
	}

	set = append(set, "last_updated = ?")
	args = append(args, formatTime(update.LastUpdated))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE entries SET %s WHERE id = ?", strings.Join(set, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update entry %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes one entry row. Missing ids are not an error.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}

// Query returns entries matching the filter, ordered by start_date
// ascending with ties broken by last_updated descending.
func (r *Registry) Query(ctx context.Context, filter Filter) ([]models.RegistryEntry, error) {
	query, args := buildEntryQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RegistryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// ListFilePaths returns every file_path referenced by an entry.
func (r *Registry) ListFilePaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT file_path FROM entries")
	if err != nil {
		return nil, fmt.Errorf("list file paths: %w", err)
	}
	defer rows.Close()

	paths := map[string]struct{}{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths[path] = struct{}{}
	}
	return paths, rows.Err()
}

// Info summarizes registry contents.
type Info struct {
	SchemaVersion int            `json:"schema_version"`
	TotalEntries  int            `json:"total_entries"`
	EntriesByType map[string]int `json:"entries_by_type"`
	Symbols       int            `json:"symbols"`
}

// Stats returns registry summary counters.
func (r *Registry) Stats(ctx context.Context) (*Info, error) {
	info := &Info{EntriesByType: map[string]int{}}

	version, err := r.SchemaVersion()
	if err != nil {
		return nil, err
	}
	info.SchemaVersion = version

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&info.TotalEntries); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT symbol) FROM entries").Scan(&info.Symbols); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT dataset_type, COUNT(*) FROM entries GROUP BY dataset_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var datasetType string
		var count int
		if err := rows.Scan(&datasetType, &count); err != nil {
			return nil, err
		}
		info.EntriesByType[datasetType] = count
	}
	return info, rows.Err()
}

func scanEntry(scanner interface {
	Scan(dest ...any) error
}) (*models.RegistryEntry, error) {
	var entry models.RegistryEntry
	var datasetType, format string
	var frequency, fingerprint, fileHash sql.NullString
	var rowCount sql.NullInt64
	var startDate, endDate, lastUpdated string

	if err := scanner.Scan(
		&entry.ID,
		&datasetType,
		&entry.Symbol,
		&frequency,
		&entry.Source,
		&startDate,
		&endDate,
		&entry.FilePath,
		&format,
		&fingerprint,
		&fileHash,
		&rowCount,
		&lastUpdated,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	entry.DatasetType = models.DatasetType(datasetType)
	entry.Format = models.Format(format)
	entry.Frequency = frequency.String
	entry.SchemaFingerprint = fingerprint.String
	entry.FileHash = fileHash.String
	entry.RowCount = rowCount.Int64

	parsedRange, err := models.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
	}
	entry.Range = parsedRange

	parsedUpdated, err := parseTime(lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
	}
	entry.LastUpdated = parsedUpdated

	return &entry, nil
}

func isUniqueConstraint(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: entries.id")
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZero(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

// timestampLayout keeps a fixed-width fraction so last_updated strings
// compare lexically in chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatDate(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
