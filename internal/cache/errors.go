package cache

import (
	"fmt"

	"fincache/internal/models"
)

// IngestionError reports a failed ingestion with the dataset key and the
// phase that failed, wrapping the underlying storage error.
type IngestionError struct {
	Key   models.DatasetKey
	Phase string
	Err   error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingest %s: %s: %v", e.Key, e.Phase, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

func ingestionError(key models.DatasetKey, phase string, err error) error {
	return &IngestionError{Key: key, Phase: phase, Err: err}
}
