package models

import (
	"fmt"
	"strings"
)

// DatasetType defines the supported dataset categories.
type DatasetType string

const (
	TypeOHLCV        DatasetType = "ohlcv"
	TypeFundamentals DatasetType = "fundamentals"
	TypeTrades       DatasetType = "trades"
	TypeNews         DatasetType = "news"
	TypeEstimates    DatasetType = "estimates"
)

// Format defines the supported payload encodings. The cache stores every
// format opaquely; the value only determines the blob file extension.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatOther   Format = "other"
)

var validDatasetTypes = map[DatasetType]struct{}{
	TypeOHLCV:        {},
	TypeFundamentals: {},
	TypeTrades:       {},
	TypeNews:         {},
	TypeEstimates:    {},
}

var validFormats = map[Format]struct{}{
	FormatParquet: {},
	FormatJSON:    {},
	FormatCSV:     {},
	FormatOther:   {},
}

func IsValidDatasetType(datasetType DatasetType) bool {
	_, ok := validDatasetTypes[datasetType]
	return ok
}

func IsValidFormat(format Format) bool {
	_, ok := validFormats[format]
	return ok
}

func ParseDatasetType(raw string) (DatasetType, error) {
	value := DatasetType(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("dataset type is required")
	}
	if !IsValidDatasetType(value) {
		return "", fmt.Errorf("invalid dataset type: %s", value)
	}
	return value, nil
}

func ParseFormat(raw string) (Format, error) {
	value := Format(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("format is required")
	}
	if !IsValidFormat(value) {
		return "", fmt.Errorf("invalid format: %s", value)
	}
	return value, nil
}

// Ext returns the blob file extension for a format.
func (f Format) Ext() string {
	switch f {
	case FormatParquet:
		return "parquet"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "bin"
	}
}
