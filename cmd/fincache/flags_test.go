package main

import (
	"testing"

	"fincache/internal/models"
)

func TestFilterFlags(t *testing.T) {
	flags := &filterFlags{
		datasetType: "ohlcv",
		symbol:      "AAPL",
		start:       "2024-01-01",
		end:         "2024-01-31",
		limit:       5,
	}
	filter, err := flags.filter()
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if filter.DatasetType != models.TypeOHLCV || filter.Symbol != "AAPL" || filter.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", filter)
	}
	if filter.Range == nil || filter.Range.String() != "2024-01-01..2024-01-31" {
		t.Fatalf("unexpected range: %v", filter.Range)
	}
}

func TestFilterFlagsNormalizes(t *testing.T) {
	flags := &filterFlags{
		datasetType: "OHLCV",
		symbol:      " aapl ",
		frequency:   "Daily",
		source:      "Alpaca",
	}
	filter, err := flags.filter()
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if filter.DatasetType != models.TypeOHLCV {
		t.Fatalf("expected ohlcv, got %q", filter.DatasetType)
	}
	if filter.Symbol != "AAPL" || filter.Frequency != "daily" || filter.Source != "alpaca" {
		t.Fatalf("filter not normalized: %+v", filter)
	}
}

func TestFilterFlagsRejectsHalfRange(t *testing.T) {
	flags := &filterFlags{start: "2024-01-01"}
	if _, err := flags.filter(); err == nil {
		t.Fatal("expected error for start without end")
	}
}

func TestFilterFlagsKey(t *testing.T) {
	flags := &filterFlags{
		datasetType: "ohlcv",
		symbol:      "aapl",
		frequency:   "Daily",
		source:      "Alpaca",
	}
	key, err := flags.key()
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if key.String() != "ohlcv/AAPL/daily/alpaca" {
		t.Fatalf("unexpected key %s", key)
	}
}

func TestParseSchemaFields(t *testing.T) {
	fingerprint, err := parseSchemaFields("date:string,close:float64")
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if fingerprint == "" {
		t.Fatal("expected a fingerprint")
	}

	same, err := parseSchemaFields("Date:String, Close:Float64")
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if same != fingerprint {
		t.Fatal("expected fingerprint to ignore case and spacing")
	}

	if _, err := parseSchemaFields("date"); err == nil {
		t.Fatal("expected error for field without type")
	}
	if empty, err := parseSchemaFields(""); err != nil || empty != "" {
		t.Fatalf("expected empty fingerprint, got %q (err: %v)", empty, err)
	}
}
