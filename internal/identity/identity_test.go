package identity

import "testing"

func TestContentHashDeterministic(t *testing.T) {
	payload := []byte("date,open,close\n2024-01-02,100,101\n")
	first := ContentHash(payload)
	second := ContentHash(payload)
	if first != second {
		t.Fatalf("content hash not deterministic: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if ContentHash([]byte("other")) == first {
		t.Fatal("different payloads must not share a hash")
	}
}

func TestStorageIDContentPolicy(t *testing.T) {
	hash := ContentHash([]byte("payload"))
	id, err := StorageID(PolicyContent, hash, "")
	if err != nil {
		t.Fatalf("storage id: %v", err)
	}
	if id != hash[:32] {
		t.Fatalf("expected digest prefix, got %s", id)
	}

	again, err := StorageID(PolicyContent, hash, "")
	if err != nil {
		t.Fatalf("storage id again: %v", err)
	}
	if id != again {
		t.Fatal("content-derived ids must be stable")
	}

	if _, err := StorageID(PolicyContent, "abc", ""); err == nil {
		t.Fatal("expected error for short hash")
	}
}

func TestStorageIDContentPolicyScoped(t *testing.T) {
	hash := ContentHash([]byte("payload"))

	scoped, err := StorageID(PolicyContent, hash, "ohlcv/AAPL/daily/alpaca 2024-01-01..2024-01-31")
	if err != nil {
		t.Fatalf("storage id: %v", err)
	}
	again, err := StorageID(PolicyContent, hash, "ohlcv/AAPL/daily/alpaca 2024-01-01..2024-01-31")
	if err != nil {
		t.Fatalf("storage id again: %v", err)
	}
	if scoped != again {
		t.Fatal("scoped ids must be stable for the same scope")
	}
	if len(scoped) != 32 {
		t.Fatalf("expected 32-char id, got %d", len(scoped))
	}

	other, err := StorageID(PolicyContent, hash, "ohlcv/AAPL/daily/alpaca 2024-02-01..2024-02-29")
	if err != nil {
		t.Fatalf("storage id: %v", err)
	}
	if other == scoped {
		t.Fatal("identical bytes under different scopes must get distinct ids")
	}
}

func TestStorageIDRandomPolicy(t *testing.T) {
	hash := ContentHash([]byte("payload"))
	first, err := StorageID(PolicyRandom, hash, "")
	if err != nil {
		t.Fatalf("storage id: %v", err)
	}
	second, err := StorageID(PolicyRandom, hash, "")
	if err != nil {
		t.Fatalf("storage id: %v", err)
	}
	if first == second {
		t.Fatal("random ids must differ per call")
	}
}

func TestParseIDPolicy(t *testing.T) {
	tests := []struct {
		raw     string
		want    IDPolicy
		wantErr bool
	}{
		{"content", PolicyContent, false},
		{"RANDOM", PolicyRandom, false},
		{"", PolicyContent, false},
		{"uuid", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIDPolicy(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseIDPolicy(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseIDPolicy(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseIDPolicy(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestSchemaFingerprint(t *testing.T) {
	fields := []SchemaField{
		{Name: "date", Type: "timestamp"},
		{Name: "open", Type: "float64"},
		{Name: "close", Type: "float64"},
	}

	first := SchemaFingerprint(fields)
	second := SchemaFingerprint(fields)
	if first == "" || first != second {
		t.Fatalf("fingerprint not deterministic: %q vs %q", first, second)
	}

	caseInsensitive := SchemaFingerprint([]SchemaField{
		{Name: "Date", Type: "Timestamp"},
		{Name: "OPEN", Type: "Float64"},
		{Name: "Close", Type: "FLOAT64"},
	})
	if caseInsensitive != first {
		t.Fatal("fingerprint must be case-insensitive on names and types")
	}

	reordered := SchemaFingerprint([]SchemaField{
		{Name: "open", Type: "float64"},
		{Name: "date", Type: "timestamp"},
		{Name: "close", Type: "float64"},
	})
	if reordered == first {
		t.Fatal("field order must affect the fingerprint")
	}

	if SchemaFingerprint(nil) != "" {
		t.Fatal("empty layout must yield empty fingerprint")
	}
}
