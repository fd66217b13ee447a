package blobstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	payload := []byte("date,open,close\n2024-01-02,100,101\n")

	path, err := store.Put(ctx, "abc123", "csv", payload)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if path != "abc123.csv" {
		t.Fatalf("expected abc123.csv, got %s", path)
	}

	got, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q", got)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("delete missing should be noop: %v", err)
	}
	if _, err := store.Get(ctx, path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutLeavesNoPartialFile(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "blob1", "json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Only the final file should be visible; the temp dir must be empty.
	tmpEntries, err := os.ReadDir(filepath.Join(root, "tmp"))
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(tmpEntries) != 0 {
		t.Fatalf("expected empty temp dir, found %d entries", len(tmpEntries))
	}
}

func TestPutValidation(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "", "csv", nil); err == nil {
		t.Fatal("expected error for empty id")
	}
	if _, err := store.Put(ctx, "a/b", "csv", nil); err == nil {
		t.Fatal("expected error for id with separator")
	}
	if _, err := store.Put(ctx, "abc", "", nil); err == nil {
		t.Fatal("expected error for empty extension")
	}
}

func TestGetRejectsEscapingPaths(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, path := range []string{"", "../secret", "/etc/passwd", "sub/dir.csv"} {
		if _, err := store.Get(ctx, path); err == nil {
			t.Fatalf("expected error for path %q", path)
		}
	}
}

func TestList(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	paths, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected empty store, got %v", paths)
	}

	if _, err := store.Put(ctx, "one", "csv", []byte("a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "two", "json", []byte("b")); err != nil {
		t.Fatalf("put: %v", err)
	}

	paths, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 blobs, got %v", paths)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), WithCompression())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	payload := bytes.Repeat([]byte("2024-01-02,100.0,101.5,99.8,100.9,1200000\n"), 200)
	path, err := store.Put(ctx, "comp1", "csv", payload)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	// On-disk file should be the compressed form.
	raw, err := os.ReadFile(filepath.Join(store.Root(), path))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if len(raw) >= len(payload) {
		t.Fatalf("expected compressed file smaller than payload: %d >= %d", len(raw), len(payload))
	}

	got, err := store.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("compressed round trip mismatch")
	}
}

func TestUncompressedStoreReadsCompressedBlob(t *testing.T) {
	root := t.TempDir()
	compressed, err := New(root, WithCompression())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	payload := bytes.Repeat([]byte("abcdef"), 100)
	path, err := compressed.Put(ctx, "mixed", "bin", payload)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	plain, err := New(root)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	got, err := plain.Get(ctx, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("expected transparent read of compressed blob")
	}
}
