// Package blobstore persists immutable byte payloads under opaque
// identifier-named files in a flat directory. It never inspects or
// indexes content.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when a requested blob does not exist.
var ErrNotFound = errors.New("blob not found")

const tmpDirName = "tmp"

// zstd frame magic, used to recognize compressed blobs on read.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Store writes and reads blob files under a single root directory.
// Writes go to a temp file first and are renamed into place, so a
// partial file is never visible under its final name.
type Store struct {
	root     string
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// Option configures a Store.
type Option func(*Store)

// WithCompression stores payloads zstd-compressed on disk. Reads stay
// transparent either way, but compressed blob files are no longer
// byte-identical to the ingested payload, so leave this off when
// callers read blob files directly.
func WithCompression() Option {
	return func(s *Store) { s.compress = true }
}

// New creates a blob store rooted at root, creating the directory and
// its temp subdirectory as needed.
func New(root string, opts ...Option) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, tmpDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create blob temp dir: %w", err)
	}

	s := &Store{root: abs}
	for _, opt := range opts {
		opt(s)
	}

	if s.compress {
		if s.encoder, err = zstd.NewWriter(nil); err != nil {
			return nil, err
		}
	}
	if s.decoder, err = zstd.NewReader(nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the absolute blob root directory.
func (s *Store) Root() string {
	return s.root
}

// Put writes payload to <id>.<ext> and returns the path relative to the
// store root. The write is atomic: a temp file is written and renamed.
func (s *Store) Put(ctx context.Context, id, ext string, payload []byte) (string, error) {
	if s == nil {
		return "", fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := blobFileName(id, ext)
	if err != nil {
		return "", err
	}

	data := payload
	if s.compress {
		data = s.encoder.EncodeAll(payload, nil)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, tmpDirName), "put-*")
	if err != nil {
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}

	dst := filepath.Join(s.root, name)
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	return name, nil
}

// Get reads a blob by its store-relative path.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := s.absPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read blob %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read blob %s: %w", path, err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		decoded, err := s.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress blob %s: %w", path, err)
		}
		return decoded, nil
	}
	return data, nil
}

// Delete removes a blob. A missing target is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if s == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a blob file is present.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	abs, err := s.absPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the store-relative paths of all blob files, skipping the
// temp directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		paths = append(paths, de.Name())
	}
	return paths, nil
}

func blobFileName(id, ext string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("blob id is required")
	}
	if strings.ContainsAny(id, "/\\") {
		return "", fmt.Errorf("invalid blob id %q", id)
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", fmt.Errorf("blob extension is required")
	}
	return id + "." + ext, nil
}

func (s *Store) absPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("blob path is required")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("blob path must be relative")
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || strings.HasPrefix(clean, "..") || strings.Contains(clean, string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
