// Package fs stores one JSON document per list in a local directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezkam/listly/internal/storage/document"
)

const ext = ".json"

// Store is a filesystem-backed list repository.
type Store struct {
	*document.Collection
}

// NewStore creates a store rooted at baseDir, creating it if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Store{Collection: document.NewCollection(&dir{base: baseDir})}, nil
}

// dir implements document.Blobs with one file per key.
type dir struct {
	base string
}

func (d *dir) path(id string) (string, error) {
	// IDs come from URLs; refuse anything that could escape the directory.
	if id == "" || id != filepath.Base(id) || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", document.ErrBlobNotFound
	}
	return filepath.Join(d.base, id+ext), nil
}

func (d *dir) Get(_ context.Context, id string) ([]byte, error) {
	path, err := d.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, document.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Put writes to a temp file and renames it over the target so readers never
// see a partial document.
func (d *dir) Put(_ context.Context, id string, data []byte) error {
	path, err := d.path(id)
	if err != nil {
		return fmt.Errorf("invalid list id %q", id)
	}

	tmp, err := os.CreateTemp(d.base, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func (d *dir) Delete(_ context.Context, id string) error {
	path, err := d.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.ErrBlobNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (d *dir) Exists(_ context.Context, id string) (bool, error) {
	path, err := d.path(id)
	if err != nil {
		return false, nil
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
}

func (d *dir) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.base)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	return keys, nil
}
