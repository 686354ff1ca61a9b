// Package file implements the session cache as one JSON file per key in a
// local directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// Cache stores records under <dir>/<key>.json.
type Cache struct {
	dir string
}

// New creates a Cache rooted at dir, creating it if needed.
// An empty dir selects DefaultDir().
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("file cache: mkdir %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir returns <user config dir>/qaza.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("file cache: user config dir: %w", err)
	}
	return filepath.Join(base, "qaza"), nil
}

// Dir returns the directory records are written to.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Load returns the record for key or domain.ErrNotFound.
func (c *Cache) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file cache: read %s: %w", key, err)
	}
	return data, nil
}

// Save writes the record atomically: a temp file in the same directory is
// renamed over the target.
func (c *Cache) Save(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file cache: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file cache: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file cache: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file cache: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file cache: close: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		return fmt.Errorf("file cache: rename: %w", err)
	}
	return nil
}

// Delete removes the record. A missing record is not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file cache: remove %s: %w", key, err)
	}
	return nil
}
