// Package cas implements the file-per-entry cache backend.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

const entryExt = ".json"

// Store implements ports.CacheBackend with one JSON file per entry,
// grouped in one directory per namespace.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir. The directory is created lazily.
func NewStore(dir string) (*Store, error) {
	cleanPath := filepath.Clean(dir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", cleanPath)
	}
	return &Store{root: cleanPath}, nil
}

// Name identifies the backend.
func (s *Store) Name() string {
	return string(domain.CacheBackendFile)
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// Read returns the payload of the entry, or nil if it does not exist.
func (s *Store) Read(_ context.Context, ns domain.CacheNamespace, name string) ([]byte, error) {
	filename := s.getFilename(ns, name)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	return data, nil
}

// Write stores the payload atomically.
func (s *Store) Write(_ context.Context, ns domain.CacheNamespace, name string, payload []byte) error {
	if err := atomicWriteFile(s.getFilename(ns, name), payload); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Delete removes the entry file.
func (s *Store) Delete(_ context.Context, ns domain.CacheNamespace, name string) error {
	err := os.Remove(s.getFilename(ns, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error())
	}
	return nil
}

// Scan calls fn for every entry file of the namespace.
func (s *Store) Scan(ctx context.Context, ns domain.CacheNamespace, fn func(name string, payload []byte) error) error {
	dir := filepath.Join(s.root, ns.Partition())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), entryExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), entryExt)
		//nolint:gosec // Path is constructed from trusted directory and listed filename
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
		}
		if err := fn(name, data); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) getFilename(ns domain.CacheNamespace, name string) string {
	return filepath.Join(s.root, ns.Partition(), name+entryExt)
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
