// Package sqlitedb implements the cache backend on a sqlite database.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/zerr"

	// Register the pure Go sqlite driver.
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cache_entries (
	namespace TEXT NOT NULL,
	name      TEXT NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (namespace, name)
)`

// Store implements ports.CacheBackend with a single sqlite table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	return &Store{db: db}, nil
}

// Name identifies the backend.
func (s *Store) Name() string {
	return string(domain.CacheBackendSQLite)
}

// Read returns the payload, or nil if the row does not exist.
func (s *Store) Read(ctx context.Context, ns domain.CacheNamespace, name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cache_entries WHERE namespace = ? AND name = ?`,
		ns.Partition(), name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	return payload, nil
}

// Write upserts the payload.
func (s *Store) Write(ctx context.Context, ns domain.CacheNamespace, name string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (namespace, name, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace, name) DO UPDATE SET
			payload = excluded.payload`,
		ns.Partition(), name, payload)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Delete removes the row.
func (s *Store) Delete(ctx context.Context, ns domain.CacheNamespace, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE namespace = ? AND name = ?`,
		ns.Partition(), name)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error())
	}
	return nil
}

// Scan calls fn for every row of the namespace, ordered by name.
// Rows are read completely before fn runs so fn may write to the store.
func (s *Store) Scan(ctx context.Context, ns domain.CacheNamespace, fn func(name string, payload []byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, payload FROM cache_entries WHERE namespace = ? ORDER BY name`,
		ns.Partition())
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
	}

	type row struct {
		name    string
		payload []byte
	}
	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.name, &r.payload); err != nil {
			_ = rows.Close()
			return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
		}
		all = append(all, r)
	}
	if err := rows.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
	}
	if err := rows.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
	}

	for _, r := range all {
		if err := fn(r.name, r.payload); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
