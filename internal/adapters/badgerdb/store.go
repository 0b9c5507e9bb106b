// Package badgerdb implements the cache backend on an embedded badger database.
package badgerdb

import (
	"context"
	"errors"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheBackend. Keys are "<partition>/<name>".
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", dir)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}
	return &Store{db: db}, nil
}

// Name identifies the backend.
func (s *Store) Name() string {
	return string(domain.CacheBackendBadger)
}

// Read returns the payload, or nil if the key does not exist.
func (s *Store) Read(_ context.Context, ns domain.CacheNamespace, name string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(ns, name))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}
	return payload, nil
}

// Write stores the payload.
func (s *Store) Write(_ context.Context, ns domain.CacheNamespace, name string, payload []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(ns, name), payload)
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Delete removes the key.
func (s *Store) Delete(_ context.Context, ns domain.CacheNamespace, name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(ns, name))
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error())
	}
	return nil
}

// Scan iterates the keys of the namespace in key order.
// Payloads are collected first so fn may write to the store.
func (s *Store) Scan(ctx context.Context, ns domain.CacheNamespace, fn func(name string, payload []byte) error) error {
	type kv struct {
		name    string
		payload []byte
	}

	var items []kv
	prefix := key(ns, "")
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			payload, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			items = append(items, kv{name: string(item.Key()[len(prefix):]), payload: payload})
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheScanFailed.Error())
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(item.name, item.payload); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(ns domain.CacheNamespace, name string) []byte {
	return []byte(ns.Partition() + "/" + name)
}
