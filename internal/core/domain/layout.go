package domain

import (
	"path/filepath"
	"time"
)

const (
	// DirName is the name of the local working directory.
	DirName = ".depgraph"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "depgraph.yaml"

	// BadgerDirName is the directory of the badger cache backend inside the cache directory.
	BadgerDirName = "badger"

	// SQLiteFileName is the database file of the sqlite cache backend inside the cache directory.
	SQLiteFileName = "cache.db"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

const (
	// DefaultTTL is the lifetime of a cache entry when none is given.
	DefaultTTL = time.Hour

	// DefaultMaxDepth bounds a full dependency tree expansion.
	DefaultMaxDepth = 10

	// ShallowDepth surfaces only immediate blockers and blocked issues.
	ShallowDepth = 1

	// DefaultConcurrency bounds the parallel fetches of one traversal level.
	DefaultConcurrency = 8

	// DefaultMaxResults is the default size of the primary search.
	DefaultMaxResults = 50

	// MinMaxResults and MaxMaxResults bound the size of the primary search.
	MinMaxResults = 1
	MaxMaxResults = 500

	// SearchPageSize is the largest batch requested from the tracker at once.
	SearchPageSize = 50

	// DefaultServerAddr is the listen address of the HTTP server.
	DefaultServerAddr = "127.0.0.1:8000"

	// DefaultTrackerTimeout bounds a single tracker request.
	DefaultTrackerTimeout = 30 * time.Second

	// DefaultRequestsPerSecond limits the tracker request rate.
	DefaultRequestsPerSecond = 10.0
)

// Default tracker field ids of the custom fields.
const (
	DefaultStartDateField   = "customfield_10015"
	DefaultEndDateField     = "customfield_10016"
	DefaultStoryPointsField = "customfield_10005"
)

// DefaultCachePath returns the default cache directory.
// It joins .depgraph and cache.
func DefaultCachePath() string {
	return filepath.Join(DirName, CacheDirName)
}
