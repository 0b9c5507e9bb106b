package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyQuery is returned when a graph request carries no query.
	ErrEmptyQuery = zerr.New("query must not be empty")

	// ErrInvalidMaxResults is returned when max results is out of bounds.
	ErrInvalidMaxResults = zerr.New("max results must be between 1 and 500")

	// ErrInvalidParameter is returned when a request parameter cannot be parsed.
	ErrInvalidParameter = zerr.New("invalid parameter")

	// ErrCacheCreateFailed is returned when the cache storage cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache storage")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheUnmarshalFailed is returned when a cache entry cannot be decoded.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal cache entry")

	// ErrCacheMarshalFailed is returned when a value cannot be encoded for the cache.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheDeleteFailed is returned when a cache entry cannot be removed.
	ErrCacheDeleteFailed = zerr.New("failed to delete cache entry")

	// ErrCacheScanFailed is returned when the cache content cannot be listed.
	ErrCacheScanFailed = zerr.New("failed to scan cache")

	// ErrUnknownCacheBackend is returned when the configured cache backend does not exist.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend, expected 'file', 'badger' or 'sqlite'")

	// ErrTrackerRequestFailed is returned when a tracker request fails.
	ErrTrackerRequestFailed = zerr.New("tracker request failed")

	// ErrTrackerParseFailed is returned when a tracker response cannot be decoded.
	ErrTrackerParseFailed = zerr.New("failed to parse tracker response")

	// ErrIssueNotFound is returned when the tracker does not know the issue.
	ErrIssueNotFound = zerr.New("issue not found")

	// ErrTrackerNotConfigured is returned when neither server nor fixtures are configured.
	ErrTrackerNotConfigured = zerr.New("tracker is not configured, set jira.server or jira.fixtures")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigWriteFailed is returned when the config file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write config file")

	// ErrConfigExists is returned when a config file would be overwritten.
	ErrConfigExists = zerr.New("config file already exists")

	// ErrFixtureReadFailed is returned when a fixture file cannot be read.
	ErrFixtureReadFailed = zerr.New("failed to read fixture file")

	// ErrFixtureParseFailed is returned when a fixture file cannot be decoded.
	ErrFixtureParseFailed = zerr.New("failed to parse fixture file")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("http server failed")
)
