package domain

import "time"

// CacheBackend names a cache storage implementation.
type CacheBackend string

const (
	// CacheBackendFile stores one JSON file per entry.
	CacheBackendFile CacheBackend = "file"
	// CacheBackendBadger stores entries in an embedded badger database.
	CacheBackendBadger CacheBackend = "badger"
	// CacheBackendSQLite stores entries in a sqlite database.
	CacheBackendSQLite CacheBackend = "sqlite"
)

// Config is the resolved runtime configuration.
type Config struct {
	Jira   JiraConfig   `yaml:"jira" mapstructure:"jira"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Graph  GraphConfig  `yaml:"graph" mapstructure:"graph"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// JiraConfig configures the tracker client.
type JiraConfig struct {
	Server            string        `yaml:"server" mapstructure:"server"`
	Email             string        `yaml:"email" mapstructure:"email"`
	APIToken          string        `yaml:"api_token" mapstructure:"api_token"`
	StartDateField    string        `yaml:"start_date_field" mapstructure:"start_date_field"`
	EndDateField      string        `yaml:"end_date_field" mapstructure:"end_date_field"`
	StoryPointsField  string        `yaml:"story_points_field" mapstructure:"story_points_field"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Fixtures          string        `yaml:"fixtures,omitempty" mapstructure:"fixtures"`
}

// CacheConfig configures the cache store.
type CacheConfig struct {
	Backend CacheBackend  `yaml:"backend" mapstructure:"backend"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// GraphConfig configures graph construction.
type GraphConfig struct {
	MaxDepth    int `yaml:"max_depth" mapstructure:"max_depth"`
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
	MaxResults  int `yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	JSON  bool   `yaml:"json" mapstructure:"json"`
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			StartDateField:    DefaultStartDateField,
			EndDateField:      DefaultEndDateField,
			StoryPointsField:  DefaultStoryPointsField,
			Timeout:           DefaultTrackerTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Dir:     DefaultCachePath(),
			TTL:     DefaultTTL,
		},
		Graph: GraphConfig{
			MaxDepth:    DefaultMaxDepth,
			Concurrency: DefaultConcurrency,
			MaxResults:  DefaultMaxResults,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Level: "info"},
	}
}
