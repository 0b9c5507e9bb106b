// Package config provides the configuration loader for depgraph.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment override, e.g. DEPGRAPH_CACHE_TTL.
const EnvPrefix = "DEPGRAPH"

// EnvConfigPath names an explicit configuration file.
const EnvConfigPath = "DEPGRAPH_CONFIG"

// legacyEnv maps keys to the environment variables the tool has always honoured.
var legacyEnv = map[string]string{
	"jira.server":    "JIRA_SERVER",
	"jira.email":     "JIRA_EMAIL",
	"jira.api_token": "JIRA_API_TOKEN",
}

// Loader implements ports.ConfigLoader using viper.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load merges defaults, the discovered config file and the environment.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		discovered, err := l.DiscoverConfigPath(cwd)
		if err != nil {
			return nil, err
		}
		configPath = discovered
	}

	v := newViper()
	baseDir := cwd
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
		}
		baseDir = filepath.Dir(configPath)
		l.Logger.Debug("using config " + configPath)
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg.Cache.Dir = resolvePath(baseDir, cfg.Cache.Dir)
	cfg.Jira.Fixtures = resolvePath(baseDir, cfg.Jira.Fixtures)

	return &cfg, nil
}

// DiscoverConfigPath walks up from cwd to find depgraph.yaml.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	def := domain.DefaultConfig()
	v.SetDefault("jira.server", def.Jira.Server)
	v.SetDefault("jira.email", def.Jira.Email)
	v.SetDefault("jira.api_token", def.Jira.APIToken)
	v.SetDefault("jira.start_date_field", def.Jira.StartDateField)
	v.SetDefault("jira.end_date_field", def.Jira.EndDateField)
	v.SetDefault("jira.story_points_field", def.Jira.StoryPointsField)
	v.SetDefault("jira.timeout", def.Jira.Timeout)
	v.SetDefault("jira.requests_per_second", def.Jira.RequestsPerSecond)
	v.SetDefault("jira.fixtures", def.Jira.Fixtures)
	v.SetDefault("cache.backend", string(def.Cache.Backend))
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("cache.ttl", def.Cache.TTL)
	v.SetDefault("graph.max_depth", def.Graph.MaxDepth)
	v.SetDefault("graph.concurrency", def.Graph.Concurrency)
	v.SetDefault("graph.max_results", def.Graph.MaxResults)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.json", def.Log.JSON)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envKey, legacy)
	}

	return v
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
