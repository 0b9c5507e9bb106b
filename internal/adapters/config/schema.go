package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const fileHeader = "# depgraph configuration. Environment variables DEPGRAPH_<SECTION>_<KEY> override every value.\n"

// fileSchema is the on-disk shape of depgraph.yaml. Durations are kept as strings.
type fileSchema struct {
	Jira   jiraSchema          `yaml:"jira"`
	Cache  cacheSchema         `yaml:"cache"`
	Graph  domain.GraphConfig  `yaml:"graph"`
	Server domain.ServerConfig `yaml:"server"`
	Log    domain.LogConfig    `yaml:"log"`
}

type jiraSchema struct {
	Server            string  `yaml:"server"`
	Email             string  `yaml:"email"`
	APIToken          string  `yaml:"api_token"`
	StartDateField    string  `yaml:"start_date_field"`
	EndDateField      string  `yaml:"end_date_field"`
	StoryPointsField  string  `yaml:"story_points_field"`
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Fixtures          string  `yaml:"fixtures,omitempty"`
}

type cacheSchema struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	TTL     string `yaml:"ttl"`
}

// Render encodes cfg in the config file format.
func Render(cfg *domain.Config) ([]byte, error) {
	schema := fileSchema{
		Jira: jiraSchema{
			Server:            cfg.Jira.Server,
			Email:             cfg.Jira.Email,
			APIToken:          cfg.Jira.APIToken,
			StartDateField:    cfg.Jira.StartDateField,
			EndDateField:      cfg.Jira.EndDateField,
			StoryPointsField:  cfg.Jira.StoryPointsField,
			Timeout:           cfg.Jira.Timeout.String(),
			RequestsPerSecond: cfg.Jira.RequestsPerSecond,
			Fixtures:          cfg.Jira.Fixtures,
		},
		Cache: cacheSchema{
			Backend: string(cfg.Cache.Backend),
			Dir:     cfg.Cache.Dir,
			TTL:     cfg.Cache.TTL.String(),
		},
		Graph:  cfg.Graph,
		Server: cfg.Server,
		Log:    cfg.Log,
	}

	data, err := yaml.Marshal(schema)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}
	return append([]byte(fileHeader), data...), nil
}

// WriteDefault writes the default configuration to path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return zerr.With(domain.ErrConfigExists, "path", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}

	data, err := Render(domain.DefaultConfig())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", path)
	}
	return nil
}
