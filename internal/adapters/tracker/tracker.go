// Package tracker selects the tracker client from the configuration.
package tracker

import (
	"context"
	"strings"

	"go.trai.ch/depgraph/internal/adapters/fixture"
	"go.trai.ch/depgraph/internal/adapters/jira"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
)

// Configured reports whether a tracker source is set.
func Configured(cfg domain.JiraConfig) bool {
	return strings.TrimSpace(cfg.Fixtures) != "" || strings.TrimSpace(cfg.Server) != ""
}

// New returns the fixture tracker when fixtures are configured and the Jira client otherwise.
// Without either, every call fails with domain.ErrTrackerNotConfigured.
func New(cfg domain.JiraConfig) (ports.TrackerClient, error) {
	switch {
	case strings.TrimSpace(cfg.Fixtures) != "":
		t, err := fixture.Load(cfg.Fixtures)
		if err != nil {
			return nil, err
		}
		return t, nil
	case strings.TrimSpace(cfg.Server) != "":
		c, err := jira.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return unconfigured{}, nil
	}
}

type unconfigured struct{}

func (unconfigured) GetIssue(context.Context, string, domain.FieldSet) (*domain.IssueRecord, error) {
	return nil, domain.ErrTrackerNotConfigured
}

func (unconfigured) Search(context.Context, string, int, domain.FieldSet, string) (ports.SearchPage, error) {
	return ports.SearchPage{}, domain.ErrTrackerNotConfigured
}
