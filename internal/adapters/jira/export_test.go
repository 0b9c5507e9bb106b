package jira

import (
	"net/http"

	"go.trai.ch/depgraph/internal/core/domain"
)

// NewClientWithHTTP exposes newClientWithHTTP for tests.
func NewClientWithHTTP(cfg domain.JiraConfig, httpClient *http.Client) (*Client, error) {
	return newClientWithHTTP(cfg, httpClient)
}
