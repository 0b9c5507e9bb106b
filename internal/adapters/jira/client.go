// Package jira implements the tracker client over the Jira Cloud REST API.
package jira

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

const (
	issuePath  = "/rest/api/3/issue/"
	searchPath = "/rest/api/3/search/jql"
)

// Client implements ports.TrackerClient.
type Client struct {
	baseURL    string
	email      string
	token      string
	fields     fieldMap
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the configured Jira site.
func NewClient(cfg domain.JiraConfig) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTrackerTimeout
	}
	return newClientWithHTTP(cfg, &http.Client{Timeout: timeout})
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(cfg domain.JiraConfig, httpClient *http.Client) (*Client, error) {
	server := strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	if server == "" {
		return nil, domain.ErrTrackerNotConfigured
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = domain.DefaultRequestsPerSecond
	}

	return &Client{
		baseURL:    server,
		email:      cfg.Email,
		token:      cfg.APIToken,
		fields:     newFieldMap(cfg),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// GetIssue fetches a single issue.
func (c *Client) GetIssue(ctx context.Context, key string, fields domain.FieldSet) (*domain.IssueRecord, error) {
	query := url.Values{}
	query.Set("fields", strings.Join(c.fields.ids(fields), ","))

	var raw issueResponse
	if err := c.get(ctx, "get_issue", issuePath+url.PathEscape(key), query, &raw); err != nil {
		return nil, zerr.With(err, "issue_key", key)
	}

	rec := c.fields.normalize(&raw, fields)
	return &rec, nil
}

// Search fetches one page of the JQL search.
func (c *Client) Search(
	ctx context.Context,
	jql string,
	maxResults int,
	fields domain.FieldSet,
	token string,
) (ports.SearchPage, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(maxResults))
	query.Set("fields", strings.Join(c.fields.ids(fields), ","))
	if token != "" {
		query.Set("nextPageToken", token)
	}

	var raw searchResponse
	if err := c.get(ctx, "search", searchPath, query, &raw); err != nil {
		return ports.SearchPage{}, zerr.With(err, "jql", jql)
	}

	page := ports.SearchPage{Issues: make([]domain.IssueRecord, 0, len(raw.Issues))}
	for i := range raw.Issues {
		page.Issues = append(page.Issues, c.fields.normalize(&raw.Issues[i], fields))
	}
	if !raw.IsLast {
		page.NextToken = raw.NextPageToken
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")
	if c.email != "" || c.token != "" {
		req.SetBasicAuth(c.email, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	requestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrIssueNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return zerr.With(domain.ErrTrackerRequestFailed, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTrackerRequestFailed.Error())
	}

	if err := json.Unmarshal(body, target); err != nil {
		return zerr.Wrap(err, domain.ErrTrackerParseFailed.Error())
	}

	return nil
}
