// Package fixture implements an offline tracker backed by a YAML issue set.
package fixture

import (
	"context"
	_ "embed"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

// DemoQuery is the search the demo fixture answers.
const DemoQuery = "project = DEMO"

// Link is the fixture form of an issue link.
type Link struct {
	Type      string `yaml:"type"`
	Outward   string `yaml:"outward"`
	Inward    string `yaml:"inward"`
	OtherKey  string `yaml:"other_key"`
	Direction string `yaml:"direction"`
}

// Issue is the fixture form of an issue.
type Issue struct {
	Key         string   `yaml:"key"`
	Summary     string   `yaml:"summary"`
	Status      *string  `yaml:"status"`
	StartDate   *string  `yaml:"start_date"`
	EndDate     *string  `yaml:"end_date"`
	StoryPoints *float64 `yaml:"story_points"`
	Links       []Link   `yaml:"links"`
	ChildKeys   []string `yaml:"child_keys"`
}

// File is the fixture file schema.
type File struct {
	Issues   []Issue             `yaml:"issues"`
	Searches map[string][]string `yaml:"searches"`
}

// Tracker implements ports.TrackerClient from fixture data.
type Tracker struct {
	order    []string
	issues   map[string]domain.IssueRecord
	searches map[string][]string
}

// Load reads a fixture file.
func Load(path string) (*Tracker, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFixtureReadFailed.Error()), "path", path)
	}
	tracker, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return tracker, nil
}

// Demo returns the embedded demo project.
func Demo() *Tracker {
	tracker, err := Parse(demoFixture)
	if err != nil {
		panic(err)
	}
	return tracker
}

// Parse decodes fixture data.
func Parse(data []byte) (*Tracker, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrFixtureParseFailed.Error())
	}

	t := &Tracker{
		issues:   make(map[string]domain.IssueRecord, len(file.Issues)),
		searches: make(map[string][]string, len(file.Searches)),
	}
	for i := range file.Issues {
		rec := file.Issues[i].record()
		if rec.Key == "" {
			return nil, zerr.With(domain.ErrFixtureParseFailed, "reason", "issue without key")
		}
		if _, dup := t.issues[rec.Key]; !dup {
			t.order = append(t.order, rec.Key)
		}
		t.issues[rec.Key] = rec
	}
	for query, keys := range file.Searches {
		t.searches[normalizeQuery(query)] = keys
	}
	return t, nil
}

// Records returns every fixture issue in file order, with all fields.
func (t *Tracker) Records() []domain.IssueRecord {
	out := make([]domain.IssueRecord, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.project(t.issues[key], domain.DetailFields()))
	}
	return out
}

// Searches returns the fixture queries with their result keys.
func (t *Tracker) Searches() map[string][]string {
	return t.searches
}

// GetIssue returns the fixture issue.
func (t *Tracker) GetIssue(_ context.Context, key string, fields domain.FieldSet) (*domain.IssueRecord, error) {
	rec, ok := t.issues[key]
	if !ok {
		return nil, zerr.With(domain.ErrIssueNotFound, "issue_key", key)
	}
	out := t.project(rec, fields)
	return &out, nil
}

// Search answers known queries from the fixture. Unknown queries match every issue.
// The page token is the offset of the next page.
func (t *Tracker) Search(
	ctx context.Context,
	query string,
	maxResults int,
	fields domain.FieldSet,
	token string,
) (ports.SearchPage, error) {
	keys, ok := t.searches[normalizeQuery(query)]
	if !ok {
		keys = t.order
	}

	offset := 0
	if token != "" {
		var err error
		if offset, err = strconv.Atoi(token); err != nil || offset < 0 {
			return ports.SearchPage{}, zerr.With(domain.ErrTrackerRequestFailed, "next_page_token", token)
		}
	}
	if maxResults <= 0 {
		maxResults = domain.SearchPageSize
	}

	var page ports.SearchPage
	end := min(offset+maxResults, len(keys))
	for _, key := range keys[min(offset, end):end] {
		rec, err := t.GetIssue(ctx, key, fields)
		if err != nil {
			return ports.SearchPage{}, zerr.With(err, "jql", query)
		}
		page.Issues = append(page.Issues, *rec)
	}
	if end < len(keys) {
		page.NextToken = strconv.Itoa(end)
	}
	return page, nil
}

// project keeps the requested fields, the way the tracker answers a field-limited request.
func (t *Tracker) project(rec domain.IssueRecord, fields domain.FieldSet) domain.IssueRecord {
	out := domain.IssueRecord{Key: rec.Key, Fields: fields}
	has := func(f string) bool { return fields.Contains(domain.FieldSet{f}) }
	if has(domain.FieldSummary) {
		out.Summary = rec.Summary
	}
	if has(domain.FieldStatus) {
		out.Status = rec.Status
	}
	if has(domain.FieldStartDate) {
		out.StartDate = rec.StartDate
	}
	if has(domain.FieldEndDate) {
		out.EndDate = rec.EndDate
	}
	if has(domain.FieldStoryPoints) {
		out.StoryPoints = rec.StoryPoints
	}
	if has(domain.FieldIssueLinks) {
		out.Links = append([]domain.IssueLink(nil), rec.Links...)
	}
	if has(domain.FieldSubtasks) {
		out.ChildKeys = append([]string(nil), rec.ChildKeys...)
	}
	return out
}

func (i *Issue) record() domain.IssueRecord {
	rec := domain.IssueRecord{
		Key:         strings.TrimSpace(i.Key),
		Summary:     i.Summary,
		Status:      i.Status,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		StoryPoints: i.StoryPoints,
		ChildKeys:   i.ChildKeys,
	}
	for _, l := range i.Links {
		rec.Links = append(rec.Links, domain.IssueLink{
			Type:      l.Type,
			Outward:   l.Outward,
			Inward:    l.Inward,
			OtherKey:  l.OtherKey,
			Direction: domain.LinkDirection(strings.ToLower(l.Direction)),
		})
	}
	return rec
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
