// Package domain contains the core domain models of the dependency graph engine.
package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Placeholder is displayed for absent textual node attributes.
const Placeholder = "-"

// EdgeLabel names the relation an edge stands for.
type EdgeLabel string

const (
	// EdgeBlocks connects a blocker to the issue it blocks.
	EdgeBlocks EdgeLabel = "blocks"
	// EdgeSubtask connects a subtask to its parent.
	EdgeSubtask EdgeLabel = "subtask"
)

// GraphNode is the presentation view of an issue inside a graph.
type GraphNode struct {
	ID            string   `json:"id"`
	Key           string   `json:"key"`
	Summary       string   `json:"summary"`
	Status        string   `json:"status"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	StoryPoints   *float64 `json:"story_points"`
	URL           string   `json:"url"`
	IsOriginal    bool     `json:"isOriginal"`
	IsHighlighted bool     `json:"isHighlighted"`
}

// NewGraphNode derives a node from a record.
func NewGraphNode(r *IssueRecord, server string, original, highlighted bool) GraphNode {
	return GraphNode{
		ID:            r.Key,
		Key:           r.Key,
		Summary:       r.Summary,
		Status:        orPlaceholder(r.Status),
		Start:         orPlaceholder(r.StartDate),
		End:           orPlaceholder(r.EndDate),
		StoryPoints:   r.StoryPoints,
		URL:           BrowseURL(server, r.Key),
		IsOriginal:    original,
		IsHighlighted: highlighted,
	}
}

// BrowseURL returns the tracker page of an issue.
func BrowseURL(server, key string) string {
	return strings.TrimRight(server, "/") + "/browse/" + key
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

// GraphEdge is a directed, labelled relation between two nodes.
type GraphEdge struct {
	Source string    `json:"source"`
	Target string    `json:"target"`
	Label  EdgeLabel `json:"label"`
}

// CompareEdges orders edges by source, target and label.
func CompareEdges(a, b GraphEdge) int {
	return cmp.Or(
		cmp.Compare(a.Source, b.Source),
		cmp.Compare(a.Target, b.Target),
		cmp.Compare(a.Label, b.Label),
	)
}

// Graph is the flat node and edge set produced for one request.
type Graph struct {
	JQL          string      `json:"jql"`
	HighlightJQL string      `json:"highlight_jql,omitempty"`
	Nodes        []GraphNode `json:"nodes"`
	Edges        []GraphEdge `json:"edges"`
}

// Node returns the node with the given key.
func (g *Graph) Node(key string) (GraphNode, bool) {
	idx := slices.IndexFunc(g.Nodes, func(n GraphNode) bool { return n.Key == key })
	if idx < 0 {
		return GraphNode{}, false
	}
	return g.Nodes[idx], true
}

// GraphRequest carries the parameters of a graph build.
type GraphRequest struct {
	Query           string
	HighlightQuery  string
	MaxResults      int
	IncludeChildren bool
	FullTree        bool
	NoCache         bool
}

// Validate checks the request bounds.
func (r GraphRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.MaxResults < MinMaxResults || r.MaxResults > MaxMaxResults {
		return ErrInvalidMaxResults
	}
	return nil
}

// Fingerprint identifies the request for whole-result caching.
func (r GraphRequest) Fingerprint() string {
	return Fingerprint(map[string]any{
		"jql":                  r.Query,
		"highlight_jql":        r.HighlightQuery,
		"max_results":          r.MaxResults,
		"child_as_blocking":    r.IncludeChildren,
		"show_dependency_tree": r.FullTree,
	})
}

// GraphQuery is a graph request as entered by a user: either raw JQL or filters.
type GraphQuery struct {
	Project         string
	Text            string
	Statuses        []string
	JQL             string
	HighlightJQL    string
	MaxResults      int
	IncludeChildren bool
	FullTree        bool
	NoCache         bool
}

// Request resolves the query. Raw JQL overrides the filters; a zero MaxResults
// selects defaultMax.
func (q GraphQuery) Request(defaultMax int) GraphRequest {
	query := strings.TrimSpace(q.JQL)
	if query == "" {
		query = BuildJQL(q.Project, q.Text, q.Statuses)
	}

	maxResults := q.MaxResults
	if maxResults == 0 {
		maxResults = defaultMax
	}

	return GraphRequest{
		Query:           query,
		HighlightQuery:  strings.TrimSpace(q.HighlightJQL),
		MaxResults:      maxResults,
		IncludeChildren: q.IncludeChildren,
		FullTree:        q.FullTree,
		NoCache:         q.NoCache,
	}
}
