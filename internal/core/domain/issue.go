package domain

import "strings"

// LinkDirection tells on which side of a link the far-end issue sits.
type LinkDirection string

const (
	// LinkOutward marks a link whose far end is the outward issue.
	LinkOutward LinkDirection = "outward"
	// LinkInward marks a link whose far end is the inward issue.
	LinkInward LinkDirection = "inward"
)

const (
	blocksRelation   = "blocks"
	isBlockedByLabel = "is blocked by"
)

// IssueLink is a single relation entry of an issue.
type IssueLink struct {
	Type      string        `json:"type"`
	Outward   string        `json:"outward,omitempty"`
	Inward    string        `json:"inward,omitempty"`
	OtherKey  string        `json:"other_key,omitempty"`
	Direction LinkDirection `json:"direction,omitempty"`
}

// Blocks reports whether the owning issue blocks the outward far end.
func (l IssueLink) Blocks() bool {
	if l.Direction != LinkOutward || l.OtherKey == "" {
		return false
	}
	return strings.EqualFold(l.Type, blocksRelation) || strings.EqualFold(l.Outward, blocksRelation)
}

// BlockedBy reports whether the inward far end blocks the owning issue.
func (l IssueLink) BlockedBy() bool {
	if l.Direction != LinkInward || l.OtherKey == "" {
		return false
	}
	return strings.EqualFold(l.Type, blocksRelation) || strings.EqualFold(l.Inward, isBlockedByLabel)
}

// IssueRecord is the normalized, read-only copy of a tracker issue.
// Custom tracker fields are resolved into named fields at ingestion.
type IssueRecord struct {
	Key         string      `json:"key"`
	Summary     string      `json:"summary"`
	Status      *string     `json:"status"`
	StartDate   *string     `json:"start_date"`
	EndDate     *string     `json:"end_date"`
	StoryPoints *float64    `json:"story_points"`
	Links       []IssueLink `json:"links,omitempty"`
	ChildKeys   []string    `json:"child_keys,omitempty"`

	// Fields is the field set the record was fetched with.
	Fields FieldSet `json:"fields,omitempty"`
}

// Covers reports whether the record was fetched with at least the given fields.
func (r *IssueRecord) Covers(fields FieldSet) bool {
	return r.Fields.Contains(fields)
}

// BlockingNeighbours returns the far-end keys of every blocking relation, in link order.
func (r *IssueRecord) BlockingNeighbours() []string {
	var keys []string
	for _, link := range r.Links {
		if link.Blocks() || link.BlockedBy() {
			keys = append(keys, link.OtherKey)
		}
	}
	return keys
}

// BlockingEdges returns a blocker to blocked edge for every blocking relation.
func (r *IssueRecord) BlockingEdges() []GraphEdge {
	var edges []GraphEdge
	for _, link := range r.Links {
		if link.Blocks() {
			edges = append(edges, GraphEdge{Source: r.Key, Target: link.OtherKey, Label: EdgeBlocks})
		}
		if link.BlockedBy() {
			edges = append(edges, GraphEdge{Source: link.OtherKey, Target: r.Key, Label: EdgeBlocks})
		}
	}
	return edges
}

// SubtaskEdges returns a child to parent edge for every subtask.
func (r *IssueRecord) SubtaskEdges() []GraphEdge {
	edges := make([]GraphEdge, 0, len(r.ChildKeys))
	for _, child := range r.ChildKeys {
		edges = append(edges, GraphEdge{Source: child, Target: r.Key, Label: EdgeSubtask})
	}
	return edges
}
