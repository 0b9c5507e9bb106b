package domain

import "slices"

// Logical issue fields. Tracker adapters translate them to their own field ids.
const (
	FieldSummary     = "summary"
	FieldStatus      = "status"
	FieldIssueLinks  = "issuelinks"
	FieldSubtasks    = "subtasks"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStoryPoints = "story_points"
)

// FieldSet is a sorted, duplicate-free set of logical field names.
type FieldSet []string

// NewFieldSet builds a normalized FieldSet.
func NewFieldSet(fields ...string) FieldSet {
	set := make(FieldSet, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			set = append(set, f)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// TraversalFields is the minimal field set needed to expand a node.
func TraversalFields() FieldSet {
	return NewFieldSet(FieldIssueLinks, FieldSubtasks)
}

// DetailFields is the field set needed to render a node and its edges.
func DetailFields() FieldSet {
	return NewFieldSet(
		FieldSummary,
		FieldStatus,
		FieldIssueLinks,
		FieldSubtasks,
		FieldStartDate,
		FieldEndDate,
		FieldStoryPoints,
	)
}

// Contains reports whether every field of other is part of s.
func (s FieldSet) Contains(other FieldSet) bool {
	for _, f := range other {
		if _, found := slices.BinarySearch(s, f); !found {
			return false
		}
	}
	return true
}

// Union returns the normalized union of both sets.
func (s FieldSet) Union(other FieldSet) FieldSet {
	all := make([]string, 0, len(s)+len(other))
	all = append(all, s...)
	all = append(all, other...)
	return NewFieldSet(all...)
}
