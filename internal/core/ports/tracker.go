package ports

import (
	"context"

	"go.trai.ch/depgraph/internal/core/domain"
)

// SearchPage is one batch of a paginated tracker search.
type SearchPage struct {
	Issues []domain.IssueRecord

	// NextToken continues the search. It is empty on the last page.
	NextToken string
}

// TrackerClient defines the operations the engine needs from the issue tracker.
//
//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type TrackerClient interface {
	// GetIssue fetches a single issue with the given fields.
	GetIssue(ctx context.Context, key string, fields domain.FieldSet) (*domain.IssueRecord, error)

	// Search fetches one page of issues matching the query.
	// The token of the previous page is passed through unmodified.
	Search(ctx context.Context, query string, maxResults int, fields domain.FieldSet, token string) (SearchPage, error)
}
