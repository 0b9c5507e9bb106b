package ports

import (
	"context"

	"go.trai.ch/depgraph/internal/core/domain"
)

// IssueRepository resolves issues cache-first and hides tracker failures.
//
//go:generate mockgen -source=issues.go -destination=mocks/mock_issues.go -package=mocks
type IssueRepository interface {
	// GetIssue returns the issue, or false when it cannot be obtained.
	GetIssue(ctx context.Context, key string, fields domain.FieldSet) (*domain.IssueRecord, bool)

	// Search returns up to maxResults issues in tracker order, or none on failure.
	Search(ctx context.Context, query string, maxResults int, fields domain.FieldSet) []domain.IssueRecord
}
