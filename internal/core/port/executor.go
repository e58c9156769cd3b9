package port

import (
	"context"
	"trackerbot/internal/core/domain"
)

type QueryExecutor interface {
	// Search runs a predefined query against the issue tracker and returns the matching result set.
	Search(ctx context.Context, query string) (*domain.SearchResult, error)
}
