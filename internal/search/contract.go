// Package search orchestrates a federated query: cache lookup, intent
// classification, parallel per-category searches, merge ranking, and
// history recording.
package search

import (
	"context"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

// Classifier turns a raw query into a structured search intent. It never
// fails; implementations degrade to a deterministic fallback intent.
type Classifier interface {
	Classify(ctx context.Context, rawQuery string) domain.Intent
}

// History is the search-history ledger the orchestrator records into and
// the handlers aggregate from.
type History interface {
	Record(ctx context.Context, actor, query string) error
	Recent(ctx context.Context, actor string, limit int) ([]string, error)
	Suggestions(ctx context.Context, prefix string, limit int) ([]string, error)
	Popular(ctx context.Context, limit int, window time.Duration) ([]domain.QueryCount, error)
}
