// Package searcher holds the per-category searchers that translate a
// search intent into queries against each category's record store, and
// the static registry the orchestrator dispatches through. Searchers are
// read-only and capped at a fixed per-category limit.
package searcher

import (
	"context"

	"github.com/sign-company/searchd/internal/domain"
)

// DefaultLimit caps how many results a single category may contribute.
const DefaultLimit = 10

// Searcher executes a search intent against one category's record store.
type Searcher interface {
	Category() domain.Category
	Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error)
}

// Registry is a static mapping from category identifier to its searcher,
// built once at startup.
type Registry struct {
	searchers map[domain.Category]Searcher
}

// NewRegistry registers the given searchers by their category.
func NewRegistry(searchers ...Searcher) *Registry {
	m := make(map[domain.Category]Searcher, len(searchers))
	for _, s := range searchers {
		m[s.Category()] = s
	}
	return &Registry{searchers: m}
}

// Lookup returns the searcher for a category.
func (r *Registry) Lookup(c domain.Category) (Searcher, bool) {
	s, ok := r.searchers[c]
	return s, ok
}

// Len reports how many categories are registered.
func (r *Registry) Len() int {
	return len(r.searchers)
}
