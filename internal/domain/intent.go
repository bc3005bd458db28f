package domain

import "strings"

// SortPreference orders category results inside their record store.
type SortPreference string

// Supported sort preferences.
const (
	SortRelevance  SortPreference = "relevance"
	SortDate       SortPreference = "date"
	SortPopularity SortPreference = "popularity"
)

// ParseSort maps a sort identifier to a preference, defaulting to relevance.
func ParseSort(s string) SortPreference {
	switch SortPreference(s) {
	case SortDate:
		return SortDate
	case SortPopularity:
		return SortPopularity
	default:
		return SortRelevance
	}
}

// Filters carries the structured filters a classified query may specify.
// Category searchers interpret only the filters they recognize.
type Filters struct {
	Tags      []string `json:"tags,omitempty"`
	DateRange string   `json:"dateRange,omitempty"`
	Location  string   `json:"location,omitempty"`
}

// Intent is the structured interpretation of a free-text query.
// It lives for a single orchestration call.
type Intent struct {
	Categories []Category
	Filters    Filters
	Keywords   []string
	Sort       SortPreference
}

// minKeywordLen is the shortest token worth matching; shorter tokens are
// almost always stop words or typos.
const minKeywordLen = 3

// Tokenize splits a raw query on whitespace and keeps tokens longer than
// two characters.
func Tokenize(raw string) []string {
	fields := strings.Fields(raw)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minKeywordLen {
			out = append(out, f)
		}
	}
	return out
}

// FallbackIntent builds the deterministic intent used whenever
// classification is unavailable: all categories, no filters, tokenized
// keywords, relevance sort.
func FallbackIntent(raw string) Intent {
	return Intent{
		Categories: DefaultCategories(),
		Keywords:   Tokenize(raw),
		Sort:       SortRelevance,
	}
}
