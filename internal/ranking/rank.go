// Package ranking merges per-category result lists into one ordered list
// using a relevance score computed uniformly across categories. Scores are
// only meaningful within a single merge.
package ranking

import (
	"sort"
	"strings"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

const (
	// keywordIncrement is added once per intent keyword found in a
	// result's display text.
	keywordIncrement = 10
	// Recency bonuses; exactly one tier applies.
	weekBonus  = 5
	monthBonus = 3
)

// Merge flattens the per-category lists, scores every result under the
// same intent, sorts descending by score (stable, so arrival order breaks
// ties deterministically), and truncates to cap when cap > 0.
func Merge(lists [][]domain.Result, intent domain.Intent, now time.Time, cap int) []domain.Result {
	var merged []domain.Result
	for _, list := range lists {
		merged = append(merged, list...)
	}

	for i := range merged {
		merged[i].Score = Score(&merged[i], intent.Keywords, now)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if cap > 0 && len(merged) > cap {
		merged = merged[:cap]
	}
	return merged
}

// Score computes a result's relevance under the given keywords: a fixed
// increment per keyword contained in the display text, plus one recency
// bonus tier. Matching is restricted to fields the user actually sees
// (title, description, metadata values) so hidden fields cannot inflate
// relevance.
func Score(r *domain.Result, keywords []string, now time.Time) int {
	score := 0
	text := matchText(r)

	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			score += keywordIncrement
		}
	}

	if !r.CreatedAt.IsZero() {
		age := now.Sub(r.CreatedAt)
		switch {
		case age <= 7*24*time.Hour:
			score += weekBonus
		case age <= 30*24*time.Hour:
			score += monthBonus
		}
	}

	return score
}

// matchText flattens a result's display fields into one lowercase string.
func matchText(r *domain.Result) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteByte(' ')
	b.WriteString(r.Description)
	for _, v := range r.Metadata {
		b.WriteByte(' ')
		b.WriteString(v)
	}
	return strings.ToLower(b.String())
}
