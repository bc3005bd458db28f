// Package classifier turns a raw query string into a structured search
// intent. The OpenAI-compatible implementation delegates to an external
// chat-completions endpoint; any failure degrades to the deterministic
// keyword-split heuristic, so classification never fails visibly.
package classifier

import (
	"context"

	"github.com/sign-company/searchd/internal/domain"
)

// Classifier infers a structured intent from a free-text query.
// Implementations must not return errors; success and fallback are
// indistinguishable to callers.
type Classifier interface {
	Classify(ctx context.Context, rawQuery string) domain.Intent
}

// Heuristic is the fully local classifier: the deterministic fallback
// intent, always. Used when no external classifier is configured.
type Heuristic struct{}

// Classify returns the keyword-split fallback intent.
func (Heuristic) Classify(_ context.Context, rawQuery string) domain.Intent {
	return domain.FallbackIntent(rawQuery)
}
