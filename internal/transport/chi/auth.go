package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/sign-company/searchd/internal/config"
)

type contextKey string

const actorContextKey contextKey = "actor"

const defaultActor = "anonymous"

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// ActorFromContext returns the authenticated actor, or the anonymous
// default when none was resolved.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorContextKey).(string); ok && actor != "" {
		return actor
	}
	return defaultActor
}

// BearerAuthMiddleware returns a middleware that resolves Bearer tokens
// to actor identities. If keys is empty, authentication is disabled and
// the actor is taken from the X-Actor header.
func BearerAuthMiddleware(keys []config.APIKey) func(http.Handler) http.Handler {
	actors := make(map[string]string, len(keys))
	for _, k := range keys {
		if k.Key != "" {
			actors[k.Key] = k.Actor
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled: trust the caller-declared actor
		if len(actors) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor := r.Header.Get("X-Actor")
				if actor == "" {
					actor = defaultActor
				}
				ctx := context.WithValue(r.Context(), actorContextKey, actor)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header", "")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "authorization header must use Bearer scheme", "")
				return
			}

			actor, ok := actors[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid api key", "")
				return
			}

			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
