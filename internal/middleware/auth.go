package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/luniksss/lunikiss-storefront/internal/session"
)

// ResolveSession looks up the bearer token in the session store and attaches
// the resolved session to the request context. It never rejects: endpoints
// that require authentication enforce it themselves, so browsing stays open
// to anonymous callers.
func ResolveSession(store session.Store, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, ok, err := store.Find(r.Context(), token)
			if err != nil {
				log.Warn().Err(err).Msg("session lookup failed")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
