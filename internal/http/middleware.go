package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/revollution/storefront/internal/auth"
	"github.com/revollution/storefront/pkg/logger"
	"github.com/rs/zerolog"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// OptionalAuth attaches the claims of a valid bearer token to the request.
// Requests without a token, or with an invalid one, pass through anonymous.
func OptionalAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokens == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				requestLogger(r).Debug().Err(err).Msg("ignoring invalid bearer token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func requestLogger(r *http.Request) *zerolog.Logger {
	l := logger.FromContext(r.Context())
	if id := middleware.GetReqID(r.Context()); id != "" {
		tagged := l.With().Str("request_id", id).Logger()
		return &tagged
	}
	return l
}
