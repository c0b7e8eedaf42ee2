package api

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/api/respond"
	"github.com/apilab/users-api/internal/auth"
)

// requireAuth protects a route with token authentication. A request with no
// Bearer token is rejected before any role check runs, so unauthenticated
// callers always see 401, never 403.
func requireAuth(tokens *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				respond.Error(w, apierr.MissingToken())
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				respond.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// requireAdmin rejects authenticated callers whose token does not carry the
// admin role. Must be composed after requireAuth.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			respond.Error(w, apierr.MissingToken())
			return
		}
		if !claims.IsAdmin() {
			log.Warn().Str("role", claims.Role).Int("user_id", claims.UserID()).
				Msg("Admin-only endpoint denied")
			respond.Error(w, apierr.Forbidden())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverer turns panics into the 500 error envelope instead of a dropped
// connection, logging the stack for diagnosis.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("Recovered from panic in handler")
				respond.Error(w, apierr.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
