package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to the caller it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (utils.Actor, error)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// Authenticate rejects requests without a valid, unrevoked token and puts
// the caller in the request context.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			actor, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindInternal {
					logger.Error("Failed to verify token", zap.Error(err), zap.String("path", r.URL.Path))
				} else {
					logger.Warn("Rejected token", zap.Error(err), zap.String("path", r.URL.Path))
				}
				utils.ResponseError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), actor)))
		})
	}
}

// OptionalAuth attaches the caller when a valid token is sent and lets
// anonymous requests through untouched.
func OptionalAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			actor, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug("Ignoring invalid optional token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), actor)))
		})
	}
}

// RequireRole lets through callers holding one of roles. Must run after Authenticate.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.GetActorFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !slices.Contains(roles, actor.Role) {
				logger.Warn("Role check failed",
					zap.String("user_id", actor.UserID.String()),
					zap.String("role", actor.Role),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Insufficient role for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
