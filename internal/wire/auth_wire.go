package wire

import (
	"net/http"

	"karigar/internal/adaptor"
	"karigar/pkg/middleware"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	auth func(http.Handler) http.Handler,
	verifier middleware.TokenVerifier,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Credential endpoints share one per-IP limiter
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit, log))

		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)

		// Bootstrap secret or an admin token
		r.With(middleware.OptionalAuth(verifier, log)).Post("/api/auth/admin/register", authHandler.RegisterAdmin)
	})

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/auth/logout", authHandler.Logout)
}
