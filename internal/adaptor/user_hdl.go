package adaptor

import (
	"net/http"

	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), actor)
	if err != nil {
		writeError(h.log, w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// ListUsers handles GET /api/admin/users?role=&page=&per_page= (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	req := paginationFromQuery(r)
	users, err := h.service.ListUsers(r.Context(), actor, r.URL.Query().Get("role"), &req)
	if err != nil {
		writeError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// DeactivateUser handles PUT /api/admin/users/{id}/deactivate (admin only)
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeactivateUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(h.log, w, err, "deactivate user")
		return
	}

	utils.ResponseSuccess(w, "User deactivated", nil)
}
