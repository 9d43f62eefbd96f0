package adaptor

import (
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProviderHandler struct {
	service usecase.ProviderService
	log     *zap.Logger
}

func NewProviderHandler(service usecase.ProviderService, log *zap.Logger) *ProviderHandler {
	return &ProviderHandler{
		service: service,
		log:     log.With(zap.String("handler", "provider")),
	}
}

// SearchProviders handles GET /api/providers?category=&location=&keywords= (public)
func (h *ProviderHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchProvidersRequest{
		PaginatedRequest: paginationFromQuery(r),
		Category:         query.Get("category"),
		Location:         query.Get("location"),
		Keywords:         query.Get("keywords"),
	}

	providers, err := h.service.SearchProviders(r.Context(), req)
	if err != nil {
		writeError(h.log, w, err, "search providers")
		return
	}

	utils.ResponseSuccess(w, "success", providers)
}

// GetProvider handles GET /api/providers/{id} (public)
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	provider, err := h.service.GetProvider(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "get provider")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// UpdateProfile handles PUT /api/provider/profile (provider only)
func (h *ProviderHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.ProviderProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "update provider profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}
