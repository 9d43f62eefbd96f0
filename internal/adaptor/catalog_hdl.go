package adaptor

import (
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListProviderServices handles GET /api/providers/{id}/services (public)
func (h *CatalogHandler) ListProviderServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListProviderServices(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.log, w, err, "list provider services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// ListMyServices handles GET /api/provider/services
func (h *CatalogHandler) ListMyServices(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	services, err := h.service.ListMyServices(r.Context(), actor)
	if err != nil {
		writeError(h.log, w, err, "list own services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateService handles POST /api/provider/services
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	service, err := h.service.CreateService(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", service)
}

// UpdateService handles PUT /api/provider/services/{id}
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.ServiceUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	service, err := h.service.UpdateService(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", service)
}

// DeleteService handles DELETE /api/provider/services/{id}
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(h.log, w, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service removed", nil)
}
