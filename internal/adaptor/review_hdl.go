package adaptor

import (
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (customer)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review submitted", review)
}

// ListServiceReviews handles GET /api/services/{id}/reviews (public)
func (h *ReviewHandler) ListServiceReviews(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	reviews, err := h.service.ListServiceReviews(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "list service reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ListProviderReviews handles GET /api/providers/{id}/reviews (public)
func (h *ReviewHandler) ListProviderReviews(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)
	reviews, err := h.service.ListProviderReviews(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "list provider reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// SetVisibility handles PUT /api/admin/reviews/{id}/visibility (admin only)
func (h *ReviewHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.ReviewVisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.SetVisibility(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, "set review visibility")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}
