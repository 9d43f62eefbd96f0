package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/usecase"
	"karigar/pkg/apperror"
	"karigar/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Provider     *ProviderHandler
	Catalog      *CatalogHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Review       *ReviewHandler
	Report       *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Provider:     NewProviderHandler(service.Provider, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Review:       NewReviewHandler(service.Review, log),
		Report:       NewReportHandler(service.Report, log),
	}
}

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. It writes the 400 response
// itself and reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			utils.ResponseBadRequest(w, "Request body is required", nil)
			return false
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// currentActor returns the caller set by the auth middleware.
func currentActor(w http.ResponseWriter, r *http.Request) (utils.Actor, bool) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return utils.Actor{}, false
	}
	return actor, true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// writeError logs err at a level matching its kind and writes the response.
func writeError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("kind", kind.String()),
		)
	}
	utils.ResponseError(w, err)
}
