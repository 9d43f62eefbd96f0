package adaptor

import (
	"context"
	"net/http"

	"karigar/internal/dto/request"
	"karigar/internal/dto/response"
	"karigar/internal/usecase"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req request.CreateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.service.CreateReport(r.Context(), actor, &req)
	if err != nil {
		writeError(h.log, w, err, "create report")
		return
	}

	utils.ResponseCreated(w, "Report submitted", report)
}

// ListReports handles GET /api/admin/reports?status= (admin only)
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	req := &request.ListReportsRequest{
		PaginatedRequest: paginationFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}
	reports, err := h.service.ListReports(r.Context(), actor, req)
	if err != nil {
		writeError(h.log, w, err, "list reports")
		return
	}

	utils.ResponseSuccess(w, "success", reports)
}

// ResolveReport handles PUT /api/admin/reports/{id}/resolve (admin only)
func (h *ReportHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	h.closeReport(w, r, "resolve report", h.service.ResolveReport)
}

// DismissReport handles PUT /api/admin/reports/{id}/dismiss (admin only)
func (h *ReportHandler) DismissReport(w http.ResponseWriter, r *http.Request) {
	h.closeReport(w, r, "dismiss report", h.service.DismissReport)
}

type closeFunc func(ctx context.Context, actor utils.Actor, reportID string, req *request.CloseReportRequest) (*response.ReportResponse, error)

func (h *ReportHandler) closeReport(w http.ResponseWriter, r *http.Request, operation string, fn closeFunc) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	// The note is optional, so an empty body is fine
	var req request.CloseReportRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	report, err := fn(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "Report closed", report)
}
