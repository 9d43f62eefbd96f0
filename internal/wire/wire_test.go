package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"karigar/internal/adaptor"
	"karigar/internal/data/entity"
	"karigar/internal/usecase"
	"karigar/pkg/apperror"
	"karigar/pkg/metrics"
	"karigar/pkg/utils"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type tokenTable map[string]utils.Actor

func (t tokenTable) Verify(_ context.Context, token string) (utils.Actor, error) {
	actor, ok := t[token]
	if !ok {
		return utils.Actor{}, apperror.Unauthorized("invalid token")
	}
	return actor, nil
}

// testRouter wires routes over empty services; only requests rejected by
// middleware may be sent through it.
func testRouter() http.Handler {
	tokens := tokenTable{
		"customer": {UserID: uuid.New(), Role: string(entity.RoleCustomer)},
		"provider": {UserID: uuid.New(), Role: string(entity.RoleProvider)},
	}
	reg := prometheus.NewRegistry()
	config := &utils.Config{RateLimit: utils.RateLimitConfig{RPS: 100, Burst: 100}}
	handler := adaptor.NewHandler(&usecase.Service{}, zap.NewNop())
	return setupRouter(handler, tokens, config, metrics.New(reg), reg, zap.NewNop())
}

func TestRouter_Guards(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "bookings need a token", method: http.MethodGet, path: "/api/bookings", want: http.StatusUnauthorized},
		{name: "unknown token", method: http.MethodPut, path: "/api/bookings/x/accept", token: "nope", want: http.StatusUnauthorized},
		{name: "customer cannot edit catalog", method: http.MethodPost, path: "/api/provider/services", token: "customer", want: http.StatusForbidden},
		{name: "customer cannot add slots", method: http.MethodPost, path: "/api/provider/availability/monday/slots", token: "customer", want: http.StatusForbidden},
		{name: "provider is not admin", method: http.MethodGet, path: "/api/admin/reports", token: "provider", want: http.StatusForbidden},
		{name: "provider cannot review", method: http.MethodPost, path: "/api/reviews", token: "provider", want: http.StatusForbidden},
		{name: "unknown route", method: http.MethodGet, path: "/api/nowhere", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	r := testRouter()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `karigar_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
