package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"karigar/pkg/apperror"
	"karigar/pkg/metrics"
	"karigar/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	tokens map[string]utils.Actor
}

func (v stubVerifier) Verify(_ context.Context, token string) (utils.Actor, error) {
	actor, ok := v.tokens[token]
	if !ok {
		return utils.Actor{}, apperror.Unauthorized("invalid or expired token")
	}
	return actor, nil
}

func echoActor(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseSuccess(w, "anonymous", nil)
		return
	}
	utils.ResponseSuccess(w, actor.Role, actor.UserID.String())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	provider := utils.Actor{UserID: uuid.New(), Role: "provider", TokenID: "jti-1"}
	verifier := stubVerifier{tokens: map[string]utils.Actor{"good": provider}}
	h := Authenticate(verifier, zap.NewNop())(http.HandlerFunc(echoActor))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				body := decode(t, rec)
				assert.Equal(t, "provider", body.Message)
				assert.Equal(t, provider.UserID.String(), body.Data)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	admin := utils.Actor{UserID: uuid.New(), Role: "admin"}
	h := OptionalAuth(stubVerifier{tokens: map[string]utils.Actor{"adm": admin}}, zap.NewNop())(http.HandlerFunc(echoActor))

	for header, want := range map[string]string{"": "anonymous", "Bearer nope": "anonymous", "Bearer adm": "admin"} {
		req := httptest.NewRequest(http.MethodPost, "/api/register-admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, decode(t, rec).Message, "header %q", header)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(zap.NewNop(), "admin")(http.HandlerFunc(echoActor))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customer := utils.Actor{UserID: uuid.New(), Role: "customer"}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(utils.SetActorContext(req.Context(), customer)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := utils.Actor{UserID: uuid.New(), Role: "admin"}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(utils.SetActorContext(req.Context(), admin)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_PerIP(t *testing.T) {
	h := RateLimit(utils.RateLimitConfig{RPS: 0.001, Burst: 2}, zap.NewNop())(http.HandlerFunc(echoActor))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"), "other clients have their own bucket")
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseNotFound(w, "booking not found")
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/bookings/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/bookings/{id}", "404")))
}

func TestLogger_PassesThrough(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseCreated(w, "created", nil)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
