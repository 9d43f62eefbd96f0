package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"karigar/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `json:"name" validate:"required,notblank,max=5"`
	Status string `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name string
		in   sampleRequest
		want map[string]string
	}{
		{name: "valid", in: sampleRequest{Name: "abc", Status: "OPEN", Date: "2025-06-09"}},
		{name: "blank name", in: sampleRequest{Name: "   "}, want: map[string]string{"name": "This field is required"}},
		{name: "too long", in: sampleRequest{Name: "abcdef"}, want: map[string]string{"name": "Maximum is 5"}},
		{name: "bad enum", in: sampleRequest{Name: "a", Status: "DONE"}, want: map[string]string{"status": "Must be one of: OPEN, CLOSED"}},
		{name: "bad date", in: sampleRequest{Name: "a", Date: "09/06/2025"}, want: map[string]string{"date": "Must match format 2006-01-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateStruct(tt.in))
		})
	}
}

func TestValidateStruct_RejectsNilPointer(t *testing.T) {
	var req *sampleRequest

	errs := ValidateStruct(req)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "_")
}

func TestFormatValidationErrors_SortedByField(t *testing.T) {
	errs := map[string]string{
		"time":     "Must match format 15:04",
		"date":     "This field is required",
		"location": "This field is required",
	}

	want := "date: This field is required; location: This field is required; time: Must match format 15:04"
	for range 10 {
		assert.Equal(t, want, FormatValidationErrors(errs))
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("x", 10))
	assert.Equal(t, 10, ParseInt("-4", 10))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))

	page, perPage := ClampPage(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, perPage)
}

func TestGenerateBookingRef(t *testing.T) {
	ref := GenerateBookingRef(time.Date(2025, 6, 9, 14, 30, 5, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^KRG-20250609-143005-\d{4}$`), ref)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestResponseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		kind    string
	}{
		{name: "validation", err: apperror.Validation("reason is required"), code: http.StatusBadRequest, message: "reason is required", kind: "validation"},
		{name: "transition", err: apperror.InvalidTransition("booking is %s", "COMPLETED"), code: http.StatusUnprocessableEntity, kind: "invalid_transition"},
		{name: "duplicate email", err: apperror.ErrDuplicateEmail, code: http.StatusConflict, message: "email already registered", kind: "conflict"},
		{name: "internal", err: assert.AnError, code: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ResponseError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
			if tt.kind != "" {
				assert.Equal(t, tt.kind, resp.Errors.(map[string]any)["kind"])
			} else {
				assert.Nil(t, resp.Errors)
			}
		})
	}
}
