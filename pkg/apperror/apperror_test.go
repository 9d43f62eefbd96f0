package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := InvalidTransition("cannot accept booking in status %s", "COMPLETED")

	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("accept request: %w", NotFound("booking"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestIs_NamedErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrDuplicateEmail, ErrConflict))
	assert.False(t, errors.Is(Conflict("slot taken"), ErrDuplicateEmail))
	assert.True(t, errors.Is(fmt.Errorf("login: %w", ErrInvalidCredentials), ErrInvalidCredentials))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, KindOf(errors.New("x")).HTTPStatus())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindInvalidTransition, http.StatusUnprocessableEntity},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestFieldsOf(t *testing.T) {
	err := ValidationFields("validation failed", map[string]string{"Location": "This field is required"})

	assert.Equal(t, "This field is required", FieldsOf(fmt.Errorf("wrap: %w", err))["Location"])
	assert.Nil(t, FieldsOf(errors.New("other")))
}

func TestError_Message(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(KindInternal, "store booking", cause)

	assert.Equal(t, "store booking: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
}
