package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, "karigar")
	userID := uuid.New()

	signed, issued, err := m.Issue(userID, "provider", time.Now())
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "provider", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour, "karigar")

	signed, _, err := m.Issue(uuid.New(), "customer", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	signed, _, err := NewManager("secret", time.Hour, "karigar").Issue(uuid.New(), "customer", time.Now())
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour, "karigar").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID: uuid.NewString(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "karigar",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour, "karigar").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour, "karigar").Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
