package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing",
		TokenTTL:  time.Hour,
	})
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager()

	token, err := m.Issue(42, "salon-1")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "salon-1", claims.TenantID)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := newTestManager().Issue(1, "salon-1")
	require.NoError(t, err)

	other := NewTokenManager(config.AuthConfig{JWTSecret: "another-secret-entirely"})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.Issue(1, "salon-1")
	require.NoError(t, err)

	_, err = newTestManager().Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	_, err := newTestManager().Parse("invalid.token.string")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{TenantID: "salon-1", RegisteredClaims: jwt.RegisteredClaims{Subject: "1", Issuer: issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager().Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_MissingTenant(t *testing.T) {
	m := newTestManager()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
