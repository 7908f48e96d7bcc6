package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	return signed
}

func TestTokenInspector_Inspect(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	tokenString := signedToken(t, jwt.MapClaims{
		"sub":       "42",
		"email":     "worker@example.com",
		"user_type": "worker",
		"exp":       expiry.Unix(),
	})

	claims, err := NewTokenInspector().Inspect(tokenString)

	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, "worker", claims.UserType)
	assert.True(t, claims.ExpiresAt.Equal(expiry))
}

func TestTokenInspector_InspectIgnoresSignature(t *testing.T) {
	// The claims must be readable even though the client cannot verify the
	// signing key.
	tokenString := signedToken(t, jwt.MapClaims{"sub": "7"})

	claims, err := NewTokenInspector().Inspect(tokenString)

	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestTokenInspector_InspectGarbage(t *testing.T) {
	_, err := NewTokenInspector().Inspect("not-a-jwt")

	assert.Error(t, err)
}

func TestTokenInspector_Expired(t *testing.T) {
	inspector := NewTokenInspector()
	now := time.Now()

	fresh := signedToken(t, jwt.MapClaims{"sub": "42", "exp": now.Add(time.Hour).Unix()})
	assert.False(t, inspector.Expired(fresh, now))

	stale := signedToken(t, jwt.MapClaims{"sub": "42", "exp": now.Add(-time.Hour).Unix()})
	assert.True(t, inspector.Expired(stale, now))

	noExpiry := signedToken(t, jwt.MapClaims{"sub": "42"})
	assert.False(t, inspector.Expired(noExpiry, now), "tokens without exp never expire client-side")

	assert.True(t, inspector.Expired("garbage", now), "unparsable tokens count as expired")
}
