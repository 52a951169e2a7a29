package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "sess-1", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "sess-1", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, "sess-1", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "test-secret")
	assert.Error(t, err)
}

func TestParseTokenAllowExpired(t *testing.T) {
	token, err := GenerateToken(42, "sess-1", "test-secret", -time.Minute)
	require.NoError(t, err)

	// Expiry is ignored, the claims still come back
	claims, err := ParseTokenAllowExpired(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)

	// The signature is still enforced
	_, err = ParseTokenAllowExpired(token, "other-secret")
	assert.Error(t, err)
}
