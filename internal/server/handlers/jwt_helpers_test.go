package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateAccessToken(testJWT, "user123", "testuser", now)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, now.Add(testJWT.AccessTokenTTL).Truncate(time.Second), expiresAt)

	claims, err := ValidateAccessToken(testJWT, token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "user123", claims.Subject)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestValidateAccessToken_Rejects(t *testing.T) {
	now := time.Now()
	valid, _, err := GenerateAccessToken(testJWT, "user123", "testuser", now)
	require.NoError(t, err)

	expired, _, err := GenerateAccessToken(testJWT, "user123", "testuser", now.Add(-time.Hour))
	require.NoError(t, err)

	otherIssuer := testJWT
	otherIssuer.Issuer = "someone-else"
	foreign, _, err := GenerateAccessToken(otherIssuer, "user123", "testuser", now)
	require.NoError(t, err)

	otherSecret := testJWT
	otherSecret.Secret = []byte("another-secret-another-secret-000")

	// alg=none не должен приниматься
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		cfg   JWTConfig
		token string
	}{
		{name: "garbage", cfg: testJWT, token: "not-a-jwt"},
		{name: "expired", cfg: testJWT, token: expired},
		{name: "wrong issuer", cfg: testJWT, token: foreign},
		{name: "wrong secret", cfg: otherSecret, token: valid},
		{name: "alg none", cfg: testJWT, token: unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateAccessToken(tt.cfg, tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 500, time.UTC)
	a, expiresAt, err := GenerateRefreshToken(testJWT, now)
	require.NoError(t, err)
	b, _, err := GenerateRefreshToken(testJWT, now)
	require.NoError(t, err)

	assert.Len(t, a, 43) // 32 байта в RawURL base64
	assert.NotEqual(t, a, b)
	assert.Equal(t, time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC), expiresAt)
}

func TestHashRefreshToken(t *testing.T) {
	h := HashRefreshToken("token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashRefreshToken("token"))
	assert.NotEqual(t, h, HashRefreshToken("token2"))
}
