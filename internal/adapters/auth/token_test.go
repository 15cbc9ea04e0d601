package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("org-123", "admin@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "org-123", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)

	id, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "org-123", id)
}

func TestJWT_Verify_Rejects(t *testing.T) {
	j := NewJWT("test-secret")

	expired, err := j.Issue("org-1", "a@example.com", -time.Minute)
	require.NoError(t, err)
	otherKey, err := NewJWT("other-secret").Issue("org-1", "a@example.com", time.Hour)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "org-1", Issuer: issuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":     expired,
		"wrong key":   otherKey,
		"none alg":    noneAlg,
		"not a token": "garbage",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := j.Verify(token)
			require.Error(t, err)
			assert.Equal(t, name == "expired", errors.Is(err, domain.ErrTokenExpired))
		})
	}
}
