package auth

import (
	"testing"

	"butce-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret!"

func parseToken(t *testing.T, tokenStr, secret string) (*JWTCustomClaims, error) {
	t.Helper()
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	return claims, nil
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Username: "ayse"}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := parseToken(t, tokenStr, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ayse", claims.Username)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateToken_WrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 1, Username: "ali"}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = parseToken(t, tokenStr, "baska-bir-secret-baska-bir-secret!!")
	assert.Error(t, err)
}
