package services_test

import (
	"context"
	"testing"

	"github.com/clubnight/shuttlecup/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const jwtSecret = "test-secret"

func newAuthService(t *testing.T, password string) services.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return services.NewAuthService(string(hash), jwtSecret)
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newAuthService(t, "clubnight")

	raw, err := svc.Login(context.Background(), "clubnight")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "organizer", claims["role"])
	assert.NotEmpty(t, claims["exp"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t, "clubnight")

	_, err := svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
