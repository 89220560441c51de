package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/security"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := []config.UserConfig{
		{ID: "user-1", Email: "alex@example.com", PasswordHash: string(hash)},
	}
	jwtManager := security.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(users, jwtManager)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)

	pair, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "alex@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Greater(t, pair.ExpiresIn, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "alex@example.com",
		Password: "wrong",
	})
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.EqualError(t, err, "invalid credentials")
}

func TestRefresh(t *testing.T) {
	svc := newTestAuthService(t)

	pair, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "alex@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestRefreshInvalidToken(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.EqualError(t, err, "invalid refresh token")
}
