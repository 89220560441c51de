package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/security"
)

// AuthService authenticates statically configured users and issues JWT pairs.
type AuthService struct {
	byEmail    map[string]domain.User
	byID       map[string]domain.User
	jwtManager *security.JWTManager
}

// NewAuthService creates an auth service over the configured user list.
func NewAuthService(users []config.UserConfig, jwtManager *security.JWTManager) *AuthService {
	s := &AuthService{
		byEmail:    make(map[string]domain.User, len(users)),
		byID:       make(map[string]domain.User, len(users)),
		jwtManager: jwtManager,
	}
	for _, u := range users {
		user := domain.User{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash}
		s.byEmail[u.Email] = user
		s.byID[u.ID] = user
	}
	return s
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(_ context.Context, input domain.UserLogin) (*domain.TokenPair, error) {
	user, ok := s.byEmail[input.Email]
	if !ok {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.tokenPair(user)
}

// Refresh refreshes the access token using a refresh token
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	callerID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	user, ok := s.byID[callerID]
	if !ok {
		return nil, errors.New("unknown caller")
	}

	return s.tokenPair(user)
}

func (s *AuthService) tokenPair(user domain.User) (*domain.TokenPair, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
