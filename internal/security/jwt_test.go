package security_test

import (
	"testing"
	"time"

	"github.com/mockmate/interview-api/internal/security"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	callerID := "caller-42"
	email := "test@example.com"

	accessToken, err := manager.GenerateAccessToken(callerID, email)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	claims, err := manager.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.CallerID != callerID {
		t.Errorf("caller ID mismatch: got %v, want %v", claims.CallerID, callerID)
	}

	if claims.Email != email {
		t.Errorf("email mismatch: got %v, want %v", claims.Email, email)
	}
}

func TestJWTManager_GenerateTokenPair(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	accessToken, refreshToken, expiresIn, err := manager.GenerateTokenPair("caller-42", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token pair: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	if refreshToken == "" {
		t.Error("refresh token is empty")
	}

	if expiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires in mismatch: got %d, want %d", expiresIn, int64((15*time.Minute).Seconds()))
	}

	extractedCallerID, err := manager.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}

	if extractedCallerID != "caller-42" {
		t.Errorf("caller ID from refresh token mismatch: got %v, want %v", extractedCallerID, "caller-42")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	if _, err := manager.ValidateAccessToken("invalid-token"); err == nil {
		t.Error("expected error for invalid token, got nil")
	}

	if _, err := manager.ValidateAccessToken(""); err == nil {
		t.Error("expected error for empty token, got nil")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	other := security.NewJWTManager("a-different-secret-key-32-chars", 15*time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("caller-42", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}

	if _, err := other.ValidateRefreshToken(token); err == nil {
		t.Error("expected refresh validation to fail with wrong secret")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken("caller-42", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}
