package auth

import (
	"errors"
	"testing"
	"time"

	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:     "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    168 * time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	pair, err := svc.GenerateTokens("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	userID, err := svc.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}

	userID, err = svc.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestTokensUseSeparateSecrets(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	pair, err := svc.GenerateTokens("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// 交叉驗證必須失敗
	if _, err := svc.VerifyAccess(pair.RefreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
	if _, err := svc.VerifyRefresh(pair.AccessToken); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTTL = -time.Minute
	svc := NewTokenService(cfg)

	pair, err := svc.GenerateTokens("user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = svc.VerifyAccess(pair.AccessToken)
	var customErr *common.CustomError
	if !errors.As(err, &customErr) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if customErr.Code != "TOKEN_EXPIRED" {
		t.Fatalf("expected TOKEN_EXPIRED, got %s", customErr.Code)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	_, err := svc.VerifyAccess("not-a-jwt")
	var customErr *common.CustomError
	if !errors.As(err, &customErr) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if customErr.Code != "INVALID_TOKEN" {
		t.Fatalf("expected INVALID_TOKEN, got %s", customErr.Code)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
