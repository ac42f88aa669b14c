package utils

import (
	"strings"
	"testing"
	"time"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   "supersecret-supersecret-supersecret",
		Issuer:   "TennisCoach",
		Audience: "TennisCoachApp",
		TTL:      time.Hour,
	}
}

func TestHashPassword(t *testing.T) {
	password := "secret-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if hash == password {
		t.Fatalf("Expected hash to differ from password")
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestHashPasswordAcceptsLongPasswords(t *testing.T) {
	password := strings.Repeat("a", 80)
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error for 80-byte password, got %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	// Differs only after byte 72, which plain bcrypt would ignore.
	if CheckPassword(strings.Repeat("a", 79)+"b", hash) {
		t.Errorf("Expected password differing past 72 bytes to fail")
	}
}

func TestJWT(t *testing.T) {
	cfg := testTokenConfig()
	subject := "0b0e8b2e-7c64-4a7e-9f67-3c1f74c1b1a5"

	token, err := GenerateToken(cfg, subject, "coach@example.com", "Coach Carter")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.Subject != subject {
		t.Errorf("Expected subject %s, got %s", subject, claims.Subject)
	}
	if claims.Email != "coach@example.com" {
		t.Errorf("Expected email coach@example.com, got %s", claims.Email)
	}
	if claims.Name != "Coach Carter" {
		t.Errorf("Expected name Coach Carter, got %s", claims.Name)
	}

	wrongSecret := cfg
	wrongSecret.Secret = "wrongsecret"
	if _, err := ValidateToken(token, wrongSecret); err == nil {
		t.Errorf("Expected error with wrong secret")
	}
}

func TestValidateTokenRejectsWrongIssuerAndAudience(t *testing.T) {
	cfg := testTokenConfig()
	token, err := GenerateToken(cfg, "subject", "coach@example.com", "Coach")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	otherIssuer := cfg
	otherIssuer.Issuer = "SomeoneElse"
	if _, err := ValidateToken(token, otherIssuer); err == nil {
		t.Errorf("Expected error with wrong issuer")
	}

	otherAudience := cfg
	otherAudience.Audience = "OtherApp"
	if _, err := ValidateToken(token, otherAudience); err == nil {
		t.Errorf("Expected error with wrong audience")
	}
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	cfg := testTokenConfig()
	cfg.TTL = -time.Second

	token, err := GenerateToken(cfg, "subject", "coach@example.com", "Coach")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, cfg); err == nil {
		t.Fatalf("Expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.jwt", testTokenConfig()); err == nil {
		t.Fatalf("Expected malformed token to be rejected")
	}
}
