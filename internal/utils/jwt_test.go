package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	tok, err := NewAccessToken(secret, 42, "MANAGER", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(secret, tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.StaffID != 42 {
		t.Errorf("StaffID = %d, want 42", claims.StaffID)
	}
	if claims.Role != "MANAGER" {
		t.Errorf("Role = %q, want MANAGER", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, "ADMIN", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("secret-b", tok); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("secret", 1, "ADMIN", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken("secret", tok); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	raw, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(raw) != 96 {
		t.Errorf("raw token length = %d, want 96 hex chars", len(raw))
	}
	if HashRefreshRaw(raw) != HashRefreshRaw(raw) {
		t.Error("hash must be deterministic")
	}
	other, _ := NewRefreshToken()
	if raw == other {
		t.Error("two tokens should never collide")
	}
}
