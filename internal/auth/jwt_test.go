package auth

import (
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("u1", "admin", "admin")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.UserID != "u1" {
		t.Errorf("userID = %q, want u1", claims.UserID)
	}

	if claims.Username != "admin" {
		t.Errorf("username = %q, want admin", claims.Username)
	}

	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}

	if claims.JTI == "" {
		t.Error("jti should be set")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("u1", "admin", "admin")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken("u1", "admin", "admin")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.VerifyToken(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage must not verify")
	}
}
