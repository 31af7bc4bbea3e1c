package auth

import (
	"testing"
	"time"

	"nss-backend/internal/config"
)

func testManager(secret string) *JWTManager {
	return NewJWTManager(&config.Config{
		JWT: config.JWTConfig{
			Secret: secret,
			Expiry: time.Hour,
			Issuer: "nss-backend",
		},
	})
}

func TestGenerateAndVerify(t *testing.T) {
	m := testManager("test-secret")

	token, err := m.Generate("vol-1", "volunteer", "health")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != "vol-1" {
		t.Errorf("UserID = %q, want vol-1", claims.UserID)
	}
	if claims.Role != "volunteer" {
		t.Errorf("Role = %q, want volunteer", claims.Role)
	}
	if claims.Wing != "health" {
		t.Errorf("Wing = %q, want health", claims.Wing)
	}
	if claims.Issuer != "nss-backend" {
		t.Errorf("Issuer = %q, want nss-backend", claims.Issuer)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := testManager("secret-a").Generate("vol-1", "volunteer", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := testManager("secret-b").Verify(token); err == nil {
		t.Error("token signed with a different secret should fail verification")
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := testManager("test-secret")
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Error("garbage token should fail verification")
	}
	if _, err := m.Verify(""); err == nil {
		t.Error("empty token should fail verification")
	}
}
