package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "operator", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "operator" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.Role != "ADMIN" {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", "operator", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", "operator", "ADMIN", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
