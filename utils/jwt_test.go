package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "ana@test.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("expected valid token with map claims")
	}
	if claims["sub"] != "user-123" {
		t.Fatalf("expected sub user-123, got %v", claims["sub"])
	}
	if claims["email"] != "ana@test.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("expected numeric exp claim, got %T", claims["exp"])
	}
	if time.Unix(int64(exp), 0).Before(time.Now().Add(24 * time.Hour)) {
		t.Fatal("token expires too soon")
	}

	id, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if id != "user-123" {
		t.Fatalf("expected user-123, got %q", id)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "abc", "aaa.bbb.ccc"} {
		if _, err := ValidateToken(tok); err == nil {
			t.Fatalf("expected error for token %q", tok)
		}
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("user-123", "ana@test.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}
