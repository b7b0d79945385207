package auth

import (
	"context"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("u1", "user@example.com", time.Hour, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("u1", "user@example.com", time.Hour, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, []byte("other-secret")); err != ErrInvalidJWT {
		t.Fatalf("err = %v, want ErrInvalidJWT", err)
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("u1", "user@example.com", -time.Minute, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, testSecret); err != ErrExpiredJWT {
		t.Fatalf("err = %v, want ErrExpiredJWT", err)
	}
}

func TestVerifierVerifyToken(t *testing.T) {
	token, err := GenerateJWT("u1", "user@example.com", time.Hour, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	v := NewVerifier(testSecret)
	userID, err := v.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("user id = %q", userID)
	}

	if _, err := v.VerifyToken(context.Background(), "garbage"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
