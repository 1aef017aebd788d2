package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

func TestTokenIssuer_Issue(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Issue(&domain.User{ID: "42", Details: domain.NurseDetails{Department: "ER"}})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "42" {
		t.Fatalf("unexpected sub: %v", claims["sub"])
	}
	if claims["role"] != "nurse" {
		t.Fatalf("unexpected role: %v", claims["role"])
	}
	if exp, _ := claims.GetExpirationTime(); exp == nil || !exp.Time.Equal(fixed.Add(time.Hour)) {
		t.Fatalf("unexpected exp: %v", exp)
	}
}

func TestTokenIssuer_DefaultTTLAndMissingUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.TTL() != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", issuer.TTL())
	}
	if _, err := issuer.Issue(nil); err == nil {
		t.Fatalf("expected error for nil user")
	}
}
