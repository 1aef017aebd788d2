package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Secret1!" {
		t.Fatalf("expected password to be hashed")
	}
	if !h.Compare(hash, "Secret1!") {
		t.Fatalf("expected hash to match password")
	}
	if h.Compare(hash, "secret1!") {
		t.Fatalf("comparison must be case-sensitive")
	}
}

func TestBcryptHasher_EmptyHashNeverMatches(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Compare("", "") {
		t.Fatalf("empty hash must not match")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	if got := NewBcryptHasher(1).cost; got != bcrypt.MinCost {
		t.Fatalf("expected MinCost, got %d", got)
	}
	if got := NewBcryptHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected DefaultCost, got %d", got)
	}
	if got := NewBcryptHasher(99).cost; got != bcrypt.MaxCost {
		t.Fatalf("expected MaxCost, got %d", got)
	}
}
