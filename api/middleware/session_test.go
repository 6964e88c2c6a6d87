package middleware

import (
	"testing"
	"time"
)

func TestSessions_CreateAndLookup(t *testing.T) {
	s := NewSessions(time.Hour)

	token, expiresAt := s.Create("buyer@example.com")
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(token))
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiresAt %v is not in the future", expiresAt)
	}

	sess, ok := s.Lookup(token)
	if !ok {
		t.Fatal("Lookup() miss for freshly created token")
	}
	if sess.Email != "buyer@example.com" {
		t.Fatalf("Email = %q, want buyer@example.com", sess.Email)
	}
}

func TestSessions_UnknownToken(t *testing.T) {
	s := NewSessions(time.Hour)
	if _, ok := s.Lookup("deadbeef"); ok {
		t.Fatal("Lookup() hit for unknown token")
	}
}

func TestSessions_ExpiredToken(t *testing.T) {
	s := NewSessions(-time.Minute)
	token, _ := s.Create("buyer@example.com")
	if _, ok := s.Lookup(token); ok {
		t.Fatal("Lookup() hit for expired token")
	}
}

func TestSessions_TokensAreUnique(t *testing.T) {
	s := NewSessions(time.Hour)
	a, _ := s.Create("a@example.com")
	b, _ := s.Create("b@example.com")
	if a == b {
		t.Fatal("two sessions produced the same token")
	}
}
