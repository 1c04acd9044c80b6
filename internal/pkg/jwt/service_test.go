package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	tok, issued, err := s.GenerateAccessToken("alice", "alice@acme.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if issued.TokenID() == "" {
		t.Fatalf("expected a token id")
	}

	claims, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.CompanyID != "alice" || claims.Email != "alice@acme.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if s.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}
	if claims.TokenID() != issued.TokenID() {
		t.Fatalf("token id mismatch: %s vs %s", claims.TokenID(), issued.TokenID())
	}

	rt, _, err := s.GenerateRefreshToken("alice", "alice@acme.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rc, err := s.ValidateToken(rt)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.IsRefreshToken(rc) {
		t.Fatalf("expected refresh token")
	}
}

func TestHMACService_Expired(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := NewHMACService("a", "r", time.Minute, time.Hour).WithClock(func() time.Time { return now })

	tok, _, err := s.GenerateAccessToken("acme", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	now = base.Add(2 * time.Minute)
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_RejectsForeignAndEmpty(t *testing.T) {
	s := NewHMACService("a", "r", time.Hour, time.Hour)
	other := NewHMACService("x", "y", time.Hour, time.Hour)

	tok, _, err := other.GenerateAccessToken("acme", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.ValidateToken("true"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for legacy flag value, got %v", err)
	}
	if _, _, err := s.GenerateAccessToken("  ", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty company, got %v", err)
	}
}
