package auth

import (
	"strings"
	"testing"
	"time"
)

func testManager(ttl time.Duration) *Manager {
	return &Manager{
		Secret:   []byte("test-secret"),
		TokenTTL: ttl,
		Issuer:   "lafabrica",
	}
}

func TestNewTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.NewToken("abc123", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	identity, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.UserID != "abc123" {
		t.Fatalf("expected user id abc123, got %q", identity.UserID)
	}
	if identity.Username != "admin" {
		t.Fatalf("expected username admin, got %q", identity.Username)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)
	token, err := m.NewToken("abc123", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	if _, err := m.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.NewToken("abc123", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	other := &Manager{Secret: []byte("other-secret"), TokenTTL: time.Hour, Issuer: "lafabrica"}
	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	m := testManager(time.Hour)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(token); err == nil {
			t.Fatalf("expected malformed token %q to be rejected", token)
		}
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	m := testManager(time.Hour)
	token, err := m.NewToken("abc123", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA"
	if _, err := m.Verify(tampered); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}
