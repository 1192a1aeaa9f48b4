package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trn-gabru/lafabrica/internal/auth"
)

func authedHandler(t *testing.T, wantUsername string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("expected identity in context")
		}
		if wantUsername != "" && identity.Username != wantUsername {
			t.Fatalf("expected username %q, got %q", wantUsername, identity.Username)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminAuthValidBearerToken(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), TokenTTL: time.Hour, Issuer: "lafabrica"}
	token, err := manager.NewToken("id1", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	handler := AdminAuth("", manager)(authedHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), TokenTTL: time.Hour, Issuer: "lafabrica"}
	handler := AdminAuth("", manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without valid credentials")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	manager := &auth.Manager{Secret: []byte("secret"), TokenTTL: -time.Minute, Issuer: "lafabrica"}
	token, err := manager.NewToken("id1", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	handler := AdminAuth("", manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthAPIKeyFallback(t *testing.T) {
	handler := AdminAuth("topsecret", nil)(authedHandler(t, "api-key"))

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", nil)
	req.Header.Set("X-Admin-Key", "topsecret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/portfolio", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong key, got %d", rec.Code)
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	handler := AdminAuth("", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run when auth is unconfigured")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
