package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestCartSessionIssuesCookie(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("handler did not see a session id")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("session id is not a uuid: %s", seen)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "cart_session" || cookies[0].Value != seen {
		t.Fatalf("expected cart_session cookie carrying %s, got %+v", seen, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestCartSessionReusesValidCookie(t *testing.T) {
	existing := uuid.NewString()
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: existing})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != existing {
		t.Fatalf("session id = %s, want %s", seen, existing)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no new cookie should be issued for a valid session")
	}
}

func TestCartSessionReplacesTamperedCookie(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("tampered cookie should be replaced with a uuid, got %s", seen)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("a fresh cookie should be issued")
	}
}
