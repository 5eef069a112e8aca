package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/wolfman30/physio-clinic/internal/session"
)

func TestSessionMintsCookie(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.VisitorIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	Session(true)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid visitor id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if cookies[0].Value != seen || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("unexpected cookie %+v", cookies[0])
	}
}

func TestSessionReusesExistingCookie(t *testing.T) {
	existing := uuid.NewString()
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.VisitorIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})
	rec := httptest.NewRecorder()
	Session(false)(handler).ServeHTTP(rec, req)

	if seen != existing {
		t.Fatalf("expected %s, got %s", existing, seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie")
	}
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.VisitorIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	Session(false)(handler).ServeHTTP(rec, req)

	if seen == "../../etc" || seen == "" {
		t.Fatalf("expected fresh visitor id, got %q", seen)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected replacement cookie")
	}
}
