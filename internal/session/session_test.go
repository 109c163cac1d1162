package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCookieSignatureRoundTrip(t *testing.T) {
	s := NewStore(nil, "test-secret")

	id, err := generateID()
	if err != nil {
		t.Fatalf("generateID() error = %v", err)
	}
	if len(id) != idLength*2 {
		t.Errorf("id length = %d, want %d hex chars", len(id), idLength*2)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: id + "." + s.sign(id)})

	got, ok := s.cookieID(r)
	if !ok {
		t.Fatal("valid signed cookie rejected")
	}
	if got != id {
		t.Errorf("cookieID = %q, want %q", got, id)
	}
}

func TestCookieTamperingRejected(t *testing.T) {
	s := NewStore(nil, "test-secret")
	other := NewStore(nil, "other-secret")

	id, err := generateID()
	if err != nil {
		t.Fatalf("generateID() error = %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{"missing tag", id},
		{"empty id", "." + s.sign("")},
		{"wrong secret", id + "." + other.sign(id)},
		{"forged tag", id + ".deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.value})
			if _, ok := s.cookieID(r); ok {
				t.Error("tampered cookie accepted")
			}
		})
	}
}

func TestMissingCookie(t *testing.T) {
	s := NewStore(nil, "test-secret")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := s.cookieID(r); ok {
		t.Error("request without a cookie should have no session id")
	}
}
