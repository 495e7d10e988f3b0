package session

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url %q: %v", raw, err)
	}
	return u
}

func TestCSRFToken_SeedAndRead(t *testing.T) {
	jar, err := NewJar()
	if err != nil {
		t.Fatalf("NewJar failed: %v", err)
	}
	site := mustParseURL(t, "https://shop.example.com")

	// Absent cookie reads as empty
	if token := CSRFToken(jar, site); token != "" {
		t.Errorf("CSRFToken on empty jar = %q, want empty", token)
	}

	SeedCSRFToken(jar, site, "tok-abc123")

	if token := CSRFToken(jar, site); token != "tok-abc123" {
		t.Errorf("CSRFToken = %q, want %q", token, "tok-abc123")
	}
}

func TestCSRFToken_NilJar(t *testing.T) {
	site := mustParseURL(t, "https://shop.example.com")
	if token := CSRFToken(nil, site); token != "" {
		t.Errorf("CSRFToken with nil jar = %q, want empty", token)
	}
}

func TestSeedCSRFToken_IgnoresEmpty(t *testing.T) {
	jar, err := NewJar()
	if err != nil {
		t.Fatalf("NewJar failed: %v", err)
	}
	site := mustParseURL(t, "https://shop.example.com")

	SeedCSRFToken(jar, site, "")
	SeedCSRFToken(nil, site, "tok")
	SeedCSRFToken(jar, nil, "tok")

	if token := CSRFToken(jar, site); token != "" {
		t.Errorf("CSRFToken = %q, want empty after no-op seeds", token)
	}
}

func TestGuestID_ValidAndInvalid(t *testing.T) {
	jar, err := NewJar()
	if err != nil {
		t.Fatalf("NewJar failed: %v", err)
	}
	site := mustParseURL(t, "https://shop.example.com")

	// Absent
	if _, ok := GuestID(jar, site); ok {
		t.Error("GuestID on empty jar should return ok=false")
	}

	// Server sets a valid guest id
	want := uuid.New()
	jar.SetCookies(site, []*http.Cookie{{Name: GuestCookieName, Value: want.String(), Path: "/"}})

	got, ok := GuestID(jar, site)
	if !ok {
		t.Fatal("GuestID should return ok=true for a UUID cookie")
	}
	if got != want {
		t.Errorf("GuestID = %s, want %s", got, want)
	}

	// Garbage value is rejected
	jar.SetCookies(site, []*http.Cookie{{Name: GuestCookieName, Value: "not-a-uuid", Path: "/"}})
	if _, ok := GuestID(jar, site); ok {
		t.Error("GuestID should return ok=false for a non-UUID cookie")
	}
}
