package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/google/uuid"
)

// Cookie names used by the storefront.
const (
	// CSRFCookieName holds the CSRF token the server expects echoed back
	// in the X-CSRFToken header on mutating requests.
	CSRFCookieName = "csrftoken"

	// GuestCookieName identifies an anonymous visitor. The server sets it;
	// clients only retain and resend it.
	GuestCookieName = "guest_id"

	// SessionCookieName is the opaque login session cookie.
	SessionCookieName = "sessionid"
)

// NewJar creates a cookie jar for storefront clients.
func NewJar() (*cookiejar.Jar, error) {
	return cookiejar.New(nil)
}

// CSRFToken returns the csrftoken cookie value held by jar for siteURL,
// or "" when absent.
func CSRFToken(jar http.CookieJar, siteURL *url.URL) string {
	return cookieValue(jar, siteURL, CSRFCookieName)
}

// GuestID returns the server-issued guest identity for siteURL.
// Returns (uuid.Nil, false) when the cookie is absent or not a UUID.
func GuestID(jar http.CookieJar, siteURL *url.URL) (uuid.UUID, bool) {
	raw := cookieValue(jar, siteURL, GuestCookieName)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SeedCSRFToken stores a csrftoken cookie in jar for siteURL. Headless
// clients use this when the token arrives out of band instead of via a
// Set-Cookie response.
func SeedCSRFToken(jar http.CookieJar, siteURL *url.URL, token string) {
	if jar == nil || siteURL == nil || token == "" {
		return
	}
	jar.SetCookies(siteURL, []*http.Cookie{{
		Name:  CSRFCookieName,
		Value: token,
		Path:  "/",
	}})
}

func cookieValue(jar http.CookieJar, siteURL *url.URL, name string) string {
	if jar == nil || siteURL == nil {
		return ""
	}
	for _, c := range jar.Cookies(siteURL) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
