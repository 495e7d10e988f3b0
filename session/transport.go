package session

import "net/http"

// Transport is an http.RoundTripper that decorates outgoing storefront
// requests: it marks every request as AJAX-style with X-Requested-With,
// echoes the csrftoken cookie as the X-CSRFToken header on mutating
// methods, and attaches an optional bearer token.
//
// Contract:
// - Concurrency: safe for concurrent use once constructed; fields must not
//   be mutated after the first request.
// - Requests are cloned before modification, per the RoundTripper contract.
type Transport struct {
	// Base performs the actual round trip. Nil means http.DefaultTransport.
	Base http.RoundTripper

	// Jar is the cookie jar holding the csrftoken cookie. Usually the same
	// jar installed on the http.Client so header and cookie stay in step.
	Jar http.CookieJar

	// BearerToken, when non-empty, is sent as an Authorization bearer
	// header unless the request already carries one.
	BearerToken string
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Requested-With", "XMLHttpRequest")

	if t.BearerToken != "" && clone.Header.Get("Authorization") == "" {
		clone.Header.Set("Authorization", "Bearer "+t.BearerToken)
	}

	if mutating(clone.Method) {
		if token := CSRFToken(t.Jar, clone.URL); token != "" {
			clone.Header.Set("X-CSRFToken", token)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// mutating reports whether method changes server state and therefore
// needs the CSRF header.
func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Ensure Transport implements http.RoundTripper
var _ http.RoundTripper = (*Transport)(nil)
