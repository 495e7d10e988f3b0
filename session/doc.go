// Package session manages per-session client state for the storefront:
// key/value storage scoped to one shopping session, the CSRF and guest
// cookies, pre-cart items gathered before login, and bearer-token
// introspection.
//
// Storage implementations are local only. Nothing in this package talks to
// the network; cookies travel on requests made by the caller's HTTP client.
package session
