// Package flight tracks logical operations currently in flight so
// overlapping callers can be turned away instead of piling onto the
// network.
//
// Unlike golang.org/x/sync/singleflight, a duplicate caller does not wait
// for and share the first caller's result: it gets ErrInFlight immediately.
// That is the storefront contract for cart loads - the page asked once,
// the second ask is noise.
package flight
