// Package cart is the client for the storefront's cart API. It wraps the
// HTTP endpoints with the same behavior the storefront pages rely on:
// a short-lived count cache, deduplication of overlapping loads, CSRF and
// session cookie handling, and idempotent count announcements fanned out
// to registered displays and a cart-updated event bus.
//
// A Client degrades instead of failing: transport and server errors come
// back as failure results (zero count, empty cart, success false) rather
// than Go errors. Go errors are reserved for caller mistakes and for
// duplicate loads turned away while an identical request is in flight.
package cart
