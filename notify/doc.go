// Package notify fans cart count changes out to the rest of the
// application: named display sinks receive the new count, and bus
// subscribers receive a cart-updated event.
//
// The announcer suppresses announcements that would repeat the last
// value, so a count that has not changed never causes display churn or a
// duplicate event.
package notify
