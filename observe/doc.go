// Package observe provides observability primitives for cart API calls.
//
// It is a pure instrumentation library: no cart logic, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into the cart client
// or the CLI.
package observe
