package cart

import "errors"

// Errors reported for caller mistakes. Server-side and transport failures
// are not errors; they come back as failure results.
var (
	// ErrNilClient is returned when an operation is invoked on a nil Client.
	ErrNilClient = errors.New("cart: client is nil")

	// ErrInvalidBaseURL is returned by New when the base URL cannot be
	// parsed or is missing a scheme or host.
	ErrInvalidBaseURL = errors.New("cart: invalid base URL")

	// ErrInvalidItemID is returned when a cart item ID is not a UUID.
	ErrInvalidItemID = errors.New("cart: invalid item id")

	// ErrInvalidQuantity is returned when a quantity is below one.
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

	// ErrInvalidItem is returned when a pre-cart item fails validation.
	ErrInvalidItem = errors.New("cart: invalid item")
)

// Failure reasons carried on results. The server uses the same strings in
// its error envelopes, so displays can show either source unchanged.
const (
	// FailureNetwork marks a result produced without a server response.
	FailureNetwork = "Network error"

	// FailureAuthRequired marks a result refused pending authentication.
	FailureAuthRequired = "Authentication required"
)
