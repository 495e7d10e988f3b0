package session

import "errors"

// Sentinel errors for session state handling.
var (
	ErrNoSessionDir   = errors.New("session: no session directory available")
	ErrTokenMalformed = errors.New("session: token malformed")
	ErrInvalidItem    = errors.New("session: pre-cart item invalid")
	ErrCorruptState   = errors.New("session: stored state corrupt")
)
