package physics

import "errors"

var (
	// ErrNegativeDelta is returned by Step for a negative, NaN or infinite delta
	ErrNegativeDelta = errors.New("physics: invalid step delta")

	// ErrUnknownHandle is returned for a handle that does not reference a live body
	ErrUnknownHandle = errors.New("physics: unknown body handle")

	// ErrInvalidBody is returned when a body descriptor fails validation
	ErrInvalidBody = errors.New("physics: invalid body descriptor")

	// ErrNonFinite is returned when a step leaves a dynamic body with NaN or infinite state
	ErrNonFinite = errors.New("physics: non-finite body state")
)
