package engine

import "errors"

var (
	// ErrMissingResource is returned when a system expects a singleton component that no entity carries
	ErrMissingResource = errors.New("engine: missing singleton resource")

	// ErrDuplicateResource is returned when more than one entity carries a singleton component
	ErrDuplicateResource = errors.New("engine: duplicate singleton resource")

	// ErrInvariant is returned when component state breaks a pipeline invariant
	ErrInvariant = errors.New("engine: invariant violation")
)
