package engine

import (
	"fmt"

	"github.com/lixenwraith/ballfall/core"
)

// Singleton returns the only entity carrying T and a reference to its component
// Zero or several carriers are invariant violations
func Singleton[T any](s *Store[T]) (core.Entity, *T, error) {
	entities := s.All()
	switch len(entities) {
	case 0:
		return 0, nil, fmt.Errorf("%w: %s", ErrMissingResource, KindOf[T]())
	case 1:
	default:
		return 0, nil, fmt.Errorf("%w: %s on %d entities", ErrDuplicateResource, KindOf[T](), len(entities))
	}

	ref, ok := s.Ref(entities[0])
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s", ErrMissingResource, KindOf[T]())
	}
	return entities[0], ref, nil
}
