package engine

import (
	"iter"
	"sync"

	"github.com/lixenwraith/ballfall/core"
)

// Store is a generic container for a specific component type T
// Components are boxed so references returned by Ref stay valid across later attaches
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]*T
	entities   []core.Entity // Attach order, drives iteration
}

// NewStore creates a new component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]*T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set attaches val to e, replacing any prior value in place
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref, exists := s.components[e]; exists {
		*ref = val
		return
	}
	boxed := val
	s.components[e] = &boxed
	s.entities = append(s.entities, e)
}

// Get returns a copy of the component for e
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ref, ok := s.components[e]; ok {
		return *ref, true
	}
	var zero T
	return zero, false
}

// Ref returns a mutable reference to the component for e
func (s *Store[T]) Ref(e core.Entity) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.components[e]
	return ref, ok
}

// Has checks if entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// All returns all entities with this component type in attach order
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns number of entities with this component
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Each lazily yields every entity and its component reference
// The entity set is snapshotted when iteration starts; ranging again starts a new pass
func (s *Store[T]) Each() iter.Seq2[core.Entity, *T] {
	return func(yield func(core.Entity, *T) bool) {
		for _, e := range s.All() {
			ref, ok := s.Ref(e)
			if !ok {
				continue
			}
			if !yield(e, ref) {
				return
			}
		}
	}
}
