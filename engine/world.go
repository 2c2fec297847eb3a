package engine

import (
	"sync"

	"github.com/lixenwraith/ballfall/core"
	"github.com/lixenwraith/ballfall/status"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Stores keyed by component kind, created on first use
	stores map[Kind]any

	// Cached typed stores for the components the pipeline uses
	Components ComponentStore

	// Status holds the run metrics systems publish for displays and summaries
	Status *status.Registry
}

// NewWorld creates a new ECS world with the pipeline component stores registered
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		stores:       make(map[Kind]any),
		Status:       status.NewRegistry(),
	}
	w.Components = GetComponentStore(w)
	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// EntityCount returns the number of entity IDs issued so far
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return int(w.nextEntityID - 1)
}

// GetStore returns the store for component type T, creating it on first use
func GetStore[T any](w *World) *Store[T] {
	kind := KindOf[T]()

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.stores[kind]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[kind] = s
	return s
}

// Query creates a QueryBuilder filtered on the stores registered for kinds
// A kind with no store yet matches nothing; further stores can be added with With
func (w *World) Query(kinds ...Kind) *QueryBuilder {
	qb := NewQuery()

	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, kind := range kinds {
		s, ok := w.stores[kind].(QueryableStore)
		if !ok {
			qb.With(emptyStore{})
			continue
		}
		qb.With(s)
	}
	return qb
}

// emptyStore stands in for a component kind nothing has been attached to
type emptyStore struct{}

func (emptyStore) Has(core.Entity) bool { return false }
func (emptyStore) Count() int           { return 0 }
func (emptyStore) All() []core.Entity   { return nil }
