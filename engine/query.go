package engine

import (
	"iter"
	"sort"

	"github.com/lixenwraith/ballfall/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection.
// The query optimizes by starting with the smallest store and filtering through larger ones.
type QueryBuilder struct {
	stores   []QueryableStore
	executed bool
	results  []core.Entity
}

// NewQuery creates an empty QueryBuilder.
// Use With() to add component filters, then Iter() or Execute() to get the results.
//
// Example:
//
//	for e := range world.Query().
//	    With(world.Components.RigidBody).
//	    With(world.Components.LocalTransform).
//	    Iter() {
//	    ...
//	}
func NewQuery() *QueryBuilder {
	return &QueryBuilder{
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a component store to the query filter.
// The resulting query will only return entities that have components in ALL specified stores.
//
// Panics if called after Execute().
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Iter lazily yields every entity present in all stores.
// Each range over the returned sequence is an independent pass; order is stable within a pass
// and follows the attach order of the smallest store.
func (qb *QueryBuilder) Iter() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		if len(qb.stores) == 0 {
			return
		}

		stores := make([]QueryableStore, len(qb.stores))
		copy(stores, qb.stores)
		sort.SliceStable(stores, func(i, j int) bool {
			return stores[i].Count() < stores[j].Count()
		})

	candidates:
		for _, e := range stores[0].All() {
			for _, s := range stores[1:] {
				if !s.Has(e) {
					continue candidates
				}
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Execute runs the query once and caches the result.
// Calling Execute() multiple times returns the cached result.
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	qb.results = make([]core.Entity, 0)
	for e := range qb.Iter() {
		qb.results = append(qb.results, e)
	}
	return qb.results
}

// Row2 holds the component references of one joined entity
type Row2[A, B any] struct {
	A *A
	B *B
}

// Join2 lazily yields every entity holding both components with references to each
func Join2[A, B any](a *Store[A], b *Store[B]) iter.Seq2[core.Entity, Row2[A, B]] {
	q := NewQuery().With(a).With(b)
	return func(yield func(core.Entity, Row2[A, B]) bool) {
		for e := range q.Iter() {
			refA, okA := a.Ref(e)
			refB, okB := b.Ref(e)
			if !okA || !okB {
				continue
			}
			if !yield(e, Row2[A, B]{A: refA, B: refB}) {
				return
			}
		}
	}
}
