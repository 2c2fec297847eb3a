package status

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// MetricMap maps metric keys to stable pointers of type T
// Only key registration locks; reads and writes through a cached pointer do not
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the pointer for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has reports whether key has been registered
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// All yields every registered metric in key order
// The key set is captured when iteration starts
func (m *MetricMap[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		m.mu.RLock()
		keys := slices.Sorted(maps.Keys(m.items))
		ptrs := make([]*T, len(keys))
		for i, k := range keys {
			ptrs[i] = m.items[k]
		}
		m.mu.RUnlock()

		for i, k := range keys {
			if !yield(k, ptrs[i]) {
				return
			}
		}
	}
}

// Count returns the number of registered keys
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
