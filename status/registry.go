package status

import "sync/atomic"

// Registry holds the run metrics shared between publishing systems and their readers
// Publishers cache metric pointers at construction and store to the atomics every tick
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Count returns the number of metrics across every type
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}
