package engine

import (
	"reflect"
	"slices"
)

// Kind identifies a component type
type Kind struct {
	t reflect.Type
}

// KindOf returns the kind of component type T
func KindOf[T any]() Kind {
	return Kind{t: reflect.TypeFor[T]()}
}

func (k Kind) String() string {
	if k.t == nil {
		return "<nil>"
	}
	return k.t.String()
}

// Access declares which component kinds a system reads and writes during Run
type Access struct {
	Reads  []Kind
	Writes []Kind
}

// Conflicts reports whether two systems may not run concurrently:
// either one writes a kind the other reads or writes
func (a Access) Conflicts(b Access) bool {
	for _, k := range a.Writes {
		if slices.Contains(b.Reads, k) || slices.Contains(b.Writes, k) {
			return true
		}
	}
	for _, k := range b.Writes {
		if slices.Contains(a.Reads, k) {
			return true
		}
	}
	return false
}
