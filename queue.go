package pqbench

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	// ErrEmptyQueue is returned by ExtractMax when the queue holds no entries.
	ErrEmptyQueue = errors.New("pqbench: queue is empty")
)

// Number is the set of types usable as a priority.
type Number interface {
	constraints.Integer | constraints.Float
}

// Entry is a value paired with its priority.
type Entry[V any, P Number] struct {
	Value    V
	Priority P
}

// Queue is the contract shared by every priority queue in this package.
// Higher priorities are extracted first.
type Queue[V any, P Number] interface {
	// Insert adds value with the given priority.
	Insert(value V, priority P)
	// ExtractMax removes and returns a value with the highest priority.
	// Returns ErrEmptyQueue if the queue is empty.
	ExtractMax() (V, error)
	// Len returns the number of entries in the queue.
	Len() int
}
