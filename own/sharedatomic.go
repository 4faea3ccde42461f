package own

import (
	"github.com/kolkov/ownrt/internal/rt/counter"
)

// atomicRecord is the ownership record for AtomicShared: payload plus an
// atomic live-handle count.
type atomicRecord[T any] struct {
	val   T
	count counter.Atomic
}

// AtomicShared is a reference-counted handle to a shared payload, safe for
// use across goroutines.
//
// The surface matches Shared; the sole difference is the counter's
// concurrency semantics. Count transitions are linearizable, and the
// decrement uses a single atomic read-modify-write: exactly one goroutine
// observes the 1→0 transition, and it observes all writes made through any
// clone before that clone's own drop. That ordering is what makes it safe
// for the zero-observing goroutine to run the destructor; a relaxed
// decrement could destroy a payload another goroutine is still writing
// through a composed Mutex guard.
//
// Handles may be sent between goroutines freely; each individual handle
// still belongs to one goroutine at a time (clone a handle per goroutine,
// which is O(1)).
//
// As with Shared there is no mutable accessor: cross-goroutine shared +
// mutable state composes with Mutex (see the package documentation).
type AtomicShared[T any] struct {
	rec     *atomicRecord[T]
	dropped bool
}

// NewAtomicShared allocates a payload under shared ownership with count 1.
func NewAtomicShared[T any](payload T) *AtomicShared[T] {
	rec := &atomicRecord[T]{val: payload}
	rec.count.Init()
	return &AtomicShared[T]{rec: rec}
}

// Clone returns a new handle aliasing the same payload and increments the
// count. O(1), safe concurrently with clones and drops of other handles.
func (s *AtomicShared[T]) Clone() (*AtomicShared[T], error) {
	if s.dropped {
		return nil, ErrUseAfterMove
	}
	s.rec.count.Incr()
	return &AtomicShared[T]{rec: s.rec}, nil
}

// Get returns a read-only view of the payload.
//
// Concurrent reads through any number of handles are safe. Writing through
// the pointer is the violation this package exists to prevent; mutation
// goes through a composed Mutex.
func (s *AtomicShared[T]) Get() (*T, error) {
	if s.dropped {
		return nil, ErrUseAfterMove
	}
	return &s.rec.val, nil
}

// Drop gives up this handle.
//
// The goroutine whose decrement reaches zero runs the payload's destructor
// (if it implements Dropper); no other drop path exists, so the destructor
// runs exactly once across any interleaving of clones and drops.
func (s *AtomicShared[T]) Drop() error {
	if s.dropped {
		return ErrUseAfterMove
	}
	s.dropped = true

	if s.rec.count.Decr() == 0 {
		runDrop(&s.rec.val)
	}
	return nil
}

// Count returns a snapshot of the live-handle count. Concurrent clones and
// drops may change it immediately; for tests and diagnostics only, never
// for destroy decisions.
func (s *AtomicShared[T]) Count() int64 {
	if s.dropped {
		return 0
	}
	return s.rec.count.Count()
}
