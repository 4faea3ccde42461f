package own

import (
	"fmt"

	"github.com/kolkov/ownrt/internal/rt/counter"
	"github.com/kolkov/ownrt/internal/rt/goid"
	"github.com/kolkov/ownrt/internal/rt/report"
)

// sharedRecord is the ownership record co-located with a Shared payload:
// the payload itself, the live-handle count, and (in check-enabled builds)
// the goroutine the record belongs to.
type sharedRecord[T any] struct {
	val   T
	count counter.Plain

	// home is the goroutine that created the record. Only set when
	// checksEnabled; every handle operation is verified against it.
	home int64
}

// Shared is a reference-counted handle to a shared payload, for
// single-goroutine use.
//
// Cloning a handle increments the count; dropping one decrements it. The
// payload is destroyed exactly once, by the drop that takes the count from
// 1 to 0, and never while any live handle remains.
//
// The counter is plain (non-atomic); that is the point of this variant.
// Sharing any handle of one record across goroutines is a hard precondition
// violation: detected and reported fatally in owncheck builds, undefined
// otherwise. For cross-goroutine sharing use AtomicShared.
//
// Get is read-only sharing, which is unconditionally safe. There is no
// mutable accessor: shared + mutable is reached by composing with Cell
// (see the package documentation).
type Shared[T any] struct {
	rec     *sharedRecord[T]
	dropped bool
}

// NewShared allocates a payload under shared ownership with count 1.
func NewShared[T any](payload T) *Shared[T] {
	rec := &sharedRecord[T]{val: payload}
	rec.count.Init()
	if checksEnabled {
		rec.home = goid.ID()
	}
	return &Shared[T]{rec: rec}
}

// Clone returns a new handle aliasing the same payload and increments the
// count. O(1). Fails only if this handle was already dropped.
func (s *Shared[T]) Clone() (*Shared[T], error) {
	if s.dropped {
		return nil, ErrUseAfterMove
	}
	s.check()

	s.rec.count.Incr()
	return &Shared[T]{rec: s.rec}, nil
}

// Get returns a read-only view of the payload.
//
// The pointer is shared with every other live handle; writing through it
// violates the discipline this package enforces. Mutation goes through a
// composed Cell.
func (s *Shared[T]) Get() (*T, error) {
	if s.dropped {
		return nil, ErrUseAfterMove
	}
	s.check()

	return &s.rec.val, nil
}

// Drop gives up this handle.
//
// Decrements the count; the drop that observes zero runs the payload's
// destructor (if it implements Dropper). This check-and-free step is the
// only destruction path. Dropping a handle twice fails with ErrUseAfterMove
// and does not touch the count.
func (s *Shared[T]) Drop() error {
	if s.dropped {
		return ErrUseAfterMove
	}
	s.check()
	s.dropped = true

	if s.rec.count.Decr() == 0 {
		runDrop(&s.rec.val)
	}
	return nil
}

// Count returns the number of live handles. For tests and diagnostics.
func (s *Shared[T]) Count() int64 {
	if s.dropped {
		return 0
	}
	return s.rec.count.Count()
}

// check verifies the single-goroutine precondition in owncheck builds.
// Compiled out entirely otherwise (checksEnabled is a constant).
func (s *Shared[T]) check() {
	if !checksEnabled {
		return
	}
	if gid := goid.ID(); gid != s.rec.home {
		report.Fail(report.New(
			report.CrossGoroutine, "Shared", gid,
			fmt.Sprintf("handle belongs to goroutine %d; use AtomicShared for cross-goroutine sharing", s.rec.home),
			1,
		))
	}
}
