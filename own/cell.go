package own

import (
	"github.com/kolkov/ownrt/internal/rt/borrow"
	"github.com/kolkov/ownrt/internal/rt/goid"
	"github.com/kolkov/ownrt/internal/rt/report"
)

// Cell provides interior mutability: runtime-checked exclusive or shared
// access to a payload whose container is otherwise treated as immutable.
//
// A tri-state borrow flag tracks the live access paths. Any number of
// shared (read-only) guards may coexist; an exclusive (read-write) guard
// coexists with nothing. A request that would violate that fails
// immediately with ErrBorrowConflict: no blocking and no waiting, the caller
// decides what to do. This is the runtime analogue of a static borrow
// check, distinct from the blocking Mutex.
//
// Cell has no cross-goroutine guarantee by itself; it assumes a single
// logical owner goroutine or external serialization. Its transitions are
// plain check-and-set; state is inspected atomically with the transition
// in the only execution order that exists on one goroutine. The typical
// composition Shared[*Cell[T]] gives single-goroutine shared mutable state.
//
// The cell must outlive every guard borrowed from it.
type Cell[T any] struct {
	val  T
	flag borrow.Flag
}

// NewCell creates a cell with an initial payload and no outstanding borrows.
func NewCell[T any](payload T) *Cell[T] {
	return &Cell[T]{val: payload}
}

// Borrow acquires a shared, read-only borrow.
//
// Succeeds when the cell is unborrowed or already shared-borrowed,
// incrementing the reader count. Fails with ErrBorrowConflict while an
// exclusive guard is live, never silently downgrading the request.
func (c *Cell[T]) Borrow() (*Ref[T], error) {
	if !c.flag.TryShared() {
		return nil, ErrBorrowConflict
	}
	return &Ref[T]{cell: c}, nil
}

// BorrowMut acquires the exclusive, read-write borrow.
//
// Succeeds only from the unborrowed state. Fails with ErrBorrowConflict
// while any guard, shared or exclusive, is live, even if releases are
// pending elsewhere: only the state as it stands counts.
func (c *Cell[T]) BorrowMut() (*RefMut[T], error) {
	if !c.flag.TryExclusive() {
		return nil, ErrBorrowConflict
	}
	return &RefMut[T]{cell: c}, nil
}

// Borrowed reports whether any guard is live. Diagnostic.
func (c *Cell[T]) Borrowed() bool {
	return c.flag.Borrowed()
}

// State returns the borrow state in debug form: "unborrowed", "shared(n)",
// or "exclusive".
func (c *Cell[T]) State() string {
	return c.flag.String()
}

// Ref is a shared borrow guard: read-only proof of access.
//
// Non-copyable. Release must be called exactly once, on every exit path.
type Ref[T any] struct {
	cell     *Cell[T]
	released bool
	_        noCopy
}

// Get returns a read-only view of the payload.
//
// Using a guard after its Release is a fatal misuse, not a recoverable
// error: the borrow it proved no longer exists.
func (r *Ref[T]) Get() *T {
	if r.released {
		failReleased("Ref", "read through a released shared guard")
	}
	return &r.cell.val
}

// Release ends the shared borrow, reversing SharedBorrowed(n) to
// SharedBorrowed(n-1) or Unborrowed. Destroying the guard is the sole
// release mechanism; a second Release is a fatal misuse.
func (r *Ref[T]) Release() {
	if r.released || !r.cell.flag.ReleaseShared() {
		failReleased("Ref", "shared guard released twice")
	}
	r.released = true
}

// RefMut is the exclusive borrow guard: read-write proof of access.
//
// Non-copyable. Release must be called exactly once, on every exit path.
type RefMut[T any] struct {
	cell     *Cell[T]
	released bool
	_        noCopy
}

// Get returns a pointer to the payload, valid for reads and writes while
// the guard is live.
func (m *RefMut[T]) Get() *T {
	if m.released {
		failReleased("RefMut", "access through a released exclusive guard")
	}
	return &m.cell.val
}

// Set replaces the payload. Shorthand for *m.Get() = v.
func (m *RefMut[T]) Set(v T) {
	*m.Get() = v
}

// Release ends the exclusive borrow, returning the cell to Unborrowed so a
// previously-conflicting request can now succeed.
func (m *RefMut[T]) Release() {
	if m.released || !m.cell.flag.ReleaseExclusive() {
		failReleased("RefMut", "exclusive guard released twice")
	}
	m.released = true
}

// failReleased raises the fatal double-release/use-after-release report.
func failReleased(component, detail string) {
	var gid int64
	if checksEnabled {
		gid = goid.ID()
	}
	report.Fail(report.New(report.DoubleRelease, component, gid, detail, 2))
}
