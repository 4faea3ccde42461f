package own

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kolkov/ownrt/internal/rt/goid"
	"github.com/kolkov/ownrt/internal/rt/report"
)

// Mutex owns a payload and grants one goroutine at a time exclusive, scoped
// access to it.
//
// This is the blocking counterpart to Cell: where Cell refuses a
// conflicting request, Mutex parks the caller until the holder releases.
// A 1-slot channel is the lock; a queued token means locked. Channel
// send/receive gives the required happens-before edge from each release to
// the next acquire, and the runtime parks channel waiters in rough FIFO
// order, so release wakes exactly one waiter and starvation is avoided in
// practice (strict fairness is not promised).
//
// Acquisition is not recursive: the holder re-acquiring would deadlock, and
// owncheck builds detect it and report a fatal reentrant acquire instead.
//
// Destroying the Mutex while a guard is outstanding is the fatal
// lock-held-on-destroy condition: a logic error in the owning program,
// surfaced immediately, never tolerated.
//
// The typical composition AtomicShared[*Mutex[T]] gives cross-goroutine
// shared mutable state.
type Mutex[T any] struct {
	// sem is a 1-slot semaphore: sending the token acquires, receiving it
	// back releases. Blocking, parked waits, no polling.
	sem chan struct{}

	val T

	// dead is set while the token is held during Drop, so it is published
	// to later acquirers by the channel happens-before edge.
	dead bool

	// holder is the goroutine currently holding the lock, 0 when unlocked.
	// Maintained only in owncheck builds, for the reentrancy check; atomic
	// because the check reads it from goroutines that do not hold the lock.
	holder atomic.Int64
}

// NewMutex creates an unlocked Mutex owning the payload.
func NewMutex[T any](payload T) *Mutex[T] {
	return &Mutex[T]{
		sem: make(chan struct{}, 1),
		val: payload,
	}
}

// Acquire blocks until the lock is available, then returns the guard.
//
// If the lock is held, the calling goroutine suspends until a release wakes
// it; there is no cancellation; use AcquireTimeout for a bounded wait.
// Fails with ErrUseAfterMove if the Mutex has been dropped.
func (m *Mutex[T]) Acquire() (*MutexGuard[T], error) {
	m.checkReentry()
	m.sem <- struct{}{}
	return m.locked()
}

// TryAcquire acquires the lock only if it is free right now.
//
// Fails with ErrBusy without blocking if the lock is held, and with
// ErrUseAfterMove if the Mutex has been dropped.
func (m *Mutex[T]) TryAcquire() (*MutexGuard[T], error) {
	select {
	case m.sem <- struct{}{}:
		return m.locked()
	default:
		return nil, ErrBusy
	}
}

// AcquireTimeout blocks at most d waiting for the lock.
//
// On timeout it fails with ErrTimedOut and leaves the lock state unchanged:
// no token was queued, no wakeup is consumed.
func (m *Mutex[T]) AcquireTimeout(d time.Duration) (*MutexGuard[T], error) {
	m.checkReentry()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case m.sem <- struct{}{}:
		return m.locked()
	case <-timer.C:
		return nil, ErrTimedOut
	}
}

// Drop destroys the Mutex and its payload.
//
// Only a free lock may be destroyed. If a guard is outstanding this is the
// fatal lock-held-on-destroy condition: reported and panicked, not leaked
// or ignored. A second Drop fails with ErrUseAfterMove.
func (m *Mutex[T]) Drop() error {
	select {
	case m.sem <- struct{}{}:
	default:
		var gid int64
		if checksEnabled {
			gid = goid.ID()
		}
		report.Fail(report.New(
			report.LockHeldOnDestroy, "Mutex", gid,
			"destroyed while a guard is outstanding", 1,
		))
	}

	if m.dead {
		<-m.sem
		return ErrUseAfterMove
	}

	m.dead = true
	runDrop(&m.val)
	var zero T
	m.val = zero
	// Hand the token back so parked acquirers wake, observe dead, and fail
	// with ErrUseAfterMove instead of blocking forever.
	<-m.sem
	return nil
}

// locked finishes an acquisition after the token was queued.
func (m *Mutex[T]) locked() (*MutexGuard[T], error) {
	if m.dead {
		<-m.sem
		return nil, ErrUseAfterMove
	}
	if checksEnabled {
		m.holder.Store(goid.ID())
	}
	return &MutexGuard[T]{m: m}, nil
}

// checkReentry detects the holder blocking on its own lock (owncheck builds).
func (m *Mutex[T]) checkReentry() {
	if !checksEnabled {
		return
	}
	if gid := goid.ID(); gid != 0 && gid == m.holder.Load() {
		report.Fail(report.New(
			report.ReentrantAcquire, "Mutex", gid,
			fmt.Sprintf("goroutine %d already holds this lock; recursion is not supported", gid),
			1,
		))
	}
}

// MutexGuard is the proof of exclusive, scoped access to a Mutex payload.
//
// Non-copyable. Release must be called exactly once, on every exit path;
// it is the sole unlock mechanism and wakes exactly one parked waiter.
type MutexGuard[T any] struct {
	m        *Mutex[T]
	released bool
	_        noCopy
}

// Get returns a pointer to the payload, valid for reads and writes while
// the guard is live. All writes made before Release are visible to the next
// acquirer.
func (g *MutexGuard[T]) Get() *T {
	if g.released {
		failReleased("MutexGuard", "access through a released lock guard")
	}
	return &g.m.val
}

// Set replaces the payload. Shorthand for *g.Get() = v.
func (g *MutexGuard[T]) Set(v T) {
	*g.Get() = v
}

// Release unlocks the Mutex, waking one parked waiter if any are queued.
// A second Release is a fatal misuse.
func (g *MutexGuard[T]) Release() {
	if g.released {
		failReleased("MutexGuard", "lock guard released twice")
	}
	g.released = true
	if checksEnabled {
		g.m.holder.Store(0)
	}
	<-g.m.sem
}
