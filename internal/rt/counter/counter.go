// Package counter implements the reference-counting primitives for shared
// ownership handles.
//
// Two variants with identical contracts and different concurrency semantics:
//
//   - Plain: non-atomic increment/decrement. Single-goroutine only; the
//     cheapest possible counter for handles that never cross goroutines.
//   - Atomic: read-modify-write via sync/atomic. Go's atomics are
//     sequentially consistent, which is stronger than the acquire/release
//     pairing the destroy-on-zero protocol needs: the goroutine whose
//     decrement observes zero is guaranteed to see every write made through
//     any handle before that handle's own decrement.
//
// Both counters start at 1 on Init (the creating handle) and report the
// post-decrement value from Decr so the caller can run the single
// check-and-free step when it reaches 0. The counter itself never frees
// anything; destroy-on-zero is the owning container's job.
package counter

import "sync/atomic"

// Plain is a non-atomic reference counter.
//
// Not safe for concurrent use. The shared-counted container using it must
// stay on one goroutine; that precondition is checked by the container in
// debug-instrumented builds, not here.
type Plain struct {
	n int64
}

// Init sets the count to 1 (the creating handle).
func (c *Plain) Init() {
	c.n = 1
}

// Incr adds one live handle. O(1), never fails.
func (c *Plain) Incr() {
	c.n++
}

// Decr removes one live handle and returns the post-decrement count.
//
// A return of 0 means the caller just dropped the last handle and must run
// the destroy step. A negative return means a drop without a matching live
// handle; the caller treats that as fatal misuse.
func (c *Plain) Decr() int64 {
	c.n--
	return c.n
}

// Count returns the current count. For observers and tests.
func (c *Plain) Count() int64 {
	return c.n
}

// Atomic is a reference counter safe for concurrent use across goroutines.
//
// All transitions are linearizable. See the package comment for the memory
// ordering guarantee around the final decrement.
type Atomic struct {
	n atomic.Int64
}

// Init sets the count to 1 (the creating handle).
//
// Must happen-before any concurrent Incr/Decr, which holds trivially: the
// creating goroutine is the only one with a handle at that point.
func (c *Atomic) Init() {
	c.n.Store(1)
}

// Incr adds one live handle. O(1), never fails.
func (c *Atomic) Incr() {
	c.n.Add(1)
}

// Decr removes one live handle and returns the post-decrement count.
//
// Exactly one concurrent caller can observe 0; that caller runs the destroy
// step. A naive non-atomic decrement here could free the payload while
// another goroutine still writes through a stale view; this single Add(-1)
// is what the whole shared-ownership safety argument rests on.
func (c *Atomic) Decr() int64 {
	return c.n.Add(-1)
}

// Count returns the current count.
//
// The value is a snapshot and may be stale by the time the caller looks at
// it; it is for observers and tests, never for destroy decisions.
func (c *Atomic) Count() int64 {
	return c.n.Load()
}
