// Package borrow implements the tri-state borrow flag for runtime borrow tracking.
//
// A Flag records how a cell's payload is currently being accessed:
//
//	Unborrowed        flag == 0   no access path is live
//	SharedBorrowed(n) flag == n   n > 0 concurrent read-only guards
//	ExclusiveBorrowed flag == -1  exactly one read-write guard
//
// The -1 sentinel mirrors the exclusive-writer encoding used in shadow-memory
// cells: non-negative values count readers, the negative sentinel marks the
// exclusive state. All transitions are check-and-set in one step; there is no
// window where a conflicting guard could be observed as grantable.
//
// Flag is deliberately NOT safe for concurrent use. The borrow-tracked cell
// it backs assumes a single logical owner goroutine (or external
// serialization); its whole purpose is to let that one goroutine prove it
// holds no conflicting accesses at each call site.
package borrow

// exclusive is the sentinel flag value marking an outstanding exclusive borrow.
const exclusive int32 = -1

// Flag is the borrow-state machine for a single cell.
//
// The zero value is Unborrowed and ready to use.
type Flag struct {
	// state is 0 (unborrowed), n > 0 (n shared readers), or -1 (exclusive).
	state int32
}

// TryShared attempts the transition Unborrowed/SharedBorrowed(n) -> SharedBorrowed(n+1).
//
// Returns false without changing state if an exclusive borrow is outstanding.
func (f *Flag) TryShared() bool {
	if f.state == exclusive {
		return false
	}
	f.state++
	return true
}

// TryExclusive attempts the transition Unborrowed -> ExclusiveBorrowed.
//
// Returns false without changing state if any borrow (shared or exclusive)
// is outstanding. A pending-but-unreleased shared guard counts: the check is
// against the state as it is, never against releases that are "about to"
// happen.
func (f *Flag) TryExclusive() bool {
	if f.state != 0 {
		return false
	}
	f.state = exclusive
	return true
}

// ReleaseShared reverses one shared borrow: SharedBorrowed(n) -> SharedBorrowed(n-1)
// or Unborrowed.
//
// Returns false if no shared borrow is outstanding (release without a
// matching acquire, or release while in the exclusive state). The caller
// treats that as a fatal guard misuse; state is left unchanged.
func (f *Flag) ReleaseShared() bool {
	if f.state <= 0 {
		return false
	}
	f.state--
	return true
}

// ReleaseExclusive reverses the exclusive borrow: ExclusiveBorrowed -> Unborrowed.
//
// Returns false if the flag is not in the exclusive state.
func (f *Flag) ReleaseExclusive() bool {
	if f.state != exclusive {
		return false
	}
	f.state = 0
	return true
}

// Readers returns the number of outstanding shared borrows (0 if unborrowed
// or exclusively borrowed).
func (f *Flag) Readers() int {
	if f.state <= 0 {
		return 0
	}
	return int(f.state)
}

// Exclusive reports whether an exclusive borrow is outstanding.
func (f *Flag) Exclusive() bool {
	return f.state == exclusive
}

// Borrowed reports whether any borrow (shared or exclusive) is outstanding.
func (f *Flag) Borrowed() bool {
	return f.state != 0
}

// String returns a debug representation of the borrow state.
//
// Format: "unborrowed", "shared(n)", or "exclusive". Used in misuse reports
// and tests, not on any hot path.
func (f *Flag) String() string {
	switch {
	case f.state == exclusive:
		return "exclusive"
	case f.state == 0:
		return "unborrowed"
	default:
		return "shared(" + itoa(uint32(f.state)) + ")"
	}
}

// itoa converts a small non-negative integer to string without fmt import.
func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	tmp := n
	digits := 0
	for tmp > 0 {
		digits++
		tmp /= 10
	}

	buf := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf)
}
