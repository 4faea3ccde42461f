package own

import "errors"

var (
	// ErrBorrowConflict is returned by Cell.Borrow and Cell.BorrowMut when
	// the requested borrow would create a second mutable access path: a
	// shared borrow while an exclusive guard is live, or an exclusive
	// borrow while any guard is live.
	//
	// The check is synchronous and non-waiting; the caller decides whether
	// to retry, fall back, or abort. For a blocking wait, use Mutex.
	ErrBorrowConflict = errors.New("borrow conflict")

	// ErrBusy is returned by Mutex.TryAcquire when the lock is held.
	ErrBusy = errors.New("lock busy")

	// ErrTimedOut is returned by Mutex.AcquireTimeout when the lock did not
	// become available within the deadline. The lock state is unchanged.
	ErrTimedOut = errors.New("lock acquire timed out")

	// ErrUseAfterMove is returned when a handle is used after its ownership
	// ended: a moved or consumed Box, a dropped Shared/AtomicShared handle,
	// or a dropped Mutex. The payload may already be destroyed; the
	// operation is refused rather than aliasing freed state.
	ErrUseAfterMove = errors.New("use after move or drop")
)
