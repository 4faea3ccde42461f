// Package own provides a family of ownership containers enforcing, at
// runtime, the single rule the whole module exists for: at most one mutable
// access path to a payload may be live at any instant, across all owners.
//
// Go has no compile-time borrow checker, so the discipline is enforced
// dynamically and violations surface at the point of conflict, either as a
// recoverable error ([ErrBorrowConflict], [ErrBusy], [ErrTimedOut],
// [ErrUseAfterMove]) or, for unrecoverable logic errors, as a formatted
// misuse report on stderr followed by a panic.
//
// # Containers
//
//   - [Box]: unique ownership of one payload. The handle is the only owner;
//     moving or consuming it invalidates the source.
//   - [Shared]: reference-counted shared ownership with a plain (non-atomic)
//     counter. Single-goroutine only.
//   - [AtomicShared]: reference-counted shared ownership safe across
//     goroutines.
//   - [Cell]: interior mutability. Runtime-checked shared/exclusive borrows
//     of a payload whose container is otherwise treated as immutable.
//   - [Mutex]: cross-goroutine mutual exclusion granting one goroutine at a
//     time scoped access to its payload.
//
// # Quick Start
//
//	cell := own.NewCell(0)
//
//	w, err := cell.BorrowMut() // exclusive borrow
//	if err != nil {
//		// another borrow is live: ErrBorrowConflict
//	}
//	*w.Get() = 5
//	w.Release()
//
//	r, _ := cell.Borrow() // shared borrow, any number may coexist
//	_ = *r.Get()
//	r.Release()
//
// # Shared + mutable
//
// Neither counted container exposes mutable access directly: read-only
// sharing is unconditionally safe, mutation is not. The documented idiom is
// composition: wrap a [Cell] for single-goroutine shared mutable state, or
// a [Mutex] for cross-goroutine shared mutable state:
//
//	state := own.NewShared(own.NewCell(0))        // one goroutine, many owners
//	state := own.NewAtomicShared(own.NewMutex(0)) // many goroutines, many owners
//
// # Guards
//
// Every borrow or lock acquisition returns a guard ([Ref], [RefMut],
// [MutexGuard]). The guard is the unique proof of currently-held access: it
// is non-copyable (go vet's copylocks check enforces this) and its Release
// method is the sole release mechanism. Release must run on every exit path
// (defer it) and must run exactly once; a second Release is a fatal misuse,
// never a silent no-op.
//
// # Debug checks
//
// Precondition checks that need goroutine identity (using a [Shared] handle
// from a second goroutine, re-acquiring an owned [Mutex]) cost a goroutine-ID
// lookup and are compiled in only under the owncheck build tag:
//
//	go test -tags owncheck ./...
//
// Release builds omit them entirely; violating the preconditions there is
// undefined behavior, exactly as documented on each container.
package own
