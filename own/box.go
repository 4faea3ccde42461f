package own

// Box is the unique owner of one payload.
//
// There is exactly one live Box per payload; ownership is non-duplicable.
// Go has no move-only types, so the "moved-from" state the type system would
// otherwise forbid is represented by an explicit liveness flag checked on
// every operation. Using a Box after Move, IntoInner, or Drop fails with
// ErrUseAfterMove instead of aliasing a payload someone else now owns.
//
// Access needs no runtime borrow check: uniqueness is structural. The single
// pointer Get returns covers both read and write access.
//
// Not safe for concurrent use. A Box belongs to one goroutine at a time;
// hand it across by Move.
type Box[T any] struct {
	val  T
	dead bool // set by Move, IntoInner, or Drop
}

// NewBox allocates a payload under unique ownership.
func NewBox[T any](payload T) *Box[T] {
	return &Box[T]{val: payload}
}

// Get returns a pointer to the payload, valid for reads and writes.
//
// Fails with ErrUseAfterMove if ownership has ended. The pointer must not
// outlive the Box; it is not a guard, just direct access the unique owner
// is always entitled to.
func (b *Box[T]) Get() (*T, error) {
	if b.dead {
		return nil, ErrUseAfterMove
	}
	return &b.val, nil
}

// Move transfers unique ownership to a fresh Box and invalidates the source.
//
// This is the transfer of the one ownership record, not a copy: after Move,
// every operation on the source fails with ErrUseAfterMove.
func (b *Box[T]) Move() (*Box[T], error) {
	if b.dead {
		return nil, ErrUseAfterMove
	}
	b.dead = true

	moved := &Box[T]{val: b.val}
	var zero T
	b.val = zero // drop the stale alias so the payload has one reachable owner
	return moved, nil
}

// IntoInner consumes the Box and yields the payload to the caller.
//
// The scheduled destructor run is cancelled: the caller now owns the value
// outside the container and is responsible for any cleanup.
func (b *Box[T]) IntoInner() (T, error) {
	if b.dead {
		var zero T
		return zero, ErrUseAfterMove
	}
	b.dead = true

	v := b.val
	var zero T
	b.val = zero
	return v, nil
}

// Drop destroys the payload, running its destructor if it implements
// Dropper.
//
// This is the deterministic release point for the unique owner. A second
// Drop (or any later use) fails with ErrUseAfterMove; the destructor never
// runs twice.
func (b *Box[T]) Drop() error {
	if b.dead {
		return ErrUseAfterMove
	}
	b.dead = true

	runDrop(&b.val)
	var zero T
	b.val = zero
	return nil
}
