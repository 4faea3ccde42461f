package own

// Dropper is implemented by payloads that need deterministic cleanup.
//
// Go's garbage collector reclaims storage, but the ownership containers
// still define an exact destruction point: the moment the single owner is
// dropped (Box, Mutex) or the reference count reaches zero (Shared,
// AtomicShared). At that point, and only there, the payload's Drop method
// runs, exactly once per payload and never while any live handle remains.
//
// Payloads without cleanup needs simply don't implement Dropper.
type Dropper interface {
	Drop()
}

// runDrop invokes the payload's destructor if it has one.
//
// Checks the value first, then its address, so both value-receiver and
// pointer-receiver Drop methods are honored (as are payloads that are
// themselves pointers).
func runDrop[T any](v *T) {
	if d, ok := any(*v).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(v).(Dropper); ok {
		d.Drop()
	}
}

// noCopy makes guard types trip go vet's copylocks check when copied.
//
// Guards are the unique proof of currently-held access; a copied guard would
// be two proofs for one borrow.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
