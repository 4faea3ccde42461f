//go:build owncheck

package own

// checksEnabled compiles in the precondition checks that need goroutine
// identity: cross-goroutine use of a Shared handle and reentrant Mutex
// acquisition. Each check costs a goroutine-ID lookup (~1.5µs), so they are
// opt-in via the owncheck build tag.
const checksEnabled = true
