//go:build !owncheck

package own

// checksEnabled is false in release builds: goroutine-identity precondition
// checks are compiled out and violating the documented single-goroutine
// preconditions is undefined behavior. Build with -tags owncheck to enable.
const checksEnabled = false
