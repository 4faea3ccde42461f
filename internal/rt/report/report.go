// Package report formats and raises fatal misuse reports.
//
// The ownership runtime distinguishes two failure tiers. Recoverable
// conditions (borrow conflicts, busy locks, timeouts) are returned to the
// caller as plain errors by the own package. The conditions handled here are
// the other tier: logic errors in the host program that the runtime refuses
// to paper over: using a non-atomic shared handle from a second goroutine,
// destroying a lock that is still held, re-acquiring an owned lock,
// releasing a guard twice.
//
// A report carries the misuse kind, the offending goroutine and a captured
// stack, is formatted to stderr as a framed WARNING block, and then the
// runtime panics. Nothing in this package is on a hot path.
package report

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Kind identifies the class of misuse being reported.
type Kind string

// Misuse kinds. These are fatal precondition violations, never returned as
// recoverable errors.
const (
	// CrossGoroutine: a non-atomic shared handle was touched from a
	// goroutine other than the one that created it.
	CrossGoroutine Kind = "cross-goroutine misuse"

	// LockHeldOnDestroy: a payload lock was destroyed while a guard was
	// still outstanding.
	LockHeldOnDestroy Kind = "lock held on destroy"

	// ReentrantAcquire: the goroutine holding a lock tried to acquire it
	// again. Recursion is not supported; without the check this would
	// deadlock silently.
	ReentrantAcquire Kind = "reentrant lock acquire"

	// DoubleRelease: a guard's Release was called more than once. Release
	// is the sole release mechanism and must run exactly once.
	DoubleRelease Kind = "guard double release"
)

// maxStackDepth is the maximum number of stack frames to capture.
const maxStackDepth = 32

// Report describes one detected misuse.
type Report struct {
	// Kind is the misuse class.
	Kind Kind

	// Component names the container involved ("Shared", "Mutex", ...).
	Component string

	// Goroutine is the ID of the offending goroutine, 0 if unknown
	// (release builds skip the goid lookup).
	Goroutine int64

	// Detail is a one-line description of the specific violation.
	Detail string

	// Stack holds program counters captured at the report site.
	Stack []uintptr
}

// New builds a report and captures the caller's stack.
//
// skip counts frames above New to omit from the capture; callers inside the
// own package pass enough to start the trace at the user's call site.
func New(kind Kind, component string, gid int64, detail string, skip int) *Report {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)

	return &Report{
		Kind:      kind,
		Component: component,
		Goroutine: gid,
		Detail:    detail,
		Stack:     pcs[:n],
	}
}

// Format writes the report as a framed block, matching the style of runtime
// diagnostic output:
//
//	==================
//	WARNING: OWNERSHIP MISUSE: lock held on destroy
//	Mutex by goroutine 7: destroyed while a guard is outstanding
//	  main.worker()
//	      /path/to/file.go:25
//	==================
func (r *Report) Format(w io.Writer) {
	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "WARNING: OWNERSHIP MISUSE: %s\n", r.Kind)

	if r.Goroutine != 0 {
		fmt.Fprintf(w, "%s by goroutine %d: %s\n", r.Component, r.Goroutine, r.Detail)
	} else {
		fmt.Fprintf(w, "%s: %s\n", r.Component, r.Detail)
	}

	if len(r.Stack) > 0 {
		fmt.Fprint(w, formatStack(r.Stack))
	} else {
		fmt.Fprintf(w, "  (no stack trace captured)\n")
	}

	fmt.Fprintf(w, "==================\n")
}

// String returns the formatted report. Useful for tests and panic values.
func (r *Report) String() string {
	var buf strings.Builder
	r.Format(&buf)
	return buf.String()
}

// Fail prints the report to stderr and panics with the misuse kind.
//
// These conditions indicate a logic error in the owning program, not a
// recoverable runtime state; surfacing them immediately is the contract.
func Fail(r *Report) {
	r.Format(os.Stderr)
	panic("ownrt: " + string(r.Kind))
}

// formatStack converts program counters into indented frame lines.
//
// Runtime-internal frames and this module's own frames are filtered so the
// trace starts at the host program's call site.
func formatStack(pcs []uintptr) string {
	frames := runtime.CallersFrames(pcs)
	var buf strings.Builder

	for {
		frame, more := frames.Next()

		if strings.HasPrefix(frame.Function, "runtime.") ||
			strings.Contains(frame.Function, "kolkov/ownrt/own.") ||
			strings.Contains(frame.Function, "kolkov/ownrt/internal/") {
			if !more {
				break
			}
			continue
		}

		buf.WriteString("  ")
		buf.WriteString(frame.Function)
		buf.WriteString("()\n")
		buf.WriteString("      ")
		buf.WriteString(frame.File)
		buf.WriteString(fmt.Sprintf(":%d\n", frame.Line))

		if !more {
			break
		}
	}

	if buf.Len() == 0 {
		return "  (all frames filtered)\n"
	}
	return buf.String()
}
