// Copyright 2025 The ownrt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goid extracts the current goroutine's ID for misuse checks.
//
// The runtime does not expose goroutine IDs, so this package parses the
// header of runtime.Stack output for the current goroutine:
//
//	"goroutine 123 [running]:\n..."
//
// Performance: ~1500ns per call. That is far too slow for a per-access hot
// path, and deliberately acceptable here: ID is only consulted on
// check-enabled precondition paths (cross-goroutine misuse of a non-atomic
// handle, reentrant lock acquisition), which release builds compile out
// entirely.
package goid

import (
	"runtime"
)

// stackBufSize is enough for the first line of a stack dump; we only need
// the "goroutine N" header, never the frames.
const stackBufSize = 64

// ID returns the current goroutine's ID.
//
// IDs are positive and unique for the lifetime of the goroutine; the runtime
// never reuses an ID while the goroutine is alive. Returns 0 only if the
// header cannot be parsed, which would indicate a runtime format change.
func ID() int64 {
	var buf [stackBufSize]byte
	n := runtime.Stack(buf[:], false)

	// Skip the "goroutine " prefix and parse digits until the space before
	// the state ("[running]").
	const prefix = "goroutine "
	if n <= len(prefix) {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
