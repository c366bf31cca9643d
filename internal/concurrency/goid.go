// File: internal/concurrency/goid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity. A unit's identity is the id of the goroutine that runs it;
// it is stable for the goroutine's lifetime, unlike the OS thread id of a
// goroutine that is not wired to its thread.

package concurrency

import "runtime"

// currentGoroutineID parses the id out of the first line of runtime.Stack:
// "goroutine 123 [running]:".
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID returns the numeric id following the "goroutine " prefix, or 0 if
// buf does not carry one.
func parseGID(buf []byte) uint64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var gid uint64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		gid = gid*10 + uint64(c-'0')
	}
	return gid
}
