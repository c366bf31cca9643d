// File: internal/concurrency/lasterror.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-unit last error slot, the errno of this layer. Each goroutine sees only
// what its own failing calls stored; there is no cross-unit visibility.

package concurrency

import "sync"

var lastErrors sync.Map // goroutine id -> error

// SetLastError records err as the calling unit's last error. A nil err is ignored:
// successful calls leave the slot untouched, as errno does.
func SetLastError(err error) {
	if err == nil {
		return
	}
	lastErrors.Store(currentGoroutineID(), err)
}

// LastError returns the native error stored by the calling unit's most recent
// failing call, or nil.
func LastError() error {
	v, ok := lastErrors.Load(currentGoroutineID())
	if !ok {
		return nil
	}
	return v.(error)
}

// ClearLastError releases the calling unit's slot. Foreign goroutines have no
// termination hook, so this is the only way their slot is freed.
func ClearLastError() {
	lastErrors.Delete(currentGoroutineID())
}

// dropLastError releases the slot of a terminated unit.
func dropLastError(goid uint64) {
	lastErrors.Delete(goid)
}
