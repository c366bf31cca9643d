// File: threads/status.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threads

import (
	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/internal/concurrency"
)

var backend = concurrency.Default()

// fail records err in the caller's last error slot and returns its status.
func fail(err error) api.StatusCode {
	concurrency.SetLastError(err)
	return concurrency.StatusOf(err)
}

// LastError returns the native error code left by the calling unit's most
// recent failing call, or nil. The value is a syscall.Errno.
//
// Slots of units started by Create are released when the unit terminates. A
// goroutine the layer did not start keeps its slot until it calls
// ClearLastError, so short-lived goroutines that can fail should clear before
// returning.
func LastError() error {
	return concurrency.LastError()
}

// ClearLastError empties and releases the calling unit's last error slot.
func ClearLastError() {
	concurrency.ClearLastError()
}

// BackendName identifies the platform backend compiled into this binary.
func BackendName() string {
	return backend.Name()
}

// Stats returns counters describing thread and mutex activity.
func Stats() map[string]int64 {
	return backend.Stats()
}

// Units lists units that have not been reclaimed yet.
func Units() []api.UnitInfo {
	return backend.Units()
}
