// File: api/status.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable result vocabulary shared by the thread and mutex managers.

package api

// StatusCode is the result of every fallible thread or mutex operation.
// Values follow the C11 thrd_* enumeration order.
type StatusCode int

const (
	// StatusSuccess reports that the operation completed.
	StatusSuccess StatusCode = iota
	// StatusNoMem reports resource exhaustion while creating a unit.
	StatusNoMem
	// StatusTimedOut is reserved for timed operations and is never produced today.
	StatusTimedOut
	// StatusBusy reports that a non-blocking acquisition found the mutex held.
	StatusBusy
	// StatusError is the catch-all failure; details are in the caller's last error.
	StatusError
)

// String returns the C11 spelling of the status.
func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "thrd_success"
	case StatusNoMem:
		return "thrd_nomem"
	case StatusTimedOut:
		return "thrd_timedout"
	case StatusBusy:
		return "thrd_busy"
	case StatusError:
		return "thrd_error"
	default:
		return "thrd_unknown"
	}
}

// OK reports whether s is StatusSuccess.
func (s StatusCode) OK() bool { return s == StatusSuccess }
