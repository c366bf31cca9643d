// File: threads/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread Manager.

package threads

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/internal/concurrency"
)

// Create starts a new unit running fn(arg). The unit's result code is fn's
// return value, or the code passed to Exit. The handle is valid as soon as
// Create returns StatusSuccess; everything the caller did before Create is
// visible to fn.
//
// StatusNoMem is never returned: the Go runtime aborts on allocation failure.
func Create(fn api.StartFunc, arg any) (api.ThreadHandle, api.StatusCode) {
	return create(fn, arg, -1)
}

// CreatePinned is Create with the unit's OS thread pinned to cpu before fn
// runs. A negative cpu means no pinning. A failed pin fails the create.
func CreatePinned(fn api.StartFunc, arg any, cpu int) (api.ThreadHandle, api.StatusCode) {
	return create(fn, arg, cpu)
}

func create(fn api.StartFunc, arg any, cpu int) (api.ThreadHandle, api.StatusCode) {
	var entry func() int
	if fn != nil {
		entry = func() int { return fn(arg) }
	}
	h, err := backend.ThreadCreate(entry, cpu)
	if err != nil {
		return api.ThreadHandle{}, fail(err)
	}
	return api.NewThreadHandle(h), api.StatusSuccess
}

// Current returns a handle to the calling unit. For goroutines not started by
// Create the handle supports Equal only.
func Current() api.ThreadHandle {
	return api.NewThreadHandle(backend.ThreadCurrent())
}

// Detach lets the unit's resources be reclaimed when it terminates. Join must
// not be called on h afterwards.
func Detach(h api.ThreadHandle) api.StatusCode {
	if err := backend.ThreadDetach(h.Native()); err != nil {
		return fail(err)
	}
	return api.StatusSuccess
}

// Equal reports whether lhs and rhs refer to the same unit. Both handles are
// resolved to the unit's identity first; a handle that no longer resolves
// yields (false, StatusError).
func Equal(lhs, rhs api.ThreadHandle) (bool, api.StatusCode) {
	l, err := backend.ThreadID(lhs.Native())
	if err != nil {
		return false, fail(err)
	}
	r, err := backend.ThreadID(rhs.Native())
	if err != nil {
		return false, fail(err)
	}
	return l == r, api.StatusSuccess
}

// Exit terminates the calling unit with result code res. Deferred calls of the
// unit run first; a pending Join returns res. Exit does not return.
func Exit(res int) {
	backend.ThreadExit(res)
}

// Join blocks until the unit terminates and returns its result code. h must
// not have been joined or detached before.
func Join(h api.ThreadHandle) (int, api.StatusCode) {
	res, err := backend.ThreadJoin(h.Native())
	if err != nil {
		return 0, fail(err)
	}
	return res, api.StatusSuccess
}

// Yield hints the scheduler to run other threads. Failures cannot be reported
// through the return value; they only reach LastError.
func Yield() {
	if err := backend.ThreadYield(); err != nil {
		concurrency.SetLastError(err)
		concurrency.Logger().Debug("yield failed", zap.Error(err))
	}
}
