// File: threads/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex Manager.

package threads

import (
	"github.com/momentics/hioload-threads/api"
)

// MutexInit creates a mutex. kind is api.MutexPlain or
// api.MutexPlain|api.MutexRecursive; anything involving api.MutexTimed is
// rejected with StatusError and a zero handle.
func MutexInit(kind api.MutexKind) (api.MutexHandle, api.StatusCode) {
	h, err := backend.MutexInit(kind)
	if err != nil {
		return api.MutexHandle{}, fail(err)
	}
	return api.NewMutexHandle(h), api.StatusSuccess
}

// MutexLock blocks until the caller owns m. A prior MutexUnlock on m happens
// before a MutexLock that acquires it, and all acquisitions of m are totally
// ordered. The owner of a recursive mutex may lock it again.
func MutexLock(m api.MutexHandle) api.StatusCode {
	if err := backend.MutexLock(m.Native()); err != nil {
		return fail(err)
	}
	return api.StatusSuccess
}

// MutexTryLock acquires m without waiting. It returns StatusBusy when another
// unit holds m.
func MutexTryLock(m api.MutexHandle) api.StatusCode {
	if err := backend.MutexTryLock(m.Native()); err != nil {
		return fail(err)
	}
	return api.StatusSuccess
}

// MutexUnlock releases one level of the caller's ownership of m.
func MutexUnlock(m api.MutexHandle) api.StatusCode {
	if err := backend.MutexUnlock(m.Native()); err != nil {
		return fail(err)
	}
	return api.StatusSuccess
}

// MutexDestroy releases m. Nothing is returned; a refusal (m still held or
// waited on) or an unknown handle is only visible through LastError.
func MutexDestroy(m api.MutexHandle) {
	if err := backend.MutexDestroy(m.Native()); err != nil {
		fail(err)
	}
}
