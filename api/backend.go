// File: api/backend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backend is the contract every platform implementation satisfies. Exactly one
// implementation is compiled per target; callers hold the concrete type and the
// interface only pins the method set.

package api

// Backend exposes the native thread and mutex primitives. Every error it
// returns is the platform's native code (a syscall.Errno).
type Backend interface {
	// Name identifies the compiled platform backend.
	Name() string

	ThreadCreate(fn func() int, cpu int) (uint64, error)
	ThreadCurrent() uint64
	ThreadDetach(h uint64) error
	ThreadID(h uint64) (uint64, error)
	ThreadExit(code int)
	ThreadJoin(h uint64) (int, error)
	ThreadYield() error

	MutexInit(kind MutexKind) (uint64, error)
	MutexLock(h uint64) error
	MutexTryLock(h uint64) error
	MutexUnlock(h uint64) error
	MutexDestroy(h uint64) error

	// Stats returns counters describing backend activity.
	Stats() map[string]int64
}
