// File: threads/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package threads is the public face of hioload-threads: the C11 thread and
// mutex interface expressed in Go.
//
// Thread Manager: Create, CreatePinned, Current, Detach, Equal, Exit, Join, Yield.
// Mutex Manager: MutexInit, MutexLock, MutexTryLock, MutexUnlock, MutexDestroy.
//
// Every fallible call returns an api.StatusCode. On failure the platform's
// native error code is stored in the calling unit's last error slot, read with
// LastError right after the failing call. Successful calls leave the slot alone.
//
// Preconditions the package does not enforce:
//   - a unit is joined or detached exactly once, and its handle is not used afterwards;
//   - a plain mutex is not locked again by its owner (the second lock never returns);
//   - a mutex is unlocked only by the unit holding it;
//   - a mutex is not destroyed while other units may still use it.
//
// Some of these are detected cheaply and reported as StatusError, but callers
// must not rely on it.
package threads
