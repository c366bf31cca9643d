//go:build unix && !linux

// File: internal/concurrency/platform_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// POSIX backend primitives for the BSDs and Darwin. There is no portable
// kernel thread id without cgo, so osThreadID reports 0.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

const platformName = "posix"

var (
	errInvalid    error = unix.EINVAL
	errNoSuchUnit error = unix.ESRCH
	errDeadlock   error = unix.EDEADLK
	errBusy       error = unix.EBUSY
	errNotOwner   error = unix.EPERM
	errNoMem      error = unix.ENOMEM
	errAgain      error = unix.EAGAIN
	errTimedOut   error = unix.ETIMEDOUT
)

func osThreadID() uint64 { return 0 }

func platformYield() error {
	runtime.Gosched()
	return nil
}
