//go:build linux
// +build linux

// File: internal/concurrency/platform_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// POSIX backend primitives for Linux. Native codes are errno values as
// pthread_* would return them.

package concurrency

import "golang.org/x/sys/unix"

const platformName = "posix-linux"

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

// osThreadID returns the kernel id of the calling thread.
func osThreadID() uint64 {
	return uint64(unix.Gettid())
}

// platformYield gives up the calling thread's quantum via sched_yield(2).
func platformYield() error {
	if _, _, e := unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0); e != 0 {
		return e
	}
	return nil
}
