//go:build windows
// +build windows

// File: internal/concurrency/platform_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Win32 backend primitives. Native codes are GetLastError values.

package concurrency

import "golang.org/x/sys/windows"

const platformName = "win32"

var (
	errInvalid    error = windows.ERROR_INVALID_PARAMETER
	errNoSuchUnit error = windows.ERROR_INVALID_HANDLE
	errDeadlock   error = windows.ERROR_POSSIBLE_DEADLOCK
	errBusy       error = windows.ERROR_BUSY
	errNotOwner   error = windows.ERROR_NOT_OWNER
	errNoMem      error = windows.ERROR_NOT_ENOUGH_MEMORY
	errAgain      error = windows.ERROR_MAX_THRDS_REACHED
	errTimedOut   error = windows.ERROR_TIMEOUT
)

var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procSwitchToThread = modkernel32.NewProc("SwitchToThread")
)

func osThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}

// platformYield calls SwitchToThread. A zero return only means no other thread
// was ready, which is not a failure; a missing export is.
func platformYield() error {
	if err := procSwitchToThread.Find(); err != nil {
		return err
	}
	procSwitchToThread.Call()
	return nil
}
