//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows-specific implementation for setting thread CPU affinity.
// Only the first processor group (64 CPUs) is addressable.

package affinity

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask  = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread       = modkernel32.NewProc("GetCurrentThread")
	procGetProcessAffinityMask = modkernel32.NewProc("GetProcessAffinityMask")
)

var allowedMask, allowedOK = processAffinityMask()

func processAffinityMask() (uintptr, bool) {
	var proc, sys uintptr
	ret, _, _ := procGetProcessAffinityMask.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&proc)),
		uintptr(unsafe.Pointer(&sys)))
	return proc, ret != 0
}

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 || cpuID >= 64 {
		return windows.ERROR_INVALID_PARAMETER
	}
	mask := uintptr(1) << uint(cpuID)
	if allowedOK && allowedMask&mask == 0 {
		return windows.ERROR_INVALID_PARAMETER
	}
	hThread, _, _ := procGetCurrentThread.Call()
	ret, _, err := procSetThreadAffinityMask.Call(hThread, mask)
	if ret == 0 {
		return err
	}
	return nil
}

func allowedCPUsPlatform() []int {
	if !allowedOK {
		return sequentialCPUs()
	}
	var out []int
	for cpu := 0; cpu < 64; cpu++ {
		if allowedMask&(uintptr(1)<<uint(cpu)) != 0 {
			out = append(out, cpu)
		}
	}
	return out
}
