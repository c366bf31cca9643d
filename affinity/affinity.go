// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import "runtime"

// SetAffinity pins the calling OS thread to a logical CPU. The caller must have
// wired its goroutine to the thread with runtime.LockOSThread beforehand,
// otherwise the pin applies to whatever thread happens to run it.
// Failures are returned as the platform's native error code.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// NumCPUs returns the number of logical CPUs usable as pin targets.
// Indexes are not contiguous inside a restricted cpuset; use AllowedCPUs to
// pick targets.
func NumCPUs() int {
	return runtime.NumCPU()
}

// AllowedCPUs lists, in ascending order, the CPU indexes the process may run on
// as observed at startup. SetAffinity accepts exactly these.
func AllowedCPUs() []int {
	return allowedCPUsPlatform()
}

// sequentialCPUs is the fallback when the platform mask cannot be read.
func sequentialCPUs() []int {
	out := make([]int, runtime.NumCPU())
	for i := range out {
		out[i] = i
	}
	return out
}
