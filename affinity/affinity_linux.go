//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux-specific implementation for setting thread CPU affinity.
// sched_setaffinity(0, ...) applies to the calling thread only.

package affinity

import "golang.org/x/sys/unix"

// Process mask captured during package init, which runs on the main thread
// before any unit has been pinned.
var (
	allowed    unix.CPUSet
	allowedErr error
)

func init() {
	allowedErr = unix.SchedGetaffinity(0, &allowed)
}

// setAffinityPlatform sets thread affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 {
		return unix.EINVAL
	}
	if allowedErr == nil && !allowed.IsSet(cpuID) {
		return unix.EINVAL
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	return unix.SchedSetaffinity(0, &set)
}

func allowedCPUsPlatform() []int {
	if allowedErr != nil {
		return sequentialCPUs()
	}
	n := allowed.Count()
	out := make([]int, 0, n)
	for cpu := 0; len(out) < n; cpu++ {
		if allowed.IsSet(cpu) {
			out = append(out, cpu)
		}
	}
	return out
}
