// File: api/threads.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handle and kind definitions for execution units and mutexes.
// Handles are non-owning capabilities: the backend owns the resource until an
// explicit join, detach or destroy.

package api

import "fmt"

// StartFunc is the entry point of a unit. Its return value becomes the unit's
// result code, observed by Join.
type StartFunc func(arg any) int

// ThreadHandle refers to an execution unit. The zero value refers to nothing.
type ThreadHandle struct {
	native uint64
}

// NewThreadHandle wraps a backend native value.
func NewThreadHandle(native uint64) ThreadHandle { return ThreadHandle{native: native} }

// Native returns the backend value carried by the handle.
func (h ThreadHandle) Native() uint64 { return h.native }

// IsZero reports whether h was never produced by a backend.
func (h ThreadHandle) IsZero() bool { return h.native == 0 }

func (h ThreadHandle) String() string { return fmt.Sprintf("thrd(%#x)", h.native) }

// MutexHandle refers to a backend mutex. The zero value refers to nothing.
type MutexHandle struct {
	native uint64
}

// NewMutexHandle wraps a backend native value.
func NewMutexHandle(native uint64) MutexHandle { return MutexHandle{native: native} }

// Native returns the backend value carried by the handle.
func (h MutexHandle) Native() uint64 { return h.native }

// IsZero reports whether h was never produced by a backend.
func (h MutexHandle) IsZero() bool { return h.native == 0 }

func (h MutexHandle) String() string { return fmt.Sprintf("mtx(%#x)", h.native) }

// MutexKind selects mutex behaviour at init time. It is a bit set mirroring
// the C11 mtx_* constants; only Plain and Plain|Recursive are accepted.
type MutexKind int

const (
	MutexPlain     MutexKind = 0
	MutexRecursive MutexKind = 1
	MutexTimed     MutexKind = 2
)

// Valid reports whether k is a supported combination.
func (k MutexKind) Valid() bool {
	return k == MutexPlain || k == MutexPlain|MutexRecursive
}

// IsRecursive reports whether the recursive bit is set.
func (k MutexKind) IsRecursive() bool { return k&MutexRecursive != 0 }

func (k MutexKind) String() string {
	switch k {
	case MutexPlain:
		return "plain"
	case MutexRecursive:
		return "recursive"
	case MutexTimed:
		return "timed"
	case MutexTimed | MutexRecursive:
		return "timed|recursive"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseMutexKind maps a configuration string onto a kind.
func ParseMutexKind(s string) (MutexKind, error) {
	switch s {
	case "plain", "":
		return MutexPlain, nil
	case "recursive":
		return MutexRecursive, nil
	case "timed":
		return MutexTimed, nil
	case "timed|recursive", "recursive|timed":
		return MutexTimed | MutexRecursive, nil
	}
	return 0, NewError(ErrCodeInvalidArgument, "unknown mutex kind").WithContext("kind", s).WithCause(ErrInvalidArgument)
}

// UnitInfo describes a unit still tracked by a backend.
type UnitInfo struct {
	Handle   uint64 `json:"handle" yaml:"handle"`
	GID      uint64 `json:"gid" yaml:"gid"`
	OSThread uint64 `json:"os_thread" yaml:"os_thread"`
	State    string `json:"state" yaml:"state"`
	Done     bool   `json:"done" yaml:"done"`
}
