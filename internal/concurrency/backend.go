// File: internal/concurrency/backend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Native is the platform backend compiled for this target. Platform-specific
// primitives (error codes, thread ids, yielding) come from exactly one
// platform_*.go file selected by build tags; there is no runtime dispatch.

package concurrency

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-threads/api"
)

var _ api.Backend = (*Native)(nil)

// Native owns every unit and mutex created through it. Handles are keys into
// its tables and are never reused.
type Native struct {
	units   sync.Map // handle -> *unit
	byGoid  sync.Map // goroutine id -> *unit, live units only
	mutexes sync.Map // handle -> *mutex

	nextThread atomic.Uint64
	nextMutex  atomic.Uint64
	maxThreads atomic.Int64 // 0 means unlimited
	live       atomic.Int64

	// statistics
	created     atomic.Int64
	joined      atomic.Int64
	detached    atomic.Int64
	reclaimed   atomic.Int64
	mutexesLive atomic.Int64
	contended   atomic.Int64
	busy        atomic.Int64
}

// NewNative returns an empty backend.
func NewNative() *Native {
	return &Native{}
}

var defaultNative = NewNative()

// Default returns the process-wide backend used by the threads package.
func Default() *Native {
	return defaultNative
}

// Name identifies the compiled platform backend.
func (n *Native) Name() string {
	return platformName
}

// SetMaxThreads caps the number of live units; creates beyond the cap fail
// with the platform's "try again" code. n <= 0 removes the cap.
func (n *Native) SetMaxThreads(limit int) {
	if limit < 0 {
		limit = 0
	}
	n.maxThreads.Store(int64(limit))
}

// MaxThreads returns the current cap, 0 if unlimited.
func (n *Native) MaxThreads() int {
	return int(n.maxThreads.Load())
}

// Stats returns basic backend metrics.
func (n *Native) Stats() map[string]int64 {
	return map[string]int64{
		"threads_created":   n.created.Load(),
		"threads_joined":    n.joined.Load(),
		"threads_detached":  n.detached.Load(),
		"threads_reclaimed": n.reclaimed.Load(),
		"threads_live":      n.live.Load(),
		"mutexes_live":      n.mutexesLive.Load(),
		"locks_contended":   n.contended.Load(),
		"trylocks_busy":     n.busy.Load(),
	}
}

// Units lists the units still held in the table, ordered by handle.
func (n *Native) Units() []api.UnitInfo {
	var out []api.UnitInfo
	n.units.Range(func(_, v any) bool {
		out = append(out, v.(*unit).info())
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}
