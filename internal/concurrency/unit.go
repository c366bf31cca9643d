// File: internal/concurrency/unit.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Execution units. A unit is a goroutine wired to its own OS thread for its
// whole life; the thread is never released back to the runtime, so it exits
// together with the unit.

package concurrency

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/affinity"
	"github.com/momentics/hioload-threads/api"
)

// pseudoBit tags handles that Current returns for goroutines the backend did
// not create. Such handles resolve to an identity but cannot be joined or detached.
const pseudoBit = uint64(1) << 63

// Unit states. A unit leaves unitJoinable exactly once.
const (
	unitJoinable int32 = iota
	unitDetached
	unitJoining
)

type unit struct {
	handle uint64
	goid   uint64
	tid    uint64
	state  atomic.Int32
	result int
	done   chan struct{} // closed on termination
}

func (u *unit) terminated() bool {
	select {
	case <-u.done:
		return true
	default:
		return false
	}
}

// ThreadCreate starts fn on a new unit and waits until the unit is registered,
// so the returned handle is usable at once. cpu >= 0 pins the unit's thread.
func (n *Native) ThreadCreate(fn func() int, cpu int) (uint64, error) {
	if fn == nil {
		return 0, errInvalid
	}
	live := n.live.Add(1)
	if limit := n.maxThreads.Load(); limit > 0 && live > limit {
		n.live.Add(-1)
		Logger().Debug("thread limit reached", zap.Int64("limit", limit))
		return 0, errAgain
	}

	u := &unit{handle: n.nextThread.Add(1), done: make(chan struct{})}
	started := make(chan error, 1)
	go n.run(u, fn, cpu, started)
	if err := <-started; err != nil {
		Logger().Debug("thread start failed", zap.Int("cpu", cpu), zap.Error(err))
		return 0, err
	}
	n.created.Add(1)
	return u.handle, nil
}

func (n *Native) run(u *unit, fn func() int, cpu int, started chan<- error) {
	runtime.LockOSThread()
	if cpu >= 0 {
		if err := affinity.SetAffinity(cpu); err != nil {
			n.live.Add(-1)
			started <- err
			return
		}
	}
	u.goid = currentGoroutineID()
	u.tid = osThreadID()
	n.units.Store(u.handle, u)
	n.byGoid.Store(u.goid, u)
	started <- nil

	defer n.finish(u)
	u.result = fn()
}

// finish runs on the unit's own goroutine, after a return or ThreadExit.
func (n *Native) finish(u *unit) {
	n.byGoid.Delete(u.goid)
	dropLastError(u.goid)
	n.live.Add(-1)
	close(u.done)
	if u.state.Load() == unitDetached {
		n.reclaim(u)
	}
}

func (n *Native) reclaim(u *unit) {
	if _, ok := n.units.LoadAndDelete(u.handle); ok {
		n.reclaimed.Add(1)
	}
}

func (n *Native) lookupUnit(h uint64) (*unit, bool) {
	if h == 0 || h&pseudoBit != 0 {
		return nil, false
	}
	v, ok := n.units.Load(h)
	if !ok {
		return nil, false
	}
	return v.(*unit), true
}

// ThreadCurrent returns the caller's handle: its table handle when the caller
// is a unit, a pseudo handle otherwise.
func (n *Native) ThreadCurrent() uint64 {
	goid := currentGoroutineID()
	if v, ok := n.byGoid.Load(goid); ok {
		return v.(*unit).handle
	}
	return goid | pseudoBit
}

// ThreadID resolves a handle to the identity of the goroutine behind it.
func (n *Native) ThreadID(h uint64) (uint64, error) {
	if h != pseudoBit && h&pseudoBit != 0 {
		return h &^ pseudoBit, nil
	}
	u, ok := n.lookupUnit(h)
	if !ok {
		return 0, errNoSuchUnit
	}
	return u.goid, nil
}

// ThreadDetach marks the unit for reclamation at termination, or reclaims it
// now if it already terminated.
func (n *Native) ThreadDetach(h uint64) error {
	u, ok := n.lookupUnit(h)
	if !ok {
		return errNoSuchUnit
	}
	if !u.state.CompareAndSwap(unitJoinable, unitDetached) {
		return errInvalid
	}
	n.detached.Add(1)
	if u.terminated() {
		n.reclaim(u)
	}
	return nil
}

// ThreadJoin waits for the unit to terminate and returns its result code.
func (n *Native) ThreadJoin(h uint64) (int, error) {
	self := currentGoroutineID()
	if h&pseudoBit != 0 && h&^pseudoBit == self {
		return 0, errDeadlock
	}
	u, ok := n.lookupUnit(h)
	if !ok {
		return 0, errNoSuchUnit
	}
	if u.goid == self {
		return 0, errDeadlock
	}
	if !u.state.CompareAndSwap(unitJoinable, unitJoining) {
		return 0, errInvalid
	}
	<-u.done
	n.units.Delete(h)
	n.joined.Add(1)
	return u.result, nil
}

// ThreadExit publishes code as the caller's result and terminates the caller.
// Deferred calls run; the wired OS thread exits with the goroutine.
func (n *Native) ThreadExit(code int) {
	if v, ok := n.byGoid.Load(currentGoroutineID()); ok {
		v.(*unit).result = code
	}
	runtime.Goexit()
}

// ThreadYield offers the rest of the caller's quantum to other threads.
func (n *Native) ThreadYield() error {
	return platformYield()
}

func (u *unit) info() api.UnitInfo {
	state := "joinable"
	switch u.state.Load() {
	case unitDetached:
		state = "detached"
	case unitJoining:
		state = "joining"
	}
	return api.UnitInfo{Handle: u.handle, GID: u.goid, OSThread: u.tid, State: state, Done: u.terminated()}
}
