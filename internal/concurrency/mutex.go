// File: internal/concurrency/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Native mutex. Ownership passes to waiters in arrival order, so all
// acquisitions of one mutex form a single total order. Recursive mutexes track
// their owner by goroutine identity; plain mutexes do not track an owner.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-threads/api"
)

type waiter struct {
	goid  uint64
	ready chan struct{} // closed when ownership has been handed over
}

type mutex struct {
	kind api.MutexKind

	mu        sync.Mutex
	locked    bool
	owner     uint64
	depth     int
	waiters   *queue.Queue // of *waiter
	destroyed bool
}

func newMutex(kind api.MutexKind) *mutex {
	return &mutex{kind: kind, waiters: queue.New()}
}

func (m *mutex) self() uint64 {
	if m.kind.IsRecursive() {
		return currentGoroutineID()
	}
	return 0
}

// lock reports whether the caller had to wait.
func (m *mutex) lock() (bool, error) {
	me := m.self()
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return false, errInvalid
	}
	if !m.locked {
		m.locked, m.owner, m.depth = true, me, 1
		m.mu.Unlock()
		return false, nil
	}
	if m.kind.IsRecursive() && m.owner == me {
		m.depth++
		m.mu.Unlock()
		return false, nil
	}
	w := &waiter{goid: me, ready: make(chan struct{})}
	m.waiters.Add(w)
	m.mu.Unlock()
	<-w.ready
	return true, nil
}

func (m *mutex) tryLock() error {
	me := m.self()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return errInvalid
	}
	if !m.locked {
		m.locked, m.owner, m.depth = true, me, 1
		return nil
	}
	if m.kind.IsRecursive() && m.owner == me {
		m.depth++
		return nil
	}
	return errBusy
}

func (m *mutex) unlock() error {
	me := m.self()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return errInvalid
	}
	if !m.locked || m.owner != me {
		return errNotOwner
	}
	if m.depth--; m.depth > 0 {
		return nil
	}
	if m.waiters.Length() > 0 {
		w := m.waiters.Remove().(*waiter)
		m.owner, m.depth = w.goid, 1
		close(w.ready)
		return nil
	}
	m.locked, m.owner = false, 0
	return nil
}

// destroy refuses to tear down a held or contended mutex, as
// pthread_mutex_destroy does.
func (m *mutex) destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return errInvalid
	}
	if m.locked || m.waiters.Length() > 0 {
		return errBusy
	}
	m.destroyed = true
	return nil
}

func (n *Native) lookupMutex(h uint64) (*mutex, bool) {
	v, ok := n.mutexes.Load(h)
	if !ok {
		return nil, false
	}
	return v.(*mutex), true
}

// MutexInit creates a mutex of the given kind. Only plain and recursive
// kinds exist; timed variants are rejected.
func (n *Native) MutexInit(kind api.MutexKind) (uint64, error) {
	if !kind.Valid() {
		Logger().Debug("unsupported mutex kind", zap.Stringer("kind", kind))
		return 0, errInvalid
	}
	h := n.nextMutex.Add(1)
	n.mutexes.Store(h, newMutex(kind))
	n.mutexesLive.Add(1)
	return h, nil
}

// MutexLock blocks until the caller owns the mutex.
func (n *Native) MutexLock(h uint64) error {
	m, ok := n.lookupMutex(h)
	if !ok {
		return errInvalid
	}
	waited, err := m.lock()
	if waited {
		n.contended.Add(1)
	}
	return err
}

// MutexTryLock acquires the mutex only if that needs no waiting.
func (n *Native) MutexTryLock(h uint64) error {
	m, ok := n.lookupMutex(h)
	if !ok {
		return errInvalid
	}
	err := m.tryLock()
	if err == errBusy {
		n.busy.Add(1)
	}
	return err
}

// MutexUnlock releases one level of ownership.
func (n *Native) MutexUnlock(h uint64) error {
	m, ok := n.lookupMutex(h)
	if !ok {
		return errInvalid
	}
	return m.unlock()
}

// MutexDestroy releases the mutex. The handle is invalid afterwards.
func (n *Native) MutexDestroy(h uint64) error {
	m, ok := n.lookupMutex(h)
	if !ok {
		return errInvalid
	}
	if err := m.destroy(); err != nil {
		Logger().Debug("mutex destroy refused", zap.Uint64("handle", h), zap.Error(err))
		return err
	}
	n.mutexes.Delete(h)
	n.mutexesLive.Add(-1)
	return nil
}
