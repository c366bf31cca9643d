// File: internal/concurrency/unit_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/momentics/hioload-threads/api"
)

func TestNative_CreateJoin(t *testing.T) {
	n := NewNative()
	h, err := n.ThreadCreate(func() int { return 11 }, -1)
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}
	res, err := n.ThreadJoin(h)
	if err != nil || res != 11 {
		t.Fatalf("Expected (11, nil), got (%d, %v)", res, err)
	}
	if _, err := n.ThreadJoin(h); err != errNoSuchUnit {
		t.Errorf("Expected errNoSuchUnit on rejoin, got %v", err)
	}
	stats := n.Stats()
	if stats["threads_created"] != 1 || stats["threads_joined"] != 1 || stats["threads_live"] != 0 {
		t.Errorf("Unexpected stats %v", stats)
	}
}

func TestNative_UnitRegisteredBeforeCreateReturns(t *testing.T) {
	n := NewNative()
	release := make(chan struct{})
	h, _ := n.ThreadCreate(func() int { <-release; return 0 }, -1)
	id, err := n.ThreadID(h)
	if err != nil || id == 0 {
		t.Fatalf("Expected handle to resolve at once, got (%d, %v)", id, err)
	}
	units := n.Units()
	if len(units) != 1 || units[0].Handle != h || units[0].State != "joinable" {
		t.Errorf("Unexpected units %+v", units)
	}
	close(release)
	n.ThreadJoin(h)
}

func TestNative_CurrentInsideUnit(t *testing.T) {
	n := NewNative()
	self := make(chan uint64, 1)
	h, _ := n.ThreadCreate(func() int {
		self <- n.ThreadCurrent()
		return 0
	}, -1)
	if got := <-self; got != h {
		t.Errorf("Expected ThreadCurrent %d inside unit, got %d", h, got)
	}
	n.ThreadJoin(h)
}

func TestNative_PseudoHandles(t *testing.T) {
	n := NewNative()
	cur := n.ThreadCurrent()
	if cur&pseudoBit == 0 {
		t.Fatalf("Expected pseudo handle for a foreign goroutine, got %#x", cur)
	}
	id, err := n.ThreadID(cur)
	if err != nil || id != currentGoroutineID() {
		t.Errorf("Expected pseudo handle to resolve to own gid, got (%d, %v)", id, err)
	}
	if _, err := n.ThreadJoin(cur); err != errDeadlock {
		t.Errorf("Expected errDeadlock joining self, got %v", err)
	}
	if err := n.ThreadDetach(cur); err != errNoSuchUnit {
		t.Errorf("Expected errNoSuchUnit detaching a foreign goroutine, got %v", err)
	}
	if _, err := n.ThreadID(0); err != errNoSuchUnit {
		t.Errorf("Expected errNoSuchUnit for zero handle, got %v", err)
	}
	if _, err := n.ThreadID(pseudoBit); err != errNoSuchUnit {
		t.Errorf("Expected errNoSuchUnit for bare pseudo bit, got %v", err)
	}
}

func TestNative_ExactlyOneOfJoinOrDetach(t *testing.T) {
	for round := 0; round < 50; round++ {
		n := NewNative()
		h, _ := n.ThreadCreate(func() int { return 0 }, -1)
		results := make(chan error, 2)
		go func() { _, err := n.ThreadJoin(h); results <- err }()
		go func() { results <- n.ThreadDetach(h) }()
		wins := 0
		for i := 0; i < 2; i++ {
			select {
			case err := <-results:
				if err == nil {
					wins++
				}
			case <-time.After(5 * time.Second):
				t.Fatalf("Timeout: join/detach race did not settle")
			}
		}
		if wins != 1 {
			t.Fatalf("round %d: expected exactly one of join/detach to succeed, got %d", round, wins)
		}
		deadline := time.Now().Add(2 * time.Second)
		for len(n.Units()) != 0 {
			if time.Now().After(deadline) {
				t.Fatalf("round %d: unit never reclaimed: %+v", round, n.Units())
			}
			time.Sleep(time.Millisecond)
		}
	}
}

func TestNative_ExitFromUnit(t *testing.T) {
	n := NewNative()
	h, _ := n.ThreadCreate(func() int {
		n.ThreadExit(-3)
		return 0
	}, -1)
	if res, err := n.ThreadJoin(h); err != nil || res != -3 {
		t.Errorf("Expected (-3, nil), got (%d, %v)", res, err)
	}
}

func TestNative_MaxThreads(t *testing.T) {
	n := NewNative()
	n.SetMaxThreads(1)
	release := make(chan struct{})
	h, err := n.ThreadCreate(func() int { <-release; return 0 }, -1)
	if err != nil {
		t.Fatalf("Expected first create to succeed, got %v", err)
	}
	if _, err := n.ThreadCreate(func() int { return 0 }, -1); err != errAgain {
		t.Errorf("Expected errAgain at the cap, got %v", err)
	}
	close(release)
	n.ThreadJoin(h)
	h, err = n.ThreadCreate(func() int { return 0 }, -1)
	if err != nil {
		t.Fatalf("Expected create below the cap to succeed, got %v", err)
	}
	n.ThreadJoin(h)
	n.SetMaxThreads(-5)
	if n.MaxThreads() != 0 {
		t.Errorf("Expected negative cap to mean unlimited, got %d", n.MaxThreads())
	}
}

func TestNative_LastErrorDroppedOnExit(t *testing.T) {
	n := NewNative()
	gid := make(chan uint64, 1)
	h, _ := n.ThreadCreate(func() int {
		SetLastError(errInvalid)
		gid <- currentGoroutineID()
		return 0
	}, -1)
	n.ThreadJoin(h)
	if _, ok := lastErrors.Load(<-gid); ok {
		t.Errorf("Expected last error slot to be released with the unit")
	}
}

func TestLastError_ForeignSlotReleasedByClear(t *testing.T) {
	gid := make(chan uint64, 1)
	kept := make(chan uint64, 1)
	go func() {
		SetLastError(errInvalid)
		ClearLastError()
		gid <- currentGoroutineID()
	}()
	go func() {
		SetLastError(errInvalid)
		kept <- currentGoroutineID()
	}()

	if _, ok := lastErrors.Load(<-gid); ok {
		t.Errorf("Expected cleared slot to be released")
	}
	k := <-kept
	if _, ok := lastErrors.Load(k); !ok {
		t.Errorf("Expected uncleared slot of a foreign goroutine to persist")
	}
	dropLastError(k)
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want api.StatusCode
	}{
		{nil, api.StatusSuccess},
		{errBusy, api.StatusBusy},
		{fmt.Errorf("wrapped: %w", errBusy), api.StatusBusy},
		{errNoMem, api.StatusNoMem},
		{errTimedOut, api.StatusTimedOut},
		{errInvalid, api.StatusError},
		{errAgain, api.StatusError},
		{errors.New("other"), api.StatusError},
	}
	for _, c := range cases {
		if got := StatusOf(c.err); got != c.want {
			t.Errorf("StatusOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestLastError_SetClear(t *testing.T) {
	ClearLastError()
	SetLastError(nil)
	if LastError() != nil {
		t.Fatalf("Expected nil error to be ignored")
	}
	SetLastError(errBusy)
	if LastError() != errBusy {
		t.Errorf("Expected errBusy, got %v", LastError())
	}
	ClearLastError()
	if LastError() != nil {
		t.Errorf("Expected cleared slot")
	}
}
