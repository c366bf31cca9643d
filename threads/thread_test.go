// File: threads/thread_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threads

import (
	"testing"
	"time"

	"github.com/momentics/hioload-threads/api"
)

// joinWithin joins h or fails the test if the unit does not terminate in time.
func joinWithin(t *testing.T, h api.ThreadHandle, d time.Duration) (int, api.StatusCode) {
	t.Helper()
	type result struct {
		res int
		st  api.StatusCode
	}
	ch := make(chan result, 1)
	go func() {
		res, st := Join(h)
		ch <- result{res, st}
	}()
	select {
	case r := <-ch:
		return r.res, r.st
	case <-time.After(d):
		t.Fatalf("Timeout: unit %v did not terminate", h)
		return 0, api.StatusError
	}
}

func TestCreateJoin_ReturnsEntryResult(t *testing.T) {
	h, st := Create(func(arg any) int { return arg.(int) * 2 }, 21)
	if st != api.StatusSuccess {
		t.Fatalf("Expected Create to succeed, got %v", st)
	}
	if h.IsZero() {
		t.Fatalf("Expected non-zero handle")
	}
	res, st := joinWithin(t, h, 5*time.Second)
	if st != api.StatusSuccess {
		t.Fatalf("Expected Join to succeed, got %v", st)
	}
	if res != 42 {
		t.Errorf("Expected result 42, got %d", res)
	}
}

func TestCreate_NilEntryFails(t *testing.T) {
	ClearLastError()
	h, st := Create(nil, nil)
	if st != api.StatusError {
		t.Fatalf("Expected StatusError, got %v", st)
	}
	if !h.IsZero() {
		t.Errorf("Expected zero handle, got %v", h)
	}
	if LastError() == nil {
		t.Errorf("Expected last error to be set")
	}
}

func TestCreate_ArgumentVisibleToUnit(t *testing.T) {
	shared := make([]int, 0, 1)
	shared = append(shared, 5)
	h, st := Create(func(arg any) int { return arg.([]int)[0] }, shared)
	if st != api.StatusSuccess {
		t.Fatalf("Expected Create to succeed, got %v", st)
	}
	if res, _ := joinWithin(t, h, 5*time.Second); res != 5 {
		t.Errorf("Expected unit to observe 5, got %d", res)
	}
}

func TestExit_PublishesResultAndRunsDefers(t *testing.T) {
	deferred := make(chan struct{}, 1)
	h, st := Create(func(any) int {
		defer func() { deferred <- struct{}{} }()
		Exit(7)
		return 99
	}, nil)
	if st != api.StatusSuccess {
		t.Fatalf("Expected Create to succeed, got %v", st)
	}
	res, st := joinWithin(t, h, 5*time.Second)
	if st != api.StatusSuccess || res != 7 {
		t.Fatalf("Expected (7, success), got (%d, %v)", res, st)
	}
	select {
	case <-deferred:
	default:
		t.Errorf("Expected deferred call to run before termination")
	}
}

func TestJoin_SecondJoinFails(t *testing.T) {
	h, _ := Create(func(any) int { return 1 }, nil)
	if _, st := joinWithin(t, h, 5*time.Second); st != api.StatusSuccess {
		t.Fatalf("Expected first Join to succeed, got %v", st)
	}
	ClearLastError()
	if _, st := Join(h); st != api.StatusError {
		t.Errorf("Expected second Join to fail, got %v", st)
	}
	if LastError() == nil {
		t.Errorf("Expected last error after failed Join")
	}
}

func TestDetach_ThenJoinFails(t *testing.T) {
	release := make(chan struct{})
	h, _ := Create(func(any) int { <-release; return 0 }, nil)
	if st := Detach(h); st != api.StatusSuccess {
		t.Fatalf("Expected Detach to succeed, got %v", st)
	}
	if _, st := Join(h); st != api.StatusError {
		t.Errorf("Expected Join after Detach to fail, got %v", st)
	}
	if st := Detach(h); st != api.StatusError {
		t.Errorf("Expected second Detach to fail, got %v", st)
	}
	close(release)
}

func TestDetach_TerminatedUnitIsReclaimed(t *testing.T) {
	finished := make(chan struct{})
	h, _ := Create(func(any) int { close(finished); return 0 }, nil)
	<-finished
	if st := Detach(h); st != api.StatusSuccess {
		t.Fatalf("Expected Detach to succeed, got %v", st)
	}
	deadline := time.Now().Add(2 * time.Second)
	for listed(h) {
		if time.Now().After(deadline) {
			t.Fatalf("Expected detached unit %v to be reclaimed", h)
		}
		time.Sleep(time.Millisecond)
	}
	if _, st := Join(h); st != api.StatusError {
		t.Errorf("Expected Join on a reclaimed handle to fail, got %v", st)
	}
}

func listed(h api.ThreadHandle) bool {
	for _, u := range Units() {
		if u.Handle == h.Native() {
			return true
		}
	}
	return false
}

func TestJoin_SelfFails(t *testing.T) {
	h, _ := Create(func(any) int {
		_, st := Join(Current())
		return int(st)
	}, nil)
	res, st := joinWithin(t, h, 5*time.Second)
	if st != api.StatusSuccess {
		t.Fatalf("Expected outer Join to succeed, got %v", st)
	}
	if api.StatusCode(res) != api.StatusError {
		t.Errorf("Expected self-join to report StatusError, got %v", api.StatusCode(res))
	}
}

func TestEqual_CurrentWithinSameUnit(t *testing.T) {
	eq, st := Equal(Current(), Current())
	if st != api.StatusSuccess || !eq {
		t.Errorf("Expected Current to equal itself, got (%v, %v)", eq, st)
	}
}

func TestEqual_DistinctUnits(t *testing.T) {
	release := make(chan struct{})
	fn := func(arg any) int {
		self := <-arg.(chan api.ThreadHandle)
		eq, st := Equal(Current(), self)
		<-release
		if st != api.StatusSuccess || !eq {
			return 1
		}
		return 0
	}
	chA := make(chan api.ThreadHandle, 1)
	chB := make(chan api.ThreadHandle, 1)
	a, _ := Create(fn, chA)
	b, _ := Create(fn, chB)
	chA <- a
	chB <- b

	if eq, st := Equal(a, b); st != api.StatusSuccess || eq {
		t.Errorf("Expected distinct units to differ, got (%v, %v)", eq, st)
	}
	if eq, st := Equal(a, a); st != api.StatusSuccess || !eq {
		t.Errorf("Expected a unit to equal itself, got (%v, %v)", eq, st)
	}
	if eq, _ := Equal(Current(), a); eq {
		t.Errorf("Expected test goroutine to differ from unit")
	}
	close(release)
	for _, h := range []api.ThreadHandle{a, b} {
		if res, _ := joinWithin(t, h, 5*time.Second); res != 0 {
			t.Errorf("Expected unit to see Current equal to its own handle")
		}
	}
}

func TestEqual_UnresolvableHandleFails(t *testing.T) {
	h, _ := Create(func(any) int { return 0 }, nil)
	joinWithin(t, h, 5*time.Second)
	ClearLastError()
	eq, st := Equal(h, Current())
	if st != api.StatusError || eq {
		t.Errorf("Expected (false, StatusError) for a joined handle, got (%v, %v)", eq, st)
	}
	if LastError() == nil {
		t.Errorf("Expected last error after failed resolution")
	}
}

func TestYield_DoesNotDisturbCaller(t *testing.T) {
	h, _ := Create(func(any) int {
		for i := 0; i < 10; i++ {
			Yield()
		}
		return 3
	}, nil)
	if res, st := joinWithin(t, h, 5*time.Second); st != api.StatusSuccess || res != 3 {
		t.Errorf("Expected (3, success), got (%d, %v)", res, st)
	}
	Yield()
}

func TestCreatePinned_InvalidCPUFails(t *testing.T) {
	ClearLastError()
	h, st := CreatePinned(func(any) int { return 0 }, nil, 1<<20)
	if st != api.StatusError {
		t.Fatalf("Expected StatusError for impossible CPU, got %v", st)
	}
	if !h.IsZero() {
		t.Errorf("Expected zero handle, got %v", h)
	}
	if LastError() == nil {
		t.Errorf("Expected last error after failed pin")
	}
}

func TestCreatePinned_NegativeCPUBehavesLikeCreate(t *testing.T) {
	h, st := CreatePinned(func(any) int { return 4 }, nil, -1)
	if st != api.StatusSuccess {
		t.Fatalf("Expected CreatePinned(-1) to succeed, got %v", st)
	}
	if res, _ := joinWithin(t, h, 5*time.Second); res != 4 {
		t.Errorf("Expected result 4, got %d", res)
	}
}
