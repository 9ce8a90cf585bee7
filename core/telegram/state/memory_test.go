package state

import (
	"sync"
	"testing"
)

func TestGetReturnsEmptySessionWhenAbsent(t *testing.T) {
	mgr := NewMemoryManager()

	got := mgr.Get(42)
	if !got.Idle() {
		t.Fatalf("expected idle session, got %+v", got)
	}
	if got.Flow != FlowNone || got.Category != "" {
		t.Fatalf("expected zero session, got %+v", got)
	}
	if mgr.InProgress(42) {
		t.Fatal("absent user must not be in progress")
	}
}

func TestSetGetClear(t *testing.T) {
	mgr := NewMemoryManager()

	s := Session{Flow: FlowNeedHelp, Step: StepCategory}
	mgr.Set(7, s)

	if got := mgr.Get(7); got != s {
		t.Fatalf("Get = %+v, want %+v", got, s)
	}
	if !mgr.InProgress(7) {
		t.Fatal("expected InProgress after Set")
	}

	mgr.Clear(7)
	if got := mgr.Get(7); !got.Idle() {
		t.Fatalf("expected idle session after Clear, got %+v", got)
	}
	if mgr.InProgress(7) {
		t.Fatal("expected not in progress after Clear")
	}
}

// Clearing the registry mid-dialogue is an accepted failure mode: the
// in-flight dialogue resets to idle and the next message falls through to
// the default reply. This test pins that contract.
func TestExternalClearDropsDialogue(t *testing.T) {
	mgr := NewMemoryManager()

	mgr.Set(9, Session{Flow: FlowCanHelp, Step: StepDetails, Category: "walk"})
	mgr.Clear(9)

	got := mgr.Get(9)
	if !got.Idle() {
		t.Fatalf("expected idle session, got %+v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	mgr := NewMemoryManager()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			mgr.Set(id, Session{Flow: FlowNeedHelp, Step: StepCategory})
			_ = mgr.Get(id)
			_ = mgr.InProgress(id)
			mgr.Clear(id)
		}(int64(i % 4))
	}
	wg.Wait()
}
