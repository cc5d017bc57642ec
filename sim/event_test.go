package sim

import (
	"container/heap"
	"testing"
)

// TestEventQueue_TimestampOrdering tests that events are popped in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	eq := make(EventQueue, 0)
	heap.Push(&eq, &ResumeEvent{time: 100, seq: 0})
	heap.Push(&eq, &ResumeEvent{time: 50, seq: 1})
	heap.Push(&eq, &ResumeEvent{time: 150, seq: 2})

	for _, want := range []int64{50, 100, 150} {
		got := eq.PopNext()
		if got.Timestamp() != want {
			t.Errorf("event timestamp = %d, want %d", got.Timestamp(), want)
		}
	}
	if eq.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", eq.Len())
	}
}

// TestEventQueue_SameTimestamp_InsertionOrder tests the FIFO tie-break
func TestEventQueue_SameTimestamp_InsertionOrder(t *testing.T) {
	eq := make(EventQueue, 0)
	// Add in non-increasing seq order
	for _, seq := range []uint64{5, 3, 9, 1, 7} {
		heap.Push(&eq, &ResumeEvent{time: 10, seq: seq})
	}

	prev := uint64(0)
	for i := 0; i < 5; i++ {
		ev := eq.PopNext()
		if i > 0 && ev.Seq() <= prev {
			t.Errorf("event %d: seq %d not after %d", i, ev.Seq(), prev)
		}
		prev = ev.Seq()
	}
}

func TestEventQueue_PopEmpty_ReturnsNil(t *testing.T) {
	eq := make(EventQueue, 0)
	if eq.PopNext() != nil {
		t.Error("PopNext on empty queue should return nil")
	}
}

func TestResumeEvent_Execute_ResumesProcess(t *testing.T) {
	s := NewScheduler()
	p := &scriptedProcess{name: "p"}
	(&ResumeEvent{time: 0, Process: p}).Execute(s)
	if len(p.resumes) != 1 {
		t.Errorf("expected 1 resume, got %d", len(p.resumes))
	}
}
