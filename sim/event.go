package sim

import "container/heap"

// Process is a unit of sequential work multiplexed onto the scheduler.
// Resume runs the process body up to its next suspension point: an Acquire
// that could not be granted, an AdvanceTime, or completion.
type Process interface {
	Resume(s *Scheduler)
}

// Event defines the interface for all simulation events.
// Each event carries a Timestamp (in ticks), an insertion sequence used as the
// tie-break between equal timestamps, and an Execute method that advances
// simulation state when invoked.
type Event interface {
	Timestamp() int64
	Seq() uint64
	Execute(*Scheduler)
}

// ResumeEvent resumes a suspended process at a scheduled time.
type ResumeEvent struct {
	time    int64   // Simulation time of resumption (in ticks)
	seq     uint64  // Insertion order within the owning scheduler
	Process Process // The process to resume
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() int64 {
	return e.time
}

// Seq returns the insertion order of the ResumeEvent.
func (e *ResumeEvent) Seq() uint64 {
	return e.seq
}

// Execute hands control to the process until its next suspension point.
func (e *ResumeEvent) Execute(s *Scheduler) {
	e.Process.Resume(s)
}

// EventQueue implements heap.Interface and orders events by timestamp, then
// by insertion order, so equal-time events run first-scheduled first.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Timestamp() != eq[j].Timestamp() {
		return eq[i].Timestamp() < eq[j].Timestamp()
	}
	return eq[i].Seq() < eq[j].Seq()
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// PopNext removes and returns the earliest event, or nil when empty.
func (eq *EventQueue) PopNext() Event {
	if eq.Len() == 0 {
		return nil
	}
	return heap.Pop(eq).(Event)
}
