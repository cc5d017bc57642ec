// sim/scheduler.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Scheduler is the single-threaded cooperative engine. It owns the simulated
// clock, the stations of one run and the time-ordered queue of pending
// resumptions. Only one process body executes at a time.
//
// Thread-safety: NOT thread-safe. A Scheduler belongs to one goroutine.
type Scheduler struct {
	clock    int64
	nextSeq  uint64
	events   EventQueue
	stations map[string]*Station
	// order of station creation, used for deterministic stats output
	stationOrder []string
	executed     int
}

// NewScheduler creates a scheduler at time 0 with one idle station per name.
// Duplicate names are a programming error and panic.
func NewScheduler(stationNames ...string) *Scheduler {
	s := &Scheduler{
		events:   make(EventQueue, 0),
		stations: make(map[string]*Station, len(stationNames)),
	}
	for _, name := range stationNames {
		if _, ok := s.stations[name]; ok {
			panic(fmt.Sprintf("NewScheduler: duplicate station %q", name))
		}
		s.stations[name] = NewStation(name)
		s.stationOrder = append(s.stationOrder, name)
	}
	return s
}

// Now returns the current simulated time.
func (s *Scheduler) Now() int64 {
	return s.clock
}

// Pending returns the number of scheduled but not yet executed events.
func (s *Scheduler) Pending() int {
	return s.events.Len()
}

// Executed returns the number of events processed so far.
func (s *Scheduler) Executed() int {
	return s.executed
}

// Station returns the named station. Unknown names panic.
func (s *Scheduler) Station(name string) *Station {
	st, ok := s.stations[name]
	if !ok {
		panic(fmt.Sprintf("unknown station %q", name))
	}
	return st
}

// StationStats returns per-station usage in creation order.
func (s *Scheduler) StationStats() []StationStats {
	out := make([]StationStats, 0, len(s.stationOrder))
	for _, name := range s.stationOrder {
		out = append(out, s.stations[name].Stats())
	}
	return out
}

// Start schedules the first resumption of p at the current time.
func (s *Scheduler) Start(p Process) {
	s.schedule(s.clock, p)
}

// Acquire requests exclusive occupancy of the named station for p.
// It returns true when the station was granted immediately; the caller keeps
// running. Otherwise p is queued FIFO, the caller must suspend, and p is
// resumed once the station is handed to it.
func (s *Scheduler) Acquire(station string, p Process) bool {
	st := s.Station(station)
	granted := st.request(p, s.clock)
	if !granted {
		logrus.Tracef("[tick %07d] %v waits for %s held by %v, queue %v", s.clock, p, station, st.Holder(), &st.waitQ)
	}
	return granted
}

// Release frees the named station held by p. If another process is queued it
// receives the station and is resumed at the current time, after any events
// already scheduled for this time.
func (s *Scheduler) Release(station string, p Process) {
	if next := s.Station(station).release(p, s.clock); next != nil {
		logrus.Tracef("[tick %07d] %s handed to %v", s.clock, station, next)
		s.schedule(s.clock, next)
	}
}

// AdvanceTime suspends p for d ticks. Negative durations and resumption
// times past the end of the clock panic.
func (s *Scheduler) AdvanceTime(p Process, d int64) {
	if d < 0 {
		panic(fmt.Sprintf("AdvanceTime: negative duration %d", d))
	}
	if s.clock > math.MaxInt64-d {
		panic(fmt.Sprintf("AdvanceTime: clock overflow at tick %d advancing %d", s.clock, d))
	}
	s.schedule(s.clock+d, p)
}

func (s *Scheduler) schedule(at int64, p Process) {
	if p == nil {
		panic("schedule: process must not be nil")
	}
	heap.Push(&s.events, &ResumeEvent{time: at, seq: s.nextSeq, Process: p})
	s.nextSeq++
}

// Run executes events in (time, insertion) order until the queue is empty.
// There is no horizon: every started process runs to completion.
func (s *Scheduler) Run() {
	for s.Pending() > 0 {
		// get the next event to be simulated
		ev := s.events.PopNext()
		// advance the clock
		s.clock = ev.Timestamp()
		logrus.Tracef("[tick %07d] Executing %T", s.clock, ev)
		ev.Execute(s)
		s.executed++
	}
	logrus.Debugf("[tick %07d] Simulation ended after %d events", s.clock, s.executed)
}
