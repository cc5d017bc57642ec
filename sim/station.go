package sim

import "fmt"

// Station is a single-capacity resource with a FIFO wait queue.
// Stations are created per simulation run and discarded with it.
type Station struct {
	Name string

	holder Process
	waitQ  WaitQueue

	// bookkeeping for StationStats
	busySince   int64
	busyTime    int64
	served      int
	maxQueueLen int
}

// StationStats summarizes how a station was used during one run.
type StationStats struct {
	Name        string `json:"name"`
	Served      int    `json:"served"`
	BusyTime    int64  `json:"busy_time"`
	MaxQueueLen int    `json:"max_queue_len"`
}

// NewStation creates an idle station.
func NewStation(name string) *Station {
	return &Station{Name: name}
}

// Busy reports whether the station currently has a holder.
func (s *Station) Busy() bool {
	return s.holder != nil
}

// Holder returns the process occupying the station, or nil when idle.
func (s *Station) Holder() Process {
	return s.holder
}

// QueueLen returns the number of processes waiting for the station.
func (s *Station) QueueLen() int {
	return s.waitQ.Len()
}

// request grants the station to p when idle and reports true; otherwise p is
// queued behind earlier requesters and false is returned.
func (s *Station) request(p Process, now int64) bool {
	if s.holder == p {
		panic(fmt.Sprintf("station %s: %v requested a station it already holds", s.Name, p))
	}
	if !s.Busy() {
		s.grant(p, now)
		return true
	}
	s.waitQ.Enqueue(p)
	s.maxQueueLen = max(s.maxQueueLen, s.QueueLen())
	return false
}

// release frees the station held by p and hands it to the next waiter, which
// is returned (nil if nobody was waiting).
func (s *Station) release(p Process, now int64) Process {
	if s.holder != p {
		panic(fmt.Sprintf("station %s: %v released a station held by %v", s.Name, p, s.holder))
	}
	s.busyTime += now - s.busySince
	s.holder = nil
	next := s.waitQ.Dequeue()
	if next != nil {
		s.grant(next, now)
	}
	return next
}

func (s *Station) grant(p Process, now int64) {
	s.holder = p
	s.busySince = now
	s.served++
}

// Stats returns the usage counters accumulated so far.
func (s *Station) Stats() StationStats {
	return StationStats{
		Name:        s.Name,
		Served:      s.served,
		BusyTime:    s.busyTime,
		MaxQueueLen: s.maxQueueLen,
	}
}
