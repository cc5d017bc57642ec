package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// RouteStep is one (station, duration) pair of a job's route.
type RouteStep struct {
	Station  string
	Duration int64
}

// Route is the concrete sequence of stations a job visits, with the time it
// holds each one.
type Route []RouteStep

// NewRoute pairs every station of the layout, in layout order, with an
// independently drawn duration.
func NewRoute(layout Layout, durations DurationSampler, rng *rand.Rand) Route {
	route := make(Route, len(layout))
	for i, station := range layout {
		route[i] = RouteStep{Station: station, Duration: durations.Sample(rng)}
	}
	return route
}

// ProcessingTime returns the sum of the route's hold durations, saturating
// at math.MaxInt64.
func (r Route) ProcessingTime() int64 {
	var total int64
	for _, step := range r {
		if step.Duration > math.MaxInt64-total {
			return math.MaxInt64
		}
		total += step.Duration
	}
	return total
}

// JobState tracks where a job process is between suspension points.
type JobState int

const (
	JobPending JobState = iota // about to request the next station on its route
	JobWaiting                 // queued at a busy station
	JobHolding                 // occupying a station for the step's duration
	JobDone                    // route finished
)

func (s JobState) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobWaiting:
		return "waiting"
	case JobHolding:
		return "holding"
	case JobDone:
		return "done"
	default:
		return fmt.Sprintf("JobState(%d)", int(s))
	}
}

// Job is a JobProcess: it walks its route, acquiring each station in turn,
// holding it for the step's duration and releasing it before moving on.
//
// TotalTime is the sum of the job's own processing durations and deliberately
// excludes queueing delay. Elapsed (Completion - Start) includes it.
type Job struct {
	ID    int
	Route Route

	Start      int64
	Completion int64
	TotalTime  int64

	state   JobState
	step    int
	started bool
}

// NewJob creates a job ready to be started on a scheduler.
func NewJob(id int, route Route) *Job {
	return &Job{ID: id, Route: route, state: JobPending}
}

// State returns the job's current lifecycle state.
func (j *Job) State() JobState {
	return j.state
}

// Elapsed returns the arrival-to-finish time, including time spent queued.
// Only meaningful once the job is done.
func (j *Job) Elapsed() int64 {
	return j.Completion - j.Start
}

func (j *Job) String() string {
	return fmt.Sprintf("job-%d", j.ID)
}

// Resume advances the job's state machine to its next suspension point.
func (j *Job) Resume(s *Scheduler) {
	if !j.started {
		j.started = true
		j.Start = s.Now()
	}
	for {
		switch j.state {
		case JobPending:
			if j.step == len(j.Route) {
				j.state = JobDone
				j.Completion = s.Now()
				return
			}
			if !s.Acquire(j.Route[j.step].Station, j) {
				j.state = JobWaiting
				return
			}
			j.hold(s)
			return
		case JobWaiting:
			// resumed by Release: the station is ours
			j.hold(s)
			return
		case JobHolding:
			step := j.Route[j.step]
			s.Release(step.Station, j)
			j.TotalTime += step.Duration
			j.step++
			j.state = JobPending
		case JobDone:
			panic(fmt.Sprintf("%v resumed after completion", j))
		}
	}
}

func (j *Job) hold(s *Scheduler) {
	j.state = JobHolding
	s.AdvanceTime(j, j.Route[j.step].Duration)
}
