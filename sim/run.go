package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// DefaultNumJobs is the number of jobs simulated per evaluation.
const DefaultNumJobs = 10

// JobRecord is the outcome of one job in a run.
type JobRecord struct {
	ID         int   `json:"id"`
	Start      int64 `json:"start"`
	Completion int64 `json:"completion"`
	TotalTime  int64 `json:"total_time"` // processing durations only
	Elapsed    int64 `json:"elapsed"`    // completion - start, including queueing
}

// RunResult holds the statistics of one simulation run.
type RunResult struct {
	// Score is the mean elapsed time across jobs; the optimizer's objective.
	Score float64 `json:"score"`
	// StdDev is the sample standard deviation of elapsed times (0 for one job).
	StdDev float64 `json:"std_dev"`
	// MeanProcessing is the mean of per-job TotalTime.
	MeanProcessing float64        `json:"mean_processing"`
	Makespan       int64          `json:"makespan"`
	Events         int            `json:"events"` // resumptions executed by the scheduler
	Jobs           []JobRecord    `json:"jobs"`
	Stations       []StationStats `json:"stations"`
}

// Simulate runs numJobs jobs through the stations of layout, all starting at
// time 0, and returns their completion statistics. Each job's route pairs
// every station, in layout order, with a fresh duration from durations.
func Simulate(layout Layout, numJobs int, durations DurationSampler, rng *rand.Rand) (RunResult, error) {
	if err := layout.Validate(); err != nil {
		return RunResult{}, err
	}
	if numJobs < 1 {
		return RunResult{}, fmt.Errorf("num_jobs must be >= 1 (got %d): %w", numJobs, ErrInvalidArgument)
	}
	if durations == nil {
		return RunResult{}, fmt.Errorf("duration sampler is nil: %w", ErrInvalidArgument)
	}
	if err := durations.Validate(); err != nil {
		return RunResult{}, err
	}
	if rng == nil {
		return RunResult{}, fmt.Errorf("random source is nil: %w", ErrInvalidArgument)
	}

	// The makespan never exceeds the sum of all holds: until the last job
	// finishes, some station is always held.
	jobs := make([]*Job, numJobs)
	var horizon int64
	for i := range jobs {
		jobs[i] = NewJob(i, NewRoute(layout, durations, rng))
		work := jobs[i].Route.ProcessingTime()
		if work >= math.MaxInt64-horizon {
			return RunResult{}, fmt.Errorf("total processing time of %d jobs over %d stations overflows the clock: %w",
				numJobs, len(layout), ErrInvalidArgument)
		}
		horizon += work
	}

	s := NewScheduler(layout...)
	for _, j := range jobs {
		s.Start(j)
	}
	s.Run()

	res := RunResult{
		Makespan: s.Now(),
		Events:   s.Executed(),
		Jobs:     make([]JobRecord, numJobs),
		Stations: s.StationStats(),
	}
	elapsed := make([]float64, numJobs)
	processing := make([]float64, numJobs)
	for i, j := range jobs {
		if j.State() != JobDone {
			panic(fmt.Sprintf("%v did not complete (state %s)", j, j.State()))
		}
		res.Jobs[i] = JobRecord{
			ID:         j.ID,
			Start:      j.Start,
			Completion: j.Completion,
			TotalTime:  j.TotalTime,
			Elapsed:    j.Elapsed(),
		}
		elapsed[i] = float64(j.Elapsed())
		processing[i] = float64(j.TotalTime)
	}
	res.Score = stat.Mean(elapsed, nil)
	res.MeanProcessing = stat.Mean(processing, nil)
	if numJobs > 1 {
		res.StdDev = stat.StdDev(elapsed, nil)
	}

	logrus.Debugf("Simulated layout %v with %d jobs: score=%.3f makespan=%d", layout, numJobs, res.Score, res.Makespan)
	return res, nil
}

// Evaluator scores layouts by simulation. Every call redraws durations, so
// the same layout may score differently on repeated evaluation.
type Evaluator struct {
	NumJobs   int
	Durations DurationSampler
	RNG       *rand.Rand
}

// NewEvaluator validates its arguments and returns an Evaluator.
func NewEvaluator(numJobs int, durations DurationSampler, rng *rand.Rand) (*Evaluator, error) {
	if numJobs < 1 {
		return nil, fmt.Errorf("num_jobs must be >= 1 (got %d): %w", numJobs, ErrInvalidArgument)
	}
	if durations == nil {
		return nil, fmt.Errorf("duration sampler is nil: %w", ErrInvalidArgument)
	}
	if err := durations.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is nil: %w", ErrInvalidArgument)
	}
	return &Evaluator{NumJobs: numJobs, Durations: durations, RNG: rng}, nil
}

// Evaluate runs one simulation of layout.
func (e *Evaluator) Evaluate(layout Layout) (RunResult, error) {
	return Simulate(layout, e.NumJobs, e.Durations, e.RNG)
}
