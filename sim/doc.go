// Package sim provides the discrete-event simulation engine used to score
// station layouts.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the Process interface, ResumeEvent and the (time, seq) EventQueue
//   - scheduler.go: the clock, Acquire/Release/AdvanceTime and the run loop
//   - job.go: the job state machine (pending → waiting → holding → done)
//   - run.go: Simulate, which starts a batch of jobs at time 0 and averages their elapsed time
//
// # Execution Model
//
// Scheduling is single-threaded and cooperative. A process runs synchronously
// until it suspends, which happens at every AdvanceTime and at an Acquire that
// cannot be granted. Events with the same timestamp resume in the order they
// were scheduled. Stations have capacity 1 and serve waiters FIFO.
//
// The layout optimizer lives in sim/anneal; the pure-data iteration trace it
// produces lives in sim/trace.
package sim
