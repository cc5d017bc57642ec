package sim

import (
	"fmt"
	"math/rand"
)

// scriptedProcess runs a list of steps, one per resumption, and logs the
// clock at each resumption.
type scriptedProcess struct {
	name    string
	steps   []func(s *Scheduler) bool // returns true to keep running synchronously
	next    int
	resumes []int64
	log     *[]string
}

func (p *scriptedProcess) Resume(s *Scheduler) {
	p.resumes = append(p.resumes, s.Now())
	if p.log != nil {
		*p.log = append(*p.log, fmt.Sprintf("%s@%d", p.name, s.Now()))
	}
	for p.next < len(p.steps) {
		step := p.steps[p.next]
		p.next++
		if !step(s) {
			return
		}
	}
}

func (p *scriptedProcess) String() string { return p.name }

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func mustLayout(names ...string) Layout {
	l, err := NewLayout(names...)
	if err != nil {
		panic(err)
	}
	return l
}
