package anneal

import (
	"time"

	"github.com/layout-sim/layout-sim/sim"
)

// Result is what an optimization run hands to its reporting and charting
// collaborators.
type Result struct {
	BestLayout sim.Layout
	BestScore  float64
	// History holds the best score seen so far, one entry for the initial
	// evaluation plus one per iteration. It never increases.
	History []float64

	InitialScore     float64
	FinalLayout      sim.Layout // current layout when the loop ended
	FinalTemperature float64
	Accepted         int
	Evaluations      int
	Duration         time.Duration
}
