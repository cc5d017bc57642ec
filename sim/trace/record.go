// Package trace provides iteration-trace recording for layout optimization runs.
// This package has no dependencies on sim/ or sim/anneal/; it stores pure data types.
package trace

// IterationRecord captures a single annealing step: the proposed swap, its
// score and the acceptance decision.
type IterationRecord struct {
	Iteration      int      `json:"iteration"` // 1-based; 0 is the initial evaluation
	SwapI          int      `json:"swap_i"`
	SwapJ          int      `json:"swap_j"`
	Candidate      []string `json:"candidate"`
	CandidateScore float64  `json:"candidate_score"`
	CurrentScore   float64  `json:"current_score"` // score of the current layout before the decision
	Temperature    float64  `json:"temperature"`   // temperature used for the decision, before cooling
	Probability    float64  `json:"probability"`   // acceptance probability; 1 for strictly better candidates
	Accepted       bool     `json:"accepted"`
	Improved       bool     `json:"improved"` // candidate became the new best
	BestScore      float64  `json:"best_score"`
}

// Worse reports whether the candidate scored no better than the current layout.
func (r IterationRecord) Worse() bool {
	return r.CandidateScore >= r.CurrentScore
}
