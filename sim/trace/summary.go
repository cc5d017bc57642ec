package trace

import "gonum.org/v1/gonum/stat"

// TraceSummary aggregates statistics from an AnnealTrace.
type TraceSummary struct {
	TotalIterations    int
	AcceptedCount      int
	RejectedCount      int
	WorseAcceptedCount int // accepted although no better than the current layout
	ImprovementCount   int // iterations that produced a new best
	AcceptanceRate     float64
	MeanCandidateScore float64
	StdDevCandidate    float64
	FinalTemperature   float64
}

// Summarize computes aggregate statistics from an AnnealTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(at *AnnealTrace) *TraceSummary {
	summary := &TraceSummary{}
	if at == nil || len(at.Iterations) == 0 {
		return summary
	}

	summary.TotalIterations = len(at.Iterations)
	scores := make([]float64, 0, len(at.Iterations))
	for _, r := range at.Iterations {
		scores = append(scores, r.CandidateScore)
		if !r.Accepted {
			summary.RejectedCount++
			continue
		}
		summary.AcceptedCount++
		if r.Worse() {
			summary.WorseAcceptedCount++
		}
		if r.Improved {
			summary.ImprovementCount++
		}
	}

	summary.AcceptanceRate = float64(summary.AcceptedCount) / float64(summary.TotalIterations)
	summary.MeanCandidateScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		summary.StdDevCandidate = stat.StdDev(scores, nil)
	}
	summary.FinalTemperature = at.Iterations[len(at.Iterations)-1].Temperature

	return summary
}
