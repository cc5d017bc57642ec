package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/layout-sim/layout-sim/internal/session"
	"github.com/layout-sim/layout-sim/sim/trace"
)

const chartWidth = 50

// printReport writes the two-line before/after summary.
func printReport(w io.Writer, out *session.Outcome) {
	fmt.Fprintf(w, "Initial layout %v -> Avg Time %.2f\n", out.InitialLayout, out.InitialScore)
	fmt.Fprintf(w, "Optimised layout %v -> Avg Time %.2f\n", out.Result.BestLayout, out.Result.BestScore)
}

// HistoryFile is the JSON document written by --history-out. Plot History
// against its index to chart optimization progress.
type HistoryFile struct {
	RunID        string    `json:"run_id"`
	Seed         int64     `json:"seed"`
	Stations     []string  `json:"stations"`
	BestLayout   []string  `json:"best_layout"`
	BestScore    float64   `json:"best_score"`
	InitialScore float64   `json:"initial_score"`
	History      []float64 `json:"history"`
}

func writeHistory(path string, out *session.Outcome) error {
	doc := HistoryFile{
		RunID:        out.RunID,
		Seed:         int64(out.Key),
		Stations:     out.InitialLayout,
		BestLayout:   out.Result.BestLayout,
		BestScore:    out.Result.BestScore,
		InitialScore: out.InitialScore,
		History:      out.Result.History,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// renderChart draws one bar per iteration, scaled between the lowest and
// highest history values.
func renderChart(w io.Writer, history []float64, width int) {
	if len(history) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range history {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	fmt.Fprintln(w, "=== Best Avg Job Completion Time per Iteration ===")
	for i, v := range history {
		n := width
		if hi > lo {
			n = 1 + int(math.Round(float64(width-1)*(v-lo)/(hi-lo)))
		}
		fmt.Fprintf(w, "%4d | %s %.2f\n", i, strings.Repeat("#", n), v)
	}
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Annealing Trace ===")
	fmt.Fprintf(w, "Iterations           : %d\n", s.TotalIterations)
	fmt.Fprintf(w, "Accepted             : %d (%.1f%%)\n", s.AcceptedCount, 100*s.AcceptanceRate)
	fmt.Fprintf(w, "Worse accepted       : %d\n", s.WorseAcceptedCount)
	fmt.Fprintf(w, "New bests            : %d\n", s.ImprovementCount)
	fmt.Fprintf(w, "Candidate score      : %.2f ± %.2f\n", s.MeanCandidateScore, s.StdDevCandidate)
	fmt.Fprintf(w, "Final temperature    : %.4f\n", s.FinalTemperature)
}

func printEvaluation(w io.Writer, ev *session.Evaluation, detail bool) {
	fmt.Fprintf(w, "Layout %v -> Avg Time %.2f", ev.Layout, ev.Mean)
	if len(ev.Runs) > 1 {
		fmt.Fprintf(w, " (± %.2f over %d runs)", ev.StdDev, len(ev.Runs))
	}
	fmt.Fprintln(w)
	if !detail {
		return
	}
	for i, run := range ev.Runs {
		fmt.Fprintf(w, "=== Run %d: score %.2f, makespan %d, events %d ===\n", i+1, run.Score, run.Makespan, run.Events)
		for _, j := range run.Jobs {
			fmt.Fprintf(w, "  job %-3d start %-4d completion %-4d processing %-4d elapsed %d\n",
				j.ID, j.Start, j.Completion, j.TotalTime, j.Elapsed)
		}
		for _, st := range run.Stations {
			fmt.Fprintf(w, "  station %-8s served %-3d busy %-4d max queue %d\n",
				st.Name, st.Served, st.BusyTime, st.MaxQueueLen)
		}
	}
}
