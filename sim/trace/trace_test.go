package trace

import (
	"testing"
)

func TestAnnealTrace_RecordIteration_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for iterations
	at := NewAnnealTrace(TraceLevelIterations)

	// WHEN an iteration record is recorded
	at.RecordIteration(IterationRecord{
		Iteration:      1,
		SwapI:          0,
		SwapJ:          2,
		Candidate:      []string{"C", "B", "A"},
		CandidateScore: 8.5,
		CurrentScore:   9.0,
		Accepted:       true,
	})

	// THEN the trace contains one record with correct data
	if len(at.Iterations) != 1 {
		t.Fatalf("expected 1 iteration, got %d", len(at.Iterations))
	}
	if at.Iterations[0].Candidate[0] != "C" {
		t.Errorf("expected candidate to start with C, got %v", at.Iterations[0].Candidate)
	}
	if !at.Iterations[0].Accepted {
		t.Error("expected accepted=true")
	}
}

func TestAnnealTrace_LevelNone_DropsRecords(t *testing.T) {
	// GIVEN a trace with tracing disabled
	at := NewAnnealTrace(TraceLevelNone)

	// WHEN a record is added
	at.RecordIteration(IterationRecord{Iteration: 1})

	// THEN nothing is kept
	if len(at.Iterations) != 0 {
		t.Errorf("expected no records, got %d", len(at.Iterations))
	}
}

func TestAnnealTrace_NilTrace_RecordIsNoOp(t *testing.T) {
	var at *AnnealTrace
	at.RecordIteration(IterationRecord{Iteration: 1})
	if at.Enabled() {
		t.Error("nil trace must report disabled")
	}
}

func TestAnnealTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	at := NewAnnealTrace(TraceLevelIterations)
	for i := 1; i <= 3; i++ {
		at.RecordIteration(IterationRecord{Iteration: i})
	}
	for i, r := range at.Iterations {
		if r.Iteration != i+1 {
			t.Errorf("record %d: expected iteration %d, got %d", i, i+1, r.Iteration)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"iterations", true},
		{"", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.want {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
