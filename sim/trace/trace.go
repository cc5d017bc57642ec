package trace

// TraceLevel controls the verbosity of iteration tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelIterations captures every annealing iteration.
	TraceLevelIterations TraceLevel = "iterations"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelIterations: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// AnnealTrace collects iteration records during one optimization run.
type AnnealTrace struct {
	Level      TraceLevel
	Iterations []IterationRecord
}

// NewAnnealTrace creates an AnnealTrace ready for recording.
func NewAnnealTrace(level TraceLevel) *AnnealTrace {
	return &AnnealTrace{
		Level:      level,
		Iterations: make([]IterationRecord, 0),
	}
}

// Enabled reports whether records are kept.
func (at *AnnealTrace) Enabled() bool {
	return at != nil && at.Level == TraceLevelIterations
}

// RecordIteration appends an iteration record. No-op when tracing is disabled.
func (at *AnnealTrace) RecordIteration(record IterationRecord) {
	if !at.Enabled() {
		return
	}
	at.Iterations = append(at.Iterations, record)
}
