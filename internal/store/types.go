package store

import (
	"fmt"
	"time"

	"github.com/cwbudde/gapso/internal/opt"
)

// RunConfig holds the settings a run was started with.
// This avoids import cycles with the solver packages.
type RunConfig struct {
	Algorithm  string `json:"algorithm" mapstructure:"algo"` // ga, pso, mayfly
	Problem    string `json:"problem" mapstructure:"problem"`
	Dim        int    `json:"dim" mapstructure:"dim"`
	Iterations int    `json:"iterations" mapstructure:"iters"`
	PopSize    int    `json:"popSize" mapstructure:"pop"`
	Seed       int64  `json:"seed" mapstructure:"seed"`

	// Algorithm specific knobs, zero when unused.
	CrossoverRate float64 `json:"crossoverRate,omitempty" mapstructure:"crossover-rate"`
	MutationRate  float64 `json:"mutationRate,omitempty" mapstructure:"mutation-rate"`
	Crossover     string  `json:"crossover,omitempty" mapstructure:"crossover"`
	Precision     float64 `json:"precision,omitempty" mapstructure:"precision"`
	W             float64 `json:"w,omitempty" mapstructure:"w"`
	C1            float64 `json:"c1,omitempty" mapstructure:"c1"`
	C2            float64 `json:"c2,omitempty" mapstructure:"c2"`
}

// Record is the persisted result artifact of one optimizer run.
// The time series is kept out of the record and written to trace.jsonl.
type Record struct {
	// RunID is the unique identifier for this run
	RunID string `json:"runId"`

	// Best is the sign-corrected best objective value
	Best float64 `json:"best"`

	// BestData is the decision vector that produced Best
	BestData []float64 `json:"bestData"`

	// BestStep is the generation or iteration where Best was last improved
	BestStep int `json:"bestStep"`

	// Steps is the number of completed generations or iterations
	Steps int `json:"steps"`

	Evaluations int           `json:"evaluations"`
	Duration    time.Duration `json:"duration"`

	// Timestamp records when this record was created
	Timestamp time.Time `json:"timestamp"`

	Config RunConfig `json:"config"`
}

// RecordInfo contains metadata about a run without the decision vector.
// Used for listing runs.
type RecordInfo struct {
	RunID     string    `json:"runId"`
	Algorithm string    `json:"algorithm"`
	Problem   string    `json:"problem"`
	Best      float64   `json:"best"`
	BestStep  int       `json:"bestStep"`
	Steps     int       `json:"steps"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord creates a record from an optimizer result.
func NewRecord(runID string, res *opt.Result, config RunConfig) *Record {
	return &Record{
		RunID:       runID,
		Best:        res.Best,
		BestData:    res.BestData,
		BestStep:    res.BestStep,
		Steps:       res.Steps,
		Evaluations: res.Evaluations,
		Duration:    res.Duration,
		Timestamp:   time.Now(),
		Config:      config,
	}
}

// ToInfo converts a full Record to RecordInfo (metadata only).
func (r *Record) ToInfo() RecordInfo {
	return RecordInfo{
		RunID:     r.RunID,
		Algorithm: r.Config.Algorithm,
		Problem:   r.Config.Problem,
		Best:      r.Best,
		BestStep:  r.BestStep,
		Steps:     r.Steps,
		Timestamp: r.Timestamp,
	}
}

// Validate checks if the record has valid data.
// Returns an error if any required field is missing or invalid.
func (r *Record) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if len(r.BestData) == 0 {
		return &ValidationError{Field: "BestData", Reason: "cannot be empty"}
	}
	if r.Steps < 0 {
		return &ValidationError{Field: "Steps", Reason: "cannot be negative"}
	}
	if r.BestStep < 0 || r.BestStep > r.Steps {
		return &ValidationError{Field: "BestStep", Reason: fmt.Sprintf("must be in [0, %d]", r.Steps)}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if r.Config.Algorithm == "" {
		return &ValidationError{Field: "Config.Algorithm", Reason: "cannot be empty"}
	}
	if r.Config.Problem == "" {
		return &ValidationError{Field: "Config.Problem", Reason: "cannot be empty"}
	}
	if r.Config.Dim <= 0 {
		return &ValidationError{Field: "Config.Dim", Reason: "must be positive"}
	}
	if len(r.BestData) != r.Config.Dim {
		return &ValidationError{
			Field:  "BestData",
			Reason: fmt.Sprintf("length mismatch: expected %d values", r.Config.Dim),
		}
	}
	return nil
}

// ValidationError represents a record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
