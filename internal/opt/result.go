package opt

import "time"

// Point is one entry of the best-so-far time series.
type Point struct {
	Step int     `json:"step"`
	Best float64 `json:"best"`
}

// Result is the artifact produced by every optimizer run.
// Best and every Series value are sign-corrected to the problem's direction,
// so they are expressed in the units of the user's objective.
type Result struct {
	Algorithm   string        `json:"algorithm"`
	Best        float64       `json:"best"`
	BestData    []float64     `json:"bestData"`
	BestStep    int           `json:"bestStep"`
	Steps       int           `json:"steps"`
	Evaluations int           `json:"evaluations"`
	Series      []Point       `json:"series"`
	Duration    time.Duration `json:"duration"`
}

// Best is the running best fitness. It is a value: Improve returns a new Best
// instead of mutating the receiver, so a step can be written as
// (state, rng) -> state'.
type Best struct {
	Fitness  float64
	Position []float64
	Step     int
	set      bool
}

// Seed records the initial best without requiring an improvement.
func Seed(fitness float64, position []float64, step int) Best {
	return Best{
		Fitness:  fitness,
		Position: append([]float64(nil), position...),
		Step:     step,
		set:      true,
	}
}

// Improve returns the new best when fitness is strictly larger, and the
// receiver otherwise. The second return value reports whether it changed.
func (b Best) Improve(fitness float64, position []float64, step int) (Best, bool) {
	if b.set && !(fitness > b.Fitness) {
		return b, false
	}
	return Seed(fitness, position, step), true
}

// Valid reports whether a best has been recorded.
func (b Best) Valid() bool { return b.set }
