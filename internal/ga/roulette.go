package ga

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Interval is the half-open slice [Low, Up) of [0, 1) owned by one chromosome.
type Interval struct {
	Low, Up float64
}

// Table is a roulette wheel: contiguous intervals in population order whose
// widths are proportional to the shifted fitness.
type Table []Interval

// BuildTable shifts fitness so the minimum is zero and normalizes by the sum.
// When the shifted sum is zero or not finite (all fitness equal, or infinite
// values) every chromosome gets the same width and degenerate is true.
func BuildTable(fitness []float64) (t Table, degenerate bool) {
	n := len(fitness)
	t = make(Table, n)
	if n == 0 {
		return t, true
	}
	shifted := make([]float64, n)
	copy(shifted, fitness)
	floats.AddConst(-floats.Min(shifted), shifted)
	sum := floats.Sum(shifted)

	if !(sum > 0) || math.IsInf(sum, 0) {
		for i := range t {
			t[i] = Interval{Low: float64(i) / float64(n), Up: float64(i+1) / float64(n)}
		}
		t[n-1].Up = 1
		return t, true
	}

	prev := 0.0
	for i, v := range shifted {
		up := math.Min(prev+v/sum, 1)
		t[i] = Interval{Low: prev, Up: up}
		prev = up
	}
	t[n-1].Up = 1
	return t, false
}

// Lookup returns the index whose interval contains prob, scanning in table
// order. Values outside [0, 1) fall back to the last non-empty interval.
func (t Table) Lookup(prob float64) int {
	for i, iv := range t {
		if prob >= iv.Low && prob < iv.Up {
			return i
		}
	}
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Up > t[i].Low {
			return i
		}
	}
	return len(t) - 1
}
