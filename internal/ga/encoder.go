package ga

import (
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"github.com/bits-and-blooms/bitset"

	"github.com/cwbudde/gapso/internal/problem"
)

// maxBits keeps every decoded integer exactly representable as a float64.
const maxBits = 52

// Setting describes how one decision variable is laid out in the genotype.
type Setting struct {
	Low  float64
	Step float64
	Bits int
}

// max returns the largest integer a run of s.Bits bits can hold.
func (s Setting) max() uint64 { return 1<<uint(s.Bits) - 1 }

// DeriveSettings computes, per dimension, the bit count needed to resolve
// range/precision steps and the real-valued step between adjacent codes.
// A dimension that resolves to fewer than two steps still gets one bit.
func DeriveSettings(lower, upper []float64, precision float64) ([]Setting, error) {
	if len(lower) != len(upper) {
		return nil, fmt.Errorf("%w: %d lower bounds but %d upper bounds", problem.ErrInvalidArgument, len(lower), len(upper))
	}
	if !(precision > 0) {
		return nil, fmt.Errorf("%w: precision must be > 0 (got %g)", problem.ErrInvalidArgument, precision)
	}
	settings := make([]Setting, len(lower))
	for i := range lower {
		span := upper[i] - lower[i]
		steps := math.Floor(span / precision)
		if steps > 1<<maxBits {
			return nil, fmt.Errorf("%w: precision %g needs more than %d bits for dimension %d", problem.ErrInvalidArgument, precision, maxBits, i)
		}
		n := 0
		if steps >= 2 {
			// ceil(log2(steps)) for an integral steps >= 2
			n = bits.Len64(uint64(steps) - 1)
		}
		if n < 1 {
			slog.Warn("Precision coarser than range, using one bit",
				"dimension", i, "range", span, "precision", precision, "error", problem.ErrDegenerate)
			n = 1
		}
		settings[i] = Setting{
			Low:  lower[i],
			Bits: n,
			Step: span / float64(uint64(1)<<uint(n)-1),
		}
	}
	return settings, nil
}

// TotalBits is the genotype length implied by settings.
func TotalBits(settings []Setting) uint {
	var n uint
	for _, s := range settings {
		n += uint(s.Bits)
	}
	return n
}

// Decode reads consecutive runs of bits, most significant bit first, and
// maps each run k onto Low + k*Step.
func Decode(genes *bitset.BitSet, settings []Setting) []float64 {
	data := make([]float64, len(settings))
	var offset uint
	for i, s := range settings {
		var k uint64
		for j := 0; j < s.Bits; j++ {
			k <<= 1
			if genes.Test(offset) {
				k |= 1
			}
			offset++
		}
		data[i] = s.Low + float64(k)*s.Step
	}
	return data
}

// Encode returns the genotype whose decoding is nearest to x, clamping values
// outside the bounds to the boundary codes.
func Encode(x []float64, settings []Setting) (*bitset.BitSet, error) {
	if len(x) != len(settings) {
		return nil, fmt.Errorf("%w: data length must be %d (got %d)", problem.ErrInvalidArgument, len(settings), len(x))
	}
	genes := bitset.New(TotalBits(settings))
	var offset uint
	for i, s := range settings {
		r := math.Round((x[i] - s.Low) / s.Step)
		var k uint64
		switch {
		case r <= 0 || math.IsNaN(r):
			k = 0
		case r >= float64(s.max()):
			k = s.max()
		default:
			k = uint64(r)
		}
		for j := s.Bits - 1; j >= 0; j-- {
			genes.SetTo(offset, k&(1<<uint(j)) != 0)
			offset++
		}
	}
	return genes, nil
}
