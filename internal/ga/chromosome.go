package ga

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"
)

// guardBand keeps crossover points away from the ends of the genotype so that
// offspring are rarely a plain copy of one parent.
const guardBand = 5

// Chromosome is a fixed-length genotype plus the fitness from its last evaluation.
type Chromosome struct {
	Genes *bitset.BitSet
	Value float64
}

// NewChromosome draws every bit uniformly from {0, 1}.
func NewChromosome(length uint, rng *rand.Rand) Chromosome {
	genes := bitset.New(length)
	for i := uint(0); i < length; i++ {
		if rng.Intn(2) == 1 {
			genes.Set(i)
		}
	}
	return Chromosome{Genes: genes}
}

func (c Chromosome) Len() uint { return c.Genes.Len() }

func (c Chromosome) Clone() Chromosome {
	return Chromosome{Genes: c.Genes.Clone(), Value: c.Value}
}

// Mutate flips exactly one bit, chosen uniformly over the genotype.
func (c Chromosome) Mutate(rng *rand.Rand) {
	n := c.Len()
	if n == 0 {
		return
	}
	c.Genes.Flip(uint(rng.Intn(int(n))))
}

// Crossover produces two children from c and other, which must share a length.
// One-point swaps the tails after a single cut; two-point swaps the segment
// between two ordered cuts.
func (c Chromosome) Crossover(other Chromosome, mode CrossoverMode, rng *rand.Rand) (Chromosome, Chromosome) {
	n := int(c.Len())
	var lo, hi int
	if mode == TwoPoint {
		lo, hi = twoPoints(n, rng)
	} else {
		lo, hi = onePoint(n, rng), n
	}
	a, b := c.Genes.Clone(), other.Genes.Clone()
	for i := uint(lo); i < uint(hi); i++ {
		a.SetTo(i, other.Genes.Test(i))
		b.SetTo(i, c.Genes.Test(i))
	}
	return Chromosome{Genes: a}, Chromosome{Genes: b}
}

// guard shrinks the band for genotypes too short to hold two full bands.
func guard(n int) int {
	if n < 2*guardBand {
		return n / 2
	}
	return guardBand
}

// onePoint returns a cut in [g, n-g].
func onePoint(n int, rng *rand.Rand) int {
	g := guard(n)
	return g + rng.Intn(n-2*g+1)
}

// twoPoints splits the interior [g, n-g] in halves and draws one cut from each,
// so the first cut never passes the second.
func twoPoints(n int, rng *rand.Rand) (int, int) {
	g := guard(n)
	span := n - 2*g
	half := span / 2
	first := g + rng.Intn(half+1)
	second := g + half + rng.Intn(span-half+1)
	return first, second
}
