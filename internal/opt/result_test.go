package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestImproveStrict(t *testing.T) {
	var b Best
	assert.False(t, b.Valid())

	b, changed := b.Improve(-3, []float64{1}, 0)
	assert.True(t, changed, "first value always seeds")
	assert.True(t, b.Valid())

	b2, changed := b.Improve(-3, []float64{2}, 5)
	assert.False(t, changed, "equal fitness is not an improvement")
	assert.Equal(t, 0, b2.Step)
	assert.Equal(t, []float64{1}, b2.Position)

	b3, changed := b2.Improve(1, []float64{4}, 7)
	assert.True(t, changed)
	assert.Equal(t, 7, b3.Step)
	assert.Equal(t, 0, b2.Step, "receiver is untouched")
}

func TestSeedCopiesPosition(t *testing.T) {
	pos := []float64{1, 2}
	b := Seed(0, pos, 0)
	pos[0] = 99
	assert.Equal(t, 1.0, b.Position[0])
}
