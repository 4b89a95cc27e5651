package pso

// Particle is one member of the swarm.
type Particle struct {
	Position []float64
	Velocity []float64
	// Fitness at Position, from the most recent evaluation.
	Fitness float64

	Best         float64
	BestPosition []float64
}

func (p Particle) clone() Particle {
	return Particle{
		Position:     append([]float64(nil), p.Position...),
		Velocity:     append([]float64(nil), p.Velocity...),
		Fitness:      p.Fitness,
		Best:         p.Best,
		BestPosition: append([]float64(nil), p.BestPosition...),
	}
}

// remember updates the personal best on strict improvement.
func (p *Particle) remember() {
	if p.Fitness > p.Best {
		p.Best = p.Fitness
		copy(p.BestPosition, p.Position)
	}
}

// ClampVelocity limits every component to [-vmax_i, vmax_i].
func ClampVelocity(vel, vmax []float64) {
	for i, v := range vel {
		if v > vmax[i] {
			vel[i] = vmax[i]
		} else if v < -vmax[i] {
			vel[i] = -vmax[i]
		}
	}
}

// Reenter wraps a coordinate that left its bounds around to the opposite side:
// x < lower becomes upper + (x - lower), x > upper becomes lower + (x - upper).
// The correction is applied once, so an overshoot larger than the range stays
// out of bounds.
func Reenter(pos, lower, upper []float64) {
	for i, x := range pos {
		if x < lower[i] {
			pos[i] = upper[i] + (x - lower[i])
		} else if x > upper[i] {
			pos[i] = lower[i] + (x - upper[i])
		}
	}
}
