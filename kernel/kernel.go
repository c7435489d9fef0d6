// Package kernel implements the movement kernels: the per-individual,
// per-step computation of a biased random walk driven by every other
// individual's position, filtered by the per-population-pair
// interaction strengths and spatial averaging radii in the world's
// matrices. Step2D is the general lattice kernel; Step1D is the
// degenerate kernel used when the box height is 1.
package kernel

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kcr-sim/kcr/utils/floatutils"
	"github.com/kcr-sim/kcr/utils/matutils"
	"github.com/kcr-sim/kcr/world"
)

// clip bounds a single scalar; it's floatutils.Clip with min/max named
// lo/hi to match this package's vocabulary.
func clip(v, lo, hi float64) float64 {
	return floatutils.Clip(v, lo, hi)
}

// clipBias clips the (sx, sy) bias pair to [-1, 1] in place, via
// utils/matutils.VecClip rather than two scalar clips.
func clipBias(sx, sy float64) (float64, float64) {
	bias := mat.NewVecDense(2, []float64{sx, sy})
	matutils.VecClip(bias, -1, 1)
	return bias.AtVec(0), bias.AtVec(1)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// uniform01 draws u in [0, 1) from rng, the same
// golang.org/x/exp/rand source the rest of the simulator threads
// through placement and stepping, wrapped in gonum's distuv.Uniform.
func uniform01(rng *rand.Rand) float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: rng}.Rand()
}

// Step2D computes and applies one step of individual indiv, a member
// of population pop, under world w's interaction matrices and
// boundary policy, including the reflective-boundary right-edge no-op
// (an individual at the right edge whose sampled direction is "right"
// does not move — documented, not redesigned).
func Step2D(w *world.World, pop *world.Population, indiv *world.Individual, rng *rand.Rand) {
	x, y := indiv.X, indiv.Y

	var down, up, left, right float64
	if w.Boundary == world.Periodic {
		down, up, left, right = 1, 1, 1, 1
	} else {
		down = boolFloat(y > 0)
		up = boolFloat(y < w.BoxHeight-1)
		left = boolFloat(x > 0)
		right = boolFloat(x < w.BoxWidth-1)
	}

	var sx, sy, popsum float64
	for _, otherPop := range w.Populations {
		delta := w.Delta(pop.Index, otherPop.Index)
		a := w.Aij(pop.Index, otherPop.Index)
		for _, other := range otherPop.Individuals {
			dx := float64(w.Offset(other.X, x, w.BoxWidth))
			dy := float64(w.Offset(other.Y, y, w.BoxHeight))

			if dx == 0 && dy == 0 {
				popsum += 1 / (w.LVal * w.LVal)
				continue
			}

			r2 := (dx*w.LVal)*(dx*w.LVal) + (dy*w.LVal)*(dy*w.LVal)
			if r2 > 0 && r2 <= delta*delta {
				dist := floats.Norm([]float64{dx, dy}, 2)
				weight := w.LVal * a * (1 / (2 * math.Pi * delta * delta))
				sx += weight * dx / dist
				sy += weight * dy / dist
			}
		}
	}

	if w.PackingTerm {
		denom := 1 + w.Kappa*popsum
		sx /= denom
		sy /= denom
	}
	sx, sy = clipBias(sx, sy)

	downW := down * (1 - sy) / 4
	upW := up * (1 + sy) / 4
	leftW := left * (1 - sx) / 4
	rightW := right * (1 + sx) / 4

	total := downW + upW + leftW + rightW
	r := uniform01(rng) * total

	switch {
	case r < downW:
		indiv.Y = w.WrapY(y - 1)
	case r < downW+upW:
		indiv.Y = w.WrapY(y + 1)
	case r < downW+upW+leftW:
		indiv.X = w.WrapX(x - 1)
	default:
		if w.Boundary == world.Periodic {
			indiv.X = w.WrapX(x + 1)
		} else if x != w.BoxWidth-1 {
			indiv.X = x + 1
		}
		// At the right edge under Reflective boundaries with every
		// other weight masked to zero, this is a no-op: the individual
		// simply stays put for this step.
	}
}

// Step1D computes and applies one step of indiv under the 1D
// kernel used when w.BoxHeight == 1. Only left/right moves are
// considered; the bias is a sign-of-offset step function rather than
// the full inverse-distance kernel. y is always forced to 0.
func Step1D(w *world.World, pop *world.Population, indiv *world.Individual, rng *rand.Rand) {
	x := indiv.X

	var left, right float64
	if w.Boundary == world.Periodic {
		left, right = 1, 1
	} else {
		left = boolFloat(x > 0)
		right = boolFloat(x < w.BoxWidth-1)
	}

	var sx float64
	for _, otherPop := range w.Populations {
		delta := w.Delta(pop.Index, otherPop.Index)
		a := w.Aij(pop.Index, otherPop.Index)
		for _, other := range otherPop.Individuals {
			dx := float64(w.Offset(other.X, x, w.BoxWidth))
			d := dx * w.LVal
			switch {
			case d > 0 && d <= delta:
				sx += (w.LVal * a) / (4 * delta)
			case d < 0 && d >= -delta:
				sx -= (w.LVal * a) / (4 * delta)
			}
		}
	}

	sx = clip(sx, -1, 1)
	leftW := left * (1 - sx) / 2
	rightW := right * (1 + sx) / 2

	r := uniform01(rng) * (leftW + rightW)
	if r < leftW {
		indiv.X = w.WrapX(x - 1)
	} else if w.Boundary == world.Periodic {
		indiv.X = w.WrapX(x + 1)
	} else if x != w.BoxWidth-1 {
		indiv.X = x + 1
	}
	indiv.Y = 0
}
