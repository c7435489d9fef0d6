// Package world implements the root simulation state for a lattice
// chase-and-run run: population/individual bookkeeping, the
// interaction and environment matrices, and the state machine that
// gates initialization, placement, and stepping.
package world

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Boundary selects how positions behave at the edges of the lattice, a
// run-start configuration value consulted by the offset/wrap helpers
// and the movement kernels.
type Boundary int

const (
	Reflective Boundary = iota
	Periodic
)

// State is the run's lifecycle state. Transitions are one-way:
// Uninitialized -> Initialized -> Placed -> Running -> Terminated.
type State int

const (
	Uninitialized State = iota
	Initialized
	Placed
	Running
	Terminated
)

// Individual is a single lattice-walker. Before placement its
// position is the sentinel (BoxWidth, BoxHeight), which is never a
// legal in-box coordinate.
type Individual struct {
	Index int
	X, Y  int
}

// Population is a named, ordered group of individuals sharing a row
// of Aijs and Deltas.
type Population struct {
	Index       int
	Individuals []*Individual
}

// World owns every piece of state a run needs: lattice geometry,
// interaction matrices, the environmental field, and the ordered
// population/individual collections. Individual positions are the
// only thing that mutates after placement; everything else is
// read-only for the lifetime of the run.
type World struct {
	NoPops, NoIndivs     int
	BoxWidth, BoxHeight  int
	LVal                 float64
	TotalTime            float64
	CurrentTime          int
	StartMeasureTime     float64
	Aijs, Deltas         *mat.Dense
	EnvData              *mat.Dense
	EnvWeight            float64
	PackingTerm          bool
	Kappa                float64
	Boundary             Boundary
	Populations          []*Population

	state State
}

// State returns the run's current lifecycle state.
func (w *World) State() State {
	return w.state
}

// Aij returns the interaction strength of population myPop's response
// to population otherPop, following the row-major convention
// matrix[otherPop + myPop*noPops]: myPop is the row, otherPop is the
// column.
func (w *World) Aij(myPop, otherPop int) float64 {
	return w.Aijs.At(myPop, otherPop)
}

// Delta returns the spatial averaging radius paired with Aij(myPop,
// otherPop) by the same row/column convention.
func (w *World) Delta(myPop, otherPop int) float64 {
	return w.Deltas.At(myPop, otherPop)
}

// Offset returns the signed minimum-image coordinate difference
// other-self along an axis of the given length. Under Reflective
// boundaries this is the plain subtraction; under Periodic boundaries
// it wraps to whichever of the two candidate differences has the
// smaller absolute value.
func (w *World) Offset(other, self, length int) int {
	d := other - self
	if w.Boundary != Periodic {
		return d
	}
	if d > length/2 {
		d -= length
	} else if d < -length/2 {
		d += length
	}
	return d
}

// WrapX folds x into [0, BoxWidth) under Periodic boundaries; under
// Reflective boundaries x is returned unchanged (the kernels never
// produce an out-of-range x under Reflective boundaries by
// construction).
func (w *World) WrapX(x int) int {
	return wrap(x, w.BoxWidth, w.Boundary)
}

// WrapY folds y into [0, BoxHeight) under Periodic boundaries.
func (w *World) WrapY(y int) int {
	return wrap(y, w.BoxHeight, w.Boundary)
}

func wrap(v, length int, b Boundary) int {
	if b != Periodic {
		return v
	}
	v %= length
	if v < 0 {
		v += length
	}
	return v
}

// AdvanceTime advances the step counter by one unit, as the driver
// does before processing each step.
func (w *World) AdvanceTime() {
	w.CurrentTime++
}

// Unplaced reports whether an individual still holds its pre-placement
// sentinel position.
func (w *World) Unplaced(indiv *Individual) bool {
	return indiv.X == w.BoxWidth && indiv.Y == w.BoxHeight
}

// InBounds reports whether (x, y) is a legal lattice cell for this
// world.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.BoxWidth && y >= 0 && y < w.BoxHeight
}

// CheckInvariant panics if indiv is outside the box. The driver calls
// this after every movement call; a violation here is a programmer
// error in a kernel, never a recoverable condition.
func (w *World) CheckInvariant(indiv *Individual) {
	if !w.InBounds(indiv.X, indiv.Y) {
		panic(fmt.Sprintf("world: individual %d out of bounds at (%d, %d)",
			indiv.Index, indiv.X, indiv.Y))
	}
}

// markPlaced transitions Initialized -> Placed. Called once, after
// every individual has been given a starting position.
func (w *World) markPlaced() {
	if w.state != Initialized {
		panic(fmt.Sprintf("world: markPlaced called from state %v, want Initialized", w.state))
	}
	w.state = Placed
	w.CurrentTime = 0
}

// MarkPlaced is the public entry point used by the placement package
// once it has assigned every individual a starting position.
func (w *World) MarkPlaced() {
	w.markPlaced()
}

// MarkRunning transitions Placed -> Running. The driver calls this
// once, before the first step.
func (w *World) MarkRunning() {
	if w.state != Placed {
		panic(fmt.Sprintf("world: markRunning called from state %v, want Placed", w.state))
	}
	w.state = Running
}

// MarkTerminated transitions Running -> Terminated, reached when
// CurrentTime == TotalTime.
func (w *World) MarkTerminated() {
	if w.state != Running {
		panic(fmt.Sprintf("world: markTerminated called from state %v, want Running", w.state))
	}
	w.state = Terminated
}

// Done reports whether the run has reached TotalTime.
func (w *World) Done() bool {
	return float64(w.CurrentTime) >= w.TotalTime
}

// Measuring reports whether the current step is at or after
// StartMeasureTime, i.e. whether positions should be emitted this
// step.
func (w *World) Measuring() bool {
	return float64(w.CurrentTime) >= w.StartMeasureTime
}

// Final reports whether the current step is the last one the run will
// take.
func (w *World) Final() bool {
	return float64(w.CurrentTime) >= w.TotalTime
}
