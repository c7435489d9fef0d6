// Package simrun implements the simulation driver: it advances the
// integer time counter from 0 to TotalTime, stepping every individual
// in stable population/individual order through the appropriate
// movement kernel, and emits position observations once the
// measurement window is reached.
package simrun

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kcr-sim/kcr/internal/progress"
	"github.com/kcr-sim/kcr/kernel"
	"github.com/kcr-sim/kcr/utils/matutils"
	"github.com/kcr-sim/kcr/world"
)

// Options configures a single call to Run.
type Options struct {
	// Out receives the per-step position stream. Required.
	Out io.Writer

	// End, if non-nil, additionally receives the same per-individual
	// values written to Out on the final step only, written inline
	// during the last iteration of the step loop rather than as a
	// separate post-loop dump.
	End io.Writer

	// Report, if non-nil, receives progress/timing notes. Never
	// written to when nil; never the same stream as Out.
	Report io.Writer
}

// Run advances w from Placed to Terminated, stepping every individual
// exactly TotalTime times. rng is the single sequential RNG stream
// also used for placement: Run never constructs its own source.
func Run(w *world.World, rng *rand.Rand, opts Options) error {
	if w.State() != world.Placed {
		return fmt.Errorf("simrun: Run called in state %v, want Placed", w.State())
	}
	if opts.Out == nil {
		return fmt.Errorf("simrun: Options.Out is required")
	}

	w.MarkRunning()

	var bar *progress.Bar
	if opts.Report != nil {
		bar = progress.New(opts.Report, int(w.TotalTime))
	}

	for !w.Done() {
		w.AdvanceTime()

		for _, pop := range w.Populations {
			for _, indiv := range pop.Individuals {
				if w.BoxHeight == 1 {
					kernel.Step1D(w, pop, indiv, rng)
				} else {
					kernel.Step2D(w, pop, indiv, rng)
				}

				if w.Measuring() {
					fmt.Fprintf(opts.Out, "%d\t%d\t", indiv.X, indiv.Y)
					if w.Final() && opts.End != nil {
						fmt.Fprintf(opts.End, "%d\t%d\t", indiv.X, indiv.Y)
					}
				}

				w.CheckInvariant(indiv)
			}
		}

		if w.Measuring() {
			fmt.Fprintln(opts.Out)
			if w.Final() && opts.End != nil {
				fmt.Fprintln(opts.End)
			}
		}

		if bar != nil {
			var note string
			if bar.ShouldDraw() {
				note = fmt.Sprintf("mean spread: %.3f", meanSpread(w))
			}
			bar.Increment(note)
		}
	}

	if bar != nil {
		bar.Close()
	}

	w.MarkTerminated()
	return nil
}

// meanSpread reports the mean Euclidean distance of every individual
// from the population's centroid, flattened across all populations, a
// cheap single-pass population-spread statistic. The centroid is the
// per-row mean of a 2xN matrix of (x, y) coordinates via
// matutils.RowMean rather than two separate stat.Mean calls.
func meanSpread(w *world.World) float64 {
	var xs, ys []float64
	for _, pop := range w.Populations {
		for _, indiv := range pop.Individuals {
			if w.Unplaced(indiv) {
				continue
			}
			xs = append(xs, float64(indiv.X))
			ys = append(ys, float64(indiv.Y))
		}
	}
	if len(xs) == 0 {
		return 0
	}

	coords := mat.NewDense(2, len(xs), nil)
	coords.SetRow(0, xs)
	coords.SetRow(1, ys)
	centroid := matutils.RowMean(coords)
	cx, cy := centroid.AtVec(0), centroid.AtVec(1)

	dists := make([]float64, len(xs))
	for i := range xs {
		dx := xs[i] - cx
		dy := ys[i] - cy
		dists[i] = math.Hypot(dx, dy)
	}
	return stat.Mean(dists, nil)
}
