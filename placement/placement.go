// Package placement assigns starting lattice positions to every
// individual in a world, either by sampling uniformly at random or by
// reading them from a file.
package placement

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/exp/rand"

	"github.com/kcr-sim/kcr/world"
)

// Placer assigns a starting position to every individual in w, in
// stable population-then-individual order, and marks w Placed.
type Placer interface {
	Place(w *world.World) error
}

// RandomPlacer draws each individual's starting (x, y) uniformly from
// the box. It takes the caller's *rand.Rand rather than owning a seed
// itself: a single sequential RNG stream has to be shared by placement
// and every movement-kernel call for the life of a run, so the CLI
// constructs one rand.Rand and threads it through both this placer and
// the movement kernels.
type RandomPlacer struct {
	Rand *rand.Rand
}

// NewRandomPlacer returns a RandomPlacer drawing from rng.
func NewRandomPlacer(rng *rand.Rand) *RandomPlacer {
	return &RandomPlacer{Rand: rng}
}

// Place implements Placer.
func (p *RandomPlacer) Place(w *world.World) error {
	if w.State() != world.Initialized {
		return fmt.Errorf("placement: Place called in state %v, want Initialized", w.State())
	}
	for _, pop := range w.Populations {
		for _, indiv := range pop.Individuals {
			indiv.X = p.Rand.Intn(w.BoxWidth)
			indiv.Y = p.Rand.Intn(w.BoxHeight)
		}
	}
	w.MarkPlaced()
	return nil
}

// FilePlacer reads starting positions from a stream of whitespace
// (tab or newline) separated integers, in the order
// x00 y00 x01 y01 ... x0,n y0,n x10 y10 ..., i.e. population-major,
// individual-minor.
//
// An early EOF leaves the remaining individuals at their sentinel
// (unplaced) positions; that is a caller error to detect upstream,
// not something FilePlacer itself reports as
// a failure, so Place returns successfully in that case.
type FilePlacer struct {
	R io.Reader
}

// Place implements Placer.
func (f *FilePlacer) Place(w *world.World) error {
	if w.State() != world.Initialized {
		return fmt.Errorf("placement: Place called in state %v, want Initialized", w.State())
	}
	br := bufio.NewReader(f.R)
	for _, pop := range w.Populations {
		for _, indiv := range pop.Individuals {
			x, ok, err := scanInt(br)
			if err != nil {
				return fmt.Errorf("placement: %w", err)
			}
			if !ok {
				w.MarkPlaced()
				return nil
			}
			y, ok, err := scanInt(br)
			if err != nil {
				return fmt.Errorf("placement: %w", err)
			}
			if !ok {
				w.MarkPlaced()
				return nil
			}
			indiv.X, indiv.Y = x, y
		}
	}
	w.MarkPlaced()
	return nil
}

// scanInt reads the next tab/newline-delimited integer from br. ok is
// false (with no error) on a clean EOF before any digit is seen.
func scanInt(br *bufio.Reader) (value int, ok bool, err error) {
	sign := 1
	seenDigit := false
	for {
		b, rerr := br.ReadByte()
		if rerr == io.EOF {
			return value * sign, seenDigit, nil
		}
		if rerr != nil {
			return 0, false, rerr
		}
		switch {
		case b >= '0' && b <= '9':
			value = value*10 + int(b-'0')
			seenDigit = true
		case b == '-' && !seenDigit:
			sign = -1
		case b == '\t' || b == '\n':
			if seenDigit {
				return value * sign, true, nil
			}
			// Skip leading/repeated separators.
		default:
			// Silently ignored, matching the matrix grammar's policy.
		}
	}
}
