// Command kcr runs a single chase-and-run lattice simulation and
// streams individual positions to standard output.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/kcr-sim/kcr/matrixio"
	"github.com/kcr-sim/kcr/placement"
	"github.com/kcr-sim/kcr/simrun"
	"github.com/kcr-sim/kcr/world"
)

func main() {
	if len(os.Args) == 1 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: kcr [-i <number-of-individuals> (default = 4)]")
	fmt.Fprintln(w, "           [-p <number-of-populations> (default = 2)]")
	fmt.Fprintln(w, "           [-tt <total-time> (default = 100000)]")
	fmt.Fprintln(w, "           [-smt <start-measure-time> (default = 0)]")
	fmt.Fprintln(w, "           [-af <aij-file>]")
	fmt.Fprintln(w, "           [-bw <box-width> (default = 50)]")
	fmt.Fprintln(w, "           [-bh <box-height> (default = 50)]")
	fmt.Fprintln(w, "           [-df <delta-file>]")
	fmt.Fprintln(w, "           [-l <lattice spacing> (default = 0.1)]")
	fmt.Fprintln(w, "           [-r <random seed> (default = 0, meaning clock-seed)]")
	fmt.Fprintln(w, "           [-ew <environment-weighting> (default = 0)]")
	fmt.Fprintln(w, "           [-sf <start-file> (default = random placement)]")
	fmt.Fprintln(w, "           [-ef <end-file> (default = none)]")
	fmt.Fprintln(w, "           [-edf <environmental-data-file> (default = none, zero-filled)]")
	fmt.Fprintln(w, "           [-pck <packing-term> (default = 0)]")
	fmt.Fprintln(w, "           [-kap <kappa> (default = 1)]")
	fmt.Fprintln(w, "           [-pbc <periodic-boundaries> (default = 0, reflective)]")
}

func run(args []string) error {
	fs := flag.NewFlagSet("kcr", flag.ContinueOnError)

	noIndivs := fs.Int("i", 4, "individuals per population")
	noPops := fs.Int("p", 2, "populations")
	totalTime := fs.Float64("tt", 100000, "total steps")
	startMeasureTime := fs.Float64("smt", 0, "measurement start step")
	aijPath := fs.String("af", "", "interaction-matrix source (required)")
	boxWidth := fs.Int("bw", 50, "box width")
	boxHeight := fs.Int("bh", 50, "box height")
	deltaPath := fs.String("df", "", "delta-matrix source")
	lVal := fs.Float64("l", 0.1, "lattice spacing")
	seed := fs.Uint64("r", 0, "RNG seed; 0 means clock-seed")
	envWeight := fs.Float64("ew", 0, "environment weight")
	startPath := fs.String("sf", "", "initial-positions source")
	endPath := fs.String("ef", "", "end-positions sink")
	envPath := fs.String("edf", "", "environment field source")
	packing := fs.Int("pck", 0, "packing term enabled (0 or 1)")
	kappa := fs.Float64("kap", 1, "packing strength kappa")
	periodic := fs.Int("pbc", 0, "periodic boundaries (0 or 1, default reflective)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *aijPath == "" {
		return fmt.Errorf("-af (interaction-matrix source) is required")
	}
	if *deltaPath == "" {
		return fmt.Errorf("-df (delta-matrix source) is required")
	}

	aijs, err := loadSquareMatrix(*aijPath, *noPops)
	if err != nil {
		return fmt.Errorf("loading aij file: %w", err)
	}
	deltas, err := loadSquareMatrix(*deltaPath, *noPops)
	if err != nil {
		return fmt.Errorf("loading delta file: %w", err)
	}

	var envData *mat.Dense
	if *envPath != "" {
		f, err := os.Open(*envPath)
		if err != nil {
			return fmt.Errorf("opening environment file: %w", err)
		}
		defer f.Close()
		envData, err = matrixio.LoadEnvironment(f, *boxHeight, *boxWidth)
		if err != nil {
			return fmt.Errorf("loading environment file: %w", err)
		}
	}

	boundary := world.Reflective
	if *periodic != 0 {
		boundary = world.Periodic
	}

	w, err := world.New(world.Config{
		NoPops:           *noPops,
		NoIndivs:         *noIndivs,
		BoxWidth:         *boxWidth,
		BoxHeight:        *boxHeight,
		LVal:             *lVal,
		TotalTime:        *totalTime,
		StartMeasureTime: *startMeasureTime,
		Aijs:             aijs,
		Deltas:           deltas,
		EnvData:          envData,
		EnvWeight:        *envWeight,
		PackingTerm:      *packing != 0,
		Kappa:            *kappa,
		Boundary:         boundary,
	})
	if err != nil {
		return err
	}

	effectiveSeed := *seed
	if effectiveSeed == 0 {
		effectiveSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(effectiveSeed))

	var placer placement.Placer
	if *startPath != "" {
		f, err := os.Open(*startPath)
		if err != nil {
			return fmt.Errorf("opening start file: %w", err)
		}
		defer f.Close()
		placer = &placement.FilePlacer{R: f}
	} else {
		placer = placement.NewRandomPlacer(rng)
	}
	if err := placer.Place(w); err != nil {
		return fmt.Errorf("placing individuals: %w", err)
	}

	var endFile *os.File
	if *endPath != "" {
		endFile, err = os.Create(*endPath)
		if err != nil {
			return fmt.Errorf("creating end file: %w", err)
		}
		defer endFile.Close()
	}

	opts := simrun.Options{Out: os.Stdout, Report: os.Stderr}
	if endFile != nil {
		opts.End = endFile
	}

	return simrun.Run(w, rng, opts)
}

func loadSquareMatrix(path string, n int) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return matrixio.LoadMatrix(f, n, n)
}
