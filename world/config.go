package world

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Config describes a specific run: its population geometry, lattice
// parameters, and the matrices that drive the movement kernels. It is
// a plain struct of primitive fields with a single factory that
// assembles the concrete state.
type Config struct {
	NoPops, NoIndivs    int
	BoxWidth, BoxHeight int
	LVal                float64
	TotalTime           float64
	StartMeasureTime    float64
	Aijs, Deltas        *mat.Dense
	EnvData             *mat.Dense
	EnvWeight           float64
	PackingTerm         bool
	Kappa               float64
	Boundary            Boundary
}

// New validates cfg and assembles a World in the Initialized state,
// with every population and individual created (at their sentinel
// pre-placement positions) in stable order.
//
// Deltas has no meaningful zero value, yet the kernel dereferences it
// unconditionally, so it is a required field here: its absence is a
// ConfigError-shaped error, caught here rather than surfacing as a nil
// dereference deep in a kernel.
func New(cfg Config) (*World, error) {
	if cfg.NoPops <= 0 {
		return nil, fmt.Errorf("world: no_pops must be positive, got %d", cfg.NoPops)
	}
	if cfg.NoIndivs <= 0 {
		return nil, fmt.Errorf("world: no_indivs must be positive, got %d", cfg.NoIndivs)
	}
	if cfg.BoxWidth <= 0 || cfg.BoxHeight <= 0 {
		return nil, fmt.Errorf("world: box dimensions must be positive, got (%d, %d)",
			cfg.BoxWidth, cfg.BoxHeight)
	}
	if cfg.LVal <= 0 {
		return nil, fmt.Errorf("world: lattice spacing must be positive, got %v", cfg.LVal)
	}
	if cfg.Aijs == nil {
		return nil, fmt.Errorf("world: interaction matrix (aijs) is required")
	}
	if r, c := cfg.Aijs.Dims(); r != cfg.NoPops || c != cfg.NoPops {
		return nil, fmt.Errorf("world: aijs has shape (%d, %d), want (%d, %d)",
			r, c, cfg.NoPops, cfg.NoPops)
	}
	if cfg.Deltas == nil {
		return nil, fmt.Errorf("world: delta matrix (deltas) is required")
	}
	if r, c := cfg.Deltas.Dims(); r != cfg.NoPops || c != cfg.NoPops {
		return nil, fmt.Errorf("world: deltas has shape (%d, %d), want (%d, %d)",
			r, c, cfg.NoPops, cfg.NoPops)
	}
	if cfg.Kappa < 0 {
		return nil, fmt.Errorf("world: kappa must be non-negative, got %v", cfg.Kappa)
	}

	envData := cfg.EnvData
	if envData == nil {
		envData = mat.NewDense(cfg.BoxHeight, cfg.BoxWidth, nil)
	} else if r, c := envData.Dims(); r != cfg.BoxHeight || c != cfg.BoxWidth {
		return nil, fmt.Errorf("world: env_data has shape (%d, %d), want (%d, %d)",
			r, c, cfg.BoxHeight, cfg.BoxWidth)
	}

	w := &World{
		NoPops:           cfg.NoPops,
		NoIndivs:         cfg.NoIndivs,
		BoxWidth:         cfg.BoxWidth,
		BoxHeight:        cfg.BoxHeight,
		LVal:             cfg.LVal,
		TotalTime:        cfg.TotalTime,
		StartMeasureTime: cfg.StartMeasureTime,
		Aijs:             cfg.Aijs,
		Deltas:           cfg.Deltas,
		EnvData:          envData,
		EnvWeight:        cfg.EnvWeight,
		PackingTerm:      cfg.PackingTerm,
		Kappa:            cfg.Kappa,
		Boundary:         cfg.Boundary,
		state:            Initialized,
	}

	w.Populations = make([]*Population, cfg.NoPops)
	for p := 0; p < cfg.NoPops; p++ {
		indivs := make([]*Individual, cfg.NoIndivs)
		for i := 0; i < cfg.NoIndivs; i++ {
			indivs[i] = &Individual{
				Index: i,
				X:     cfg.BoxWidth,  // sentinel: not yet placed
				Y:     cfg.BoxHeight, // sentinel: not yet placed
			}
		}
		w.Populations[p] = &Population{Index: p, Individuals: indivs}
	}

	return w, nil
}
