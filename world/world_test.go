package world

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func validConfig() Config {
	return Config{
		NoPops:           2,
		NoIndivs:         3,
		BoxWidth:         10,
		BoxHeight:        10,
		LVal:             0.1,
		TotalTime:        100,
		StartMeasureTime: 0,
		Aijs:             mat.NewDense(2, 2, nil),
		Deltas:           mat.NewDense(2, 2, []float64{1, 1, 1, 1}),
	}
}

func TestNewBuildsStablePopulationOrder(t *testing.T) {
	w, err := New(validConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(w.Populations) != 2 {
		t.Fatalf("got %d populations, want 2", len(w.Populations))
	}
	for p, pop := range w.Populations {
		if pop.Index != p {
			t.Errorf("population %d has Index %d", p, pop.Index)
		}
		if len(pop.Individuals) != 3 {
			t.Fatalf("population %d has %d individuals, want 3", p, len(pop.Individuals))
		}
		for i, indiv := range pop.Individuals {
			if indiv.Index != i {
				t.Errorf("individual %d has Index %d", i, indiv.Index)
			}
			if !w.Unplaced(indiv) {
				t.Errorf("individual (%d,%d) should start unplaced", pop.Index, i)
			}
		}
	}
	if w.State() != Initialized {
		t.Errorf("state = %v, want Initialized", w.State())
	}
}

func TestNewRejectsMissingDeltas(t *testing.T) {
	cfg := validConfig()
	cfg.Deltas = nil
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for a missing delta matrix")
	}
}

func TestNewRejectsMissingAijs(t *testing.T) {
	cfg := validConfig()
	cfg.Aijs = nil
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for a missing interaction matrix")
	}
}

func TestNewZeroFillsEnvDataWhenAbsent(t *testing.T) {
	w, err := New(validConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r, c := w.EnvData.Dims()
	if r != w.BoxHeight || c != w.BoxWidth {
		t.Fatalf("EnvData dims = (%d, %d), want (%d, %d)", r, c, w.BoxHeight, w.BoxWidth)
	}
}

func TestOffsetReflectiveIsPlainSubtraction(t *testing.T) {
	w := &World{Boundary: Reflective}
	if got := w.Offset(8, 2, 10); got != 6 {
		t.Errorf("Offset = %d, want 6", got)
	}
}

func TestOffsetPeriodicWraps(t *testing.T) {
	w := &World{Boundary: Periodic}
	// box of length 10: other=9, self=0 -> plain diff 9, but minimum
	// image should be -1 (wrap around is shorter).
	if got := w.Offset(9, 0, 10); got != -1 {
		t.Errorf("Offset = %d, want -1", got)
	}
}

func TestWrapXPeriodic(t *testing.T) {
	w := &World{BoxWidth: 5, Boundary: Periodic}
	if got := w.WrapX(-1); got != 4 {
		t.Errorf("WrapX(-1) = %d, want 4", got)
	}
	if got := w.WrapX(5); got != 0 {
		t.Errorf("WrapX(5) = %d, want 0", got)
	}
}

func TestStateMachineTransitions(t *testing.T) {
	w, err := New(validConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.MarkPlaced()
	if w.State() != Placed {
		t.Fatalf("state = %v, want Placed", w.State())
	}
	w.MarkRunning()
	if w.State() != Running {
		t.Fatalf("state = %v, want Running", w.State())
	}
	w.CurrentTime = int(w.TotalTime)
	w.MarkTerminated()
	if w.State() != Terminated {
		t.Fatalf("state = %v, want Terminated", w.State())
	}
}

func TestCheckInvariantPanicsOutOfBounds(t *testing.T) {
	w := &World{BoxWidth: 5, BoxHeight: 5}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-bounds individual")
		}
	}()
	w.CheckInvariant(&Individual{X: 5, Y: 0})
}
