package matrixio

import (
	"strings"
	"testing"
)

func TestLoadMatrixBasic(t *testing.T) {
	in := "1\t2\t3\n4\t5\t6\n7\t8\t9\n"
	m, err := LoadMatrix(strings.NewReader(in), 3, 3)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	want := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if got := m.At(r, c); got != want[r][c] {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestLoadMatrixNegativeAndFraction(t *testing.T) {
	in := "-1.5\t2.25\n0\t-3\n"
	m, err := LoadMatrix(strings.NewReader(in), 2, 2)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	want := [][]float64{{-1.5, 2.25}, {0, -3}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := m.At(r, c); got != want[r][c] {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestLoadMatrixTrailingTabTolerated(t *testing.T) {
	in := "1\t2\t\n3\t4\t\n"
	m, err := LoadMatrix(strings.NewReader(in), 2, 2)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	want := [][]float64{{1, 2}, {3, 4}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := m.At(r, c); got != want[r][c] {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestLoadMatrixEOFWithPendingDigit(t *testing.T) {
	in := "1\t2\n3\t4"
	m, err := LoadMatrix(strings.NewReader(in), 2, 2)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	if got := m.At(1, 1); got != 4 {
		t.Errorf("At(1,1) = %v, want 4", got)
	}
}

func TestLoadMatrixIgnoresGarbageBytes(t *testing.T) {
	in := "1x\t2y\n3#\t4!\n"
	m, err := LoadMatrix(strings.NewReader(in), 2, 2)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	want := [][]float64{{1, 2}, {3, 4}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := m.At(r, c); got != want[r][c] {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}

func TestLoadMatrixDoubledTabDoesNotShiftColumn(t *testing.T) {
	// A doubled tab is a no-op (prev byte is a tab, not a digit), so the
	// next number lands in the column right after the first, not two
	// columns over.
	in := "1\t\t2\n"
	m, err := LoadMatrix(strings.NewReader(in), 1, 2)
	if err != nil {
		t.Fatalf("LoadMatrix: %v", err)
	}
	if got := m.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %v, want 1", got)
	}
	if got := m.At(0, 1); got != 2 {
		t.Errorf("At(0,1) = %v, want 2", got)
	}
}

func TestLoadMatrixOutOfRangeIsError(t *testing.T) {
	in := "1\t2\t3\n"
	if _, err := LoadMatrix(strings.NewReader(in), 1, 2); err == nil {
		t.Fatal("expected an error for an over-wide row, got nil")
	}
}

func TestLoadEnvironmentZeroFillsWhenAbsent(t *testing.T) {
	m, err := LoadEnvironment(nil, 3, 4)
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	r, c := m.Dims()
	if r != 3 || c != 4 {
		t.Fatalf("Dims() = (%d, %d), want (3, 4)", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				t.Errorf("At(%d,%d) = %v, want 0", i, j, v)
			}
		}
	}
}

func TestLoadEnvironmentRoundTrip(t *testing.T) {
	in := "0.1\t0.2\n0.3\t0.4\n"
	m, err := LoadEnvironment(strings.NewReader(in), 2, 2)
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	want := [][]float64{{0.1, 0.2}, {0.3, 0.4}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := m.At(r, c); got-want[r][c] > 1e-9 || want[r][c]-got > 1e-9 {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}
}
