// Package matrixio parses the tab-separated numeric matrix files that
// feed the simulator: interaction strengths, spatial averaging radii,
// and the environmental scalar field. The grammar is lenient by
// design: unrecognized bytes are silently skipped rather than
// rejected.
package matrixio

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// LoadMatrix parses a rows x cols tab-separated numeric matrix from r
// into a freshly allocated row-major *mat.Dense.
//
// Grammar: rows are newline-separated, cells are tab-separated. Each
// cell is an optional leading '-', one or more decimal digits, and an
// optional '.' followed by more digits. A number terminates on a tab
// or newline only when the previous byte was a digit (so runs of
// tabs/newlines with no pending digit are tolerated, including a
// trailing tab before a newline). EOF with a pending digit stores the
// last cell. Any other byte is silently ignored: unrecognized bytes
// are always skipped, never rejected, and that choice is never
// changed mid-stream.
//
// rows/cols must match the caller's expectations; a row or column
// index produced by the scan that would fall outside [0,rows) x
// [0,cols) is a caller/input-shape error, reported as a returned
// error rather than silently truncated.
func LoadMatrix(r io.Reader, rows, cols int) (*mat.Dense, error) {
	dst := mat.NewDense(rows, cols, nil)
	if err := scan(r, rows, cols, dst.Set); err != nil {
		return nil, fmt.Errorf("matrixio: %w", err)
	}
	return dst, nil
}

// LoadEnvironment parses a height x width tab-separated numeric field
// from r using the same grammar as LoadMatrix. When r is nil the
// destination is zero-filled and returned, for a run with no
// environment file supplied.
func LoadEnvironment(r io.Reader, height, width int) (*mat.Dense, error) {
	dst := mat.NewDense(height, width, nil)
	if r == nil {
		return dst, nil
	}
	if err := scan(r, height, width, dst.Set); err != nil {
		return nil, fmt.Errorf("matrixio: %w", err)
	}
	return dst, nil
}

// lastClass tracks the role of the previous byte, consulted to decide
// whether a tab or newline terminates a pending number.
type lastClass int

const (
	classOther lastClass = iota
	classDigit
	classTab
)

// scan runs the shared digit-accumulator automaton over r, calling set
// for every cell that terminates inside [0,rows) x [0,cols). Whether a
// tab or newline flushes the pending accumulator depends only on the
// previous byte's class: a tab following a digit stores and advances
// the column; a tab following
// anything else is a no-op (so a doubled tab does not insert a blank
// column); a newline following a digit stores, advances the row, and
// resets the column; a newline following a tab advances the row
// without storing (tolerating a trailing tab); any other newline is a
// no-op.
func scan(r io.Reader, rows, cols int, set func(row, col int, v float64)) error {
	br := bufio.NewReader(r)

	row, col := 0, 0
	var value float64
	var sign float64 = 1
	var fracDigits int // 0 => integer part; >0 => n-th digit after '.'
	last := classOther

	store := func() error {
		if row >= rows || col >= cols {
			return fmt.Errorf("cell (%d, %d) out of range for (%d, %d) matrix",
				row, col, rows, cols)
		}
		set(row, col, sign*value)
		value = 0
		sign = 1
		fracDigits = 0
		return nil
	}

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			if last == classDigit {
				if serr := store(); serr != nil {
					return serr
				}
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case b >= '0' && b <= '9':
			d := float64(b - '0')
			if fracDigits == 0 {
				value = value*10 + d
			} else {
				value += d / pow10(fracDigits)
				fracDigits++
			}
			last = classDigit

		case b == '-':
			sign = -1
			last = classOther

		case b == '.':
			fracDigits++
			last = classOther

		case b == '\t':
			if last == classDigit {
				if err := store(); err != nil {
					return err
				}
				col++
			}
			last = classTab

		case b == '\n':
			if last == classDigit {
				if err := store(); err != nil {
					return err
				}
				row++
				col = 0
			} else if last == classTab {
				row++
				col = 0
			}
			last = classOther

		default:
			// Silently ignored, per the lenient-parsing policy: the byte
			// leaves last unchanged, so "1x\t" still stores 1.
		}
	}
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
