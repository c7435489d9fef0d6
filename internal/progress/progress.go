// Package progress reports simulation progress and elapsed wall-clock
// time on stderr for a successful run.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Bar reports progress against w once per Increment call that crosses
// the reporting interval.
//
// Unlike a bar that animates independently of the work it tracks, this
// one redraws synchronously from the same call that advances the
// simulation clock: a single-threaded run has no room for a second
// goroutine driving an independent redraw tick.
type Bar struct {
	w        io.Writer
	width    int
	max      int
	current  int
	start    time.Time
	lastDraw time.Time
	every    time.Duration
}

// New returns a Bar that reports to w, reaching 100% after max calls
// to Increment.
func New(w io.Writer, max int) *Bar {
	return &Bar{
		w:     w,
		width: 40,
		max:   max,
		start: time.Now(),
		every: 500 * time.Millisecond,
	}
}

// Increment advances the bar by one step, redrawing it if at least
// `every` has elapsed since the last draw or this is the final step.
// note, if non-empty, is appended to the drawn line (e.g. a population
// spread statistic); it is only ever computed by the caller when a
// redraw is about to happen, so passing it unconditionally on every
// step would be wasteful — callers should gate its computation on
// ShouldDraw.
func (b *Bar) Increment(note string) {
	b.current++
	now := time.Now()
	if b.lastDraw.IsZero() || now.Sub(b.lastDraw) >= b.every || b.current >= b.max {
		b.draw(now, note)
		b.lastDraw = now
	}
}

// ShouldDraw reports whether the next Increment call is about to
// trigger a redraw, so callers can skip computing an expensive note
// on steps that would discard it.
func (b *Bar) ShouldDraw() bool {
	return b.lastDraw.IsZero() || time.Since(b.lastDraw) >= b.every || b.current+1 >= b.max
}

func (b *Bar) draw(now time.Time, note string) {
	frac := 0.0
	if b.max > 0 {
		frac = float64(b.current) / float64(b.max)
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(b.width))

	var bar strings.Builder
	bar.WriteByte('|')
	bar.WriteString(strings.Repeat("#", filled))
	bar.WriteString(strings.Repeat(" ", b.width-filled))
	bar.WriteByte('|')

	fmt.Fprintf(b.w, "\r%s %6.2f%% elapsed: %v", bar.String(), frac*100,
		now.Sub(b.start).Round(time.Millisecond))
	if note != "" {
		fmt.Fprintf(b.w, " | %s", note)
	}
}

// Close draws a final, complete frame and moves to a fresh line.
func (b *Bar) Close() {
	b.current = b.max
	b.draw(time.Now(), "")
	fmt.Fprintln(b.w)
}
