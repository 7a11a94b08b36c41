package detect

import (
	"fmt"
	"time"
)

// Window is a half-open [Start, End) index interval into the raw time axis.
type Window struct {
	Start int
	End   int
}

// Len returns the window length in samples.
func (w Window) Len() int {
	return w.End - w.Start
}

// Overlaps reports whether the half-open intervals intersect or abut.
func (w Window) Overlaps(o Window) bool {
	return w.Start <= o.End && o.Start <= w.End
}

// Times returns the absolute start and end timestamps of the window on the
// given axis. The end timestamp is the last covered sample's.
func (w Window) Times(axis []time.Time) (start, end time.Time) {
	return axis[w.Start], axis[w.End-1]
}

// String formats the window for logs.
func (w Window) String() string {
	return fmt.Sprintf("[%d, %d)", w.Start, w.End)
}

// buildIntervalWindows translates detector intervals from (possibly binned)
// index space to raw index space, pads both sides, and clamps to
// [0, rawLen]. Windows that collapse to nothing after clamping are dropped.
// Every returned window satisfies 0 <= Start < End <= rawLen.
func buildIntervalWindows(raw []Window, binFactor, padSamples, rawLen int, merge bool) []Window {
	out := make([]Window, 0, len(raw))

	for _, w := range raw {
		start := w.Start*binFactor - padSamples
		if start < 0 {
			start = 0
		}

		end := w.End*binFactor + padSamples
		if end > rawLen {
			end = rawLen
		}

		if start < end {
			out = append(out, Window{Start: start, End: end})
		}
	}

	if merge {
		out = mergeWindows(out)
	}

	return out
}

// buildCenterWindows expands burst centers to fixed-width windows
// [center-half, center+half) clamped to [0, rawLen].
func buildCenterWindows(centers []int, binFactor, width, rawLen int) []Window {
	half := width / 2

	out := make([]Window, 0, len(centers))

	for _, c := range centers {
		center := c * binFactor

		start := center - half
		if start < 0 {
			start = 0
		}

		end := center + half
		if end > rawLen {
			end = rawLen
		}

		if start < end {
			out = append(out, Window{Start: start, End: end})
		}
	}

	return out
}

// mergeWindows coalesces overlapping or abutting windows. Input must be
// ordered by Start, which the edge detector guarantees.
func mergeWindows(ws []Window) []Window {
	if len(ws) < 2 {
		return ws
	}

	out := ws[:1]

	for _, w := range ws[1:] {
		last := &out[len(out)-1]
		if last.Overlaps(w) {
			if w.End > last.End {
				last.End = w.End
			}

			continue
		}

		out = append(out, w)
	}

	return out
}
