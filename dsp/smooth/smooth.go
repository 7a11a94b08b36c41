package smooth

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidWidth indicates a non-positive kernel width.
	ErrInvalidWidth = errors.New("smooth: invalid kernel width")
	// ErrEmptyInput indicates an empty input signal.
	ErrEmptyInput = errors.New("smooth: empty input")
)

// MovingAverage applies a centered uniform kernel of the given width and
// returns a new slice of the same length. Samples beyond either boundary are
// treated as zero.
func MovingAverage(x []float64, width int) ([]float64, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}

	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(x)

	// prefix[i] = sum of x[:i]
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	// Centered alignment: the window for output i covers
	// [i - width + 1 + off, i + off] with off = (width-1)/2.
	off := (width - 1) / 2

	sums := make([]float64, n)
	for i := range sums {
		lo := i + off - width + 1
		if lo < 0 {
			lo = 0
		}

		hi := i + off + 1
		if hi > n {
			hi = n
		}

		sums[i] = prefix[hi] - prefix[lo]
	}

	out := make([]float64, n)
	vecmath.ScaleBlock(out, sums, 1/float64(width))

	return out, nil
}

// WindowWidth converts a real-world duration to a kernel width at the given
// axis rate, never returning less than one sample. The rate must be the rate
// of the axis actually being smoothed: a binned axis runs at rawRate/binFactor,
// not at the raw rate.
func WindowWidth(seconds, samplesPerSecond float64) int {
	w := int(seconds * samplesPerSecond)
	if w < 1 {
		return 1
	}

	return w
}
