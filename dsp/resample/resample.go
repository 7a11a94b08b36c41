package resample

import (
	"errors"
	"fmt"
	"math"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrInvalidRatio indicates a ratio outside (0, 1].
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrTooShort indicates an input whose decimated length would be < 1.
	ErrTooShort = errors.New("resample: decimated length below one sample")
	// ErrEmptyInput indicates an empty matrix or axis.
	ErrEmptyInput = errors.New("resample: empty input")
)

// OutputLen returns the decimated length floor(n * ratio) for a valid ratio.
func OutputLen(n int, ratio float64) int {
	return int(float64(n) * ratio)
}

// Decimate resamples every channel of data (rows = channels, columns = time)
// to floor(cols * ratio) samples. The ratio is newRate/oldRate and must lie in
// (0, 1].
func Decimate(data [][]float64, ratio float64) ([][]float64, error) {
	if ratio <= 0 || ratio > 1 || math.IsNaN(ratio) {
		return nil, ErrInvalidRatio
	}

	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(data[0])

	newLen := OutputLen(n, ratio)
	if newLen < 1 {
		return nil, ErrTooShort
	}

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("resample: fft plan: %w", err)
	}

	out := make([][]float64, len(data))

	buf := make([]complex128, fftSize)
	for i, row := range data {
		if len(row) != n {
			return nil, fmt.Errorf("%w: ragged rows", ErrEmptyInput)
		}

		ch, err := decimateChannel(plan, buf, row, newLen)
		if err != nil {
			return nil, err
		}

		out[i] = ch
	}

	return out, nil
}

// decimateChannel low-pass filters one channel at the decimated Nyquist rate
// and samples it onto the new grid. buf is fftSize scratch, reused per channel.
func decimateChannel(plan *algofft.Plan[complex128], buf []complex128, x []float64, newLen int) ([]float64, error) {
	n := len(x)
	fftSize := len(buf)

	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	// Padding ramps from the last sample back to the first so the circular
	// extension stays continuous and constant signals survive exactly.
	if pad := fftSize - n; pad > 0 {
		lo, hi := x[n-1], x[0]
		for i := 0; i < pad; i++ {
			frac := float64(i+1) / float64(pad+1)
			buf[n+i] = complex(lo+frac*(hi-lo), 0)
		}
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("resample: forward FFT: %w", err)
	}

	// Zero every bin at or above the decimated Nyquist frequency.
	cutoff := float64(newLen) / (2 * float64(n))
	for k := range buf {
		mirror := fftSize - k
		if mirror > k {
			mirror = k
		}

		if float64(mirror)/float64(fftSize) >= cutoff {
			buf[k] = 0
		}
	}

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("resample: inverse FFT: %w", err)
	}

	out := make([]float64, newLen)
	if newLen == 1 {
		out[0] = real(buf[0])

		return out, nil
	}

	step := float64(n-1) / float64(newLen-1)
	for i := range out {
		pos := float64(i) * step

		j := int(pos)
		if j >= n-1 {
			out[i] = real(buf[n-1])

			continue
		}

		frac := pos - float64(j)
		out[i] = (1-frac)*real(buf[j]) + frac*real(buf[j+1])
	}

	return out, nil
}

// Times regenerates a timestamp axis of newLen evenly spaced points between
// the first and last input timestamps.
func Times(times []time.Time, newLen int) ([]time.Time, error) {
	if len(times) == 0 {
		return nil, ErrEmptyInput
	}

	if newLen < 1 {
		return nil, ErrTooShort
	}

	out := make([]time.Time, newLen)
	if newLen == 1 {
		out[0] = times[0]

		return out, nil
	}

	first := times[0]
	span := float64(times[len(times)-1].Sub(first))

	for i := range out {
		frac := float64(i) / float64(newLen-1)
		out[i] = first.Add(time.Duration(frac * span))
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
