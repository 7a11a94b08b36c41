package spectro

import (
	"errors"
	"time"
)

var (
	// ErrEmpty indicates an empty spectrogram matrix.
	ErrEmpty = errors.New("spectro: empty spectrogram")
	// ErrRagged indicates rows of unequal length.
	ErrRagged = errors.New("spectro: ragged matrix rows")
	// ErrAxisMismatch indicates an axis whose length disagrees with the matrix shape.
	ErrAxisMismatch = errors.New("spectro: axis length mismatch")
	// ErrTimeOrder indicates a time axis that is not monotonically non-decreasing.
	ErrTimeOrder = errors.New("spectro: time axis not monotonically non-decreasing")
	// ErrBounds indicates a slice interval outside the time axis.
	ErrBounds = errors.New("spectro: slice interval out of bounds")
	// ErrShapeChanged indicates a transform that violated the same-shape contract.
	ErrShapeChanged = errors.New("spectro: transform changed matrix shape")
)

// Spectrogram is an amplitude matrix indexed by (frequency channel, time sample)
// with parallel absolute-time and channel-frequency axes.
type Spectrogram struct {
	// Data holds one row per frequency channel, one column per time sample.
	Data [][]float64
	// Times holds one absolute timestamp per time sample.
	Times []time.Time
	// Freqs holds one center frequency (Hz) per channel. Immutable after ingestion.
	Freqs []float64
}

// Transform is an opaque preprocessing step with a same-shape contract:
// the returned matrix must have exactly the input's dimensions.
type Transform func(data [][]float64) ([][]float64, error)

// Channels returns the number of frequency channels.
func (s *Spectrogram) Channels() int {
	return len(s.Data)
}

// Samples returns the number of time samples.
func (s *Spectrogram) Samples() int {
	if len(s.Data) == 0 {
		return 0
	}

	return len(s.Data[0])
}

// Validate checks matrix rectangularity and axis-length agreement.
func (s *Spectrogram) Validate() error {
	if len(s.Data) == 0 || len(s.Data[0]) == 0 {
		return ErrEmpty
	}

	cols := len(s.Data[0])
	for _, row := range s.Data[1:] {
		if len(row) != cols {
			return ErrRagged
		}
	}

	if len(s.Times) != cols || len(s.Freqs) != len(s.Data) {
		return ErrAxisMismatch
	}

	for i := 1; i < len(s.Times); i++ {
		if s.Times[i].Before(s.Times[i-1]) {
			return ErrTimeOrder
		}
	}

	return nil
}

// SliceTime returns a deep copy of the half-open time interval [start, end):
// the sliced matrix, its time-axis segment, and the (shared-length) frequency
// axis. The receiver is not aliased by the result.
func (s *Spectrogram) SliceTime(start, end int) (*Spectrogram, error) {
	if start < 0 || end > s.Samples() || start >= end {
		return nil, ErrBounds
	}

	data := make([][]float64, len(s.Data))
	for i, row := range s.Data {
		data[i] = append([]float64(nil), row[start:end]...)
	}

	return &Spectrogram{
		Data:  data,
		Times: append([]time.Time(nil), s.Times[start:end]...),
		Freqs: append([]float64(nil), s.Freqs...),
	}, nil
}

// Apply runs an opaque transform over the matrix and enforces the same-shape
// contract. A nil transform is the identity.
func (s *Spectrogram) Apply(t Transform) error {
	if t == nil {
		return nil
	}

	out, err := t(s.Data)
	if err != nil {
		return err
	}

	if len(out) != len(s.Data) {
		return ErrShapeChanged
	}

	for i, row := range out {
		if len(row) != len(s.Data[i]) {
			return ErrShapeChanged
		}
	}

	s.Data = out

	return nil
}

// CopyData returns a row-by-row deep copy of the amplitude matrix.
func CopyData(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = append([]float64(nil), row...)
	}

	return out
}
