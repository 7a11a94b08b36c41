package spectro

import (
	"errors"
	"testing"
	"time"
)

func testAxis(n int) []time.Time {
	base := time.Date(2025, 11, 23, 14, 0, 0, 0, time.UTC)

	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * 250 * time.Millisecond)
	}

	return out
}

func testSpectrogram(channels, samples int) *Spectrogram {
	data := make([][]float64, channels)
	for i := range data {
		data[i] = make([]float64, samples)
	}

	freqs := make([]float64, channels)
	for i := range freqs {
		freqs[i] = 20e6 + float64(i)*100e3
	}

	return &Spectrogram{Data: data, Times: testAxis(samples), Freqs: freqs}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spectrogram)
		want   error
	}{
		{"valid", func(*Spectrogram) {}, nil},
		{"empty", func(s *Spectrogram) { s.Data = nil }, ErrEmpty},
		{"ragged", func(s *Spectrogram) { s.Data[1] = s.Data[1][:3] }, ErrRagged},
		{"time axis short", func(s *Spectrogram) { s.Times = s.Times[:4] }, ErrAxisMismatch},
		{"freq axis short", func(s *Spectrogram) { s.Freqs = s.Freqs[:1] }, ErrAxisMismatch},
		{"time order", func(s *Spectrogram) { s.Times[3] = s.Times[0].Add(-time.Second) }, ErrTimeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpectrogram(4, 8)
			tt.mutate(s)

			if err := s.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSliceTimeDeepCopy(t *testing.T) {
	s := testSpectrogram(2, 10)
	s.Data[0][4] = 7

	cut, err := s.SliceTime(3, 6)
	if err != nil {
		t.Fatalf("SliceTime: %v", err)
	}

	if cut.Samples() != 3 || cut.Channels() != 2 {
		t.Fatalf("slice shape = %dx%d, want 2x3", cut.Channels(), cut.Samples())
	}

	if cut.Data[0][1] != 7 {
		t.Fatalf("slice value = %v, want 7", cut.Data[0][1])
	}

	if !cut.Times[0].Equal(s.Times[3]) {
		t.Fatalf("slice time axis misaligned")
	}

	// Mutating the slice must not write through to the parent.
	cut.Data[0][1] = -1
	if s.Data[0][4] != 7 {
		t.Fatal("SliceTime aliased the parent matrix")
	}
}

func TestSliceTimeBounds(t *testing.T) {
	s := testSpectrogram(2, 10)

	for _, tt := range []struct{ start, end int }{
		{-1, 5}, {0, 11}, {5, 5}, {6, 4},
	} {
		if _, err := s.SliceTime(tt.start, tt.end); !errors.Is(err, ErrBounds) {
			t.Fatalf("SliceTime(%d, %d) = %v, want ErrBounds", tt.start, tt.end, err)
		}
	}
}

func TestApplyShapeContract(t *testing.T) {
	s := testSpectrogram(3, 5)

	double := func(data [][]float64) ([][]float64, error) {
		out := CopyData(data)
		for _, row := range out {
			for i := range row {
				row[i] *= 2
			}
		}

		return out, nil
	}

	if err := s.Apply(double); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	truncate := func(data [][]float64) ([][]float64, error) {
		return data[:1], nil
	}

	if err := s.Apply(truncate); !errors.Is(err, ErrShapeChanged) {
		t.Fatalf("Apply(truncate) = %v, want ErrShapeChanged", err)
	}

	if err := s.Apply(nil); err != nil {
		t.Fatalf("Apply(nil) = %v, want nil", err)
	}
}
