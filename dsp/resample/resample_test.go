package resample

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDecimateOutputLength(t *testing.T) {
	tests := []struct {
		n     int
		ratio float64
		want  int
	}{
		{100, 0.4, 40},
		{101, 0.4, 40},
		{10, 1.0, 10},
		{7, 0.5, 3},
		{3, 0.34, 1},
	}

	for _, tt := range tests {
		data := [][]float64{make([]float64, tt.n)}
		for i := range data[0] {
			data[0][i] = math.Sin(float64(i) / 5)
		}

		out, err := Decimate(data, tt.ratio)
		if err != nil {
			t.Fatalf("Decimate(n=%d, ratio=%v): %v", tt.n, tt.ratio, err)
		}

		if len(out[0]) != tt.want {
			t.Fatalf("n=%d ratio=%v: output length %d, want %d", tt.n, tt.ratio, len(out[0]), tt.want)
		}
	}
}

func TestDecimateConstantSignal(t *testing.T) {
	data := [][]float64{make([]float64, 50)}
	for i := range data[0] {
		data[0][i] = 3.5
	}

	out, err := Decimate(data, 0.4)
	if err != nil {
		t.Fatalf("Decimate: %v", err)
	}

	for i, v := range out[0] {
		if diff := v - 3.5; diff < -1e-9 || diff > 1e-9 {
			t.Fatalf("out[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestDecimateRejectsInvalidInput(t *testing.T) {
	data := [][]float64{{1, 2, 3}}

	for _, ratio := range []float64{0, -0.5, 1.5, math.NaN()} {
		if _, err := Decimate(data, ratio); !errors.Is(err, ErrInvalidRatio) {
			t.Fatalf("ratio %v: got %v, want ErrInvalidRatio", ratio, err)
		}
	}

	if _, err := Decimate(nil, 0.5); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty matrix: got %v, want ErrEmptyInput", err)
	}

	if _, err := Decimate([][]float64{{1}}, 0.4); !errors.Is(err, ErrTooShort) {
		t.Fatalf("sub-sample output: got %v, want ErrTooShort", err)
	}
}

func TestTimesEndpoints(t *testing.T) {
	base := time.Date(2025, 11, 23, 9, 30, 0, 0, time.UTC)

	in := make([]time.Time, 10)
	for i := range in {
		in[i] = base.Add(time.Duration(i) * 100 * time.Millisecond)
	}

	out, err := Times(in, 4)
	if err != nil {
		t.Fatalf("Times: %v", err)
	}

	if len(out) != 4 {
		t.Fatalf("length %d, want 4", len(out))
	}

	if !out[0].Equal(in[0]) {
		t.Fatalf("first = %v, want %v", out[0], in[0])
	}

	if !out[3].Equal(in[9]) {
		t.Fatalf("last = %v, want %v", out[3], in[9])
	}

	for i := 1; i < len(out); i++ {
		if out[i].Before(out[i-1]) {
			t.Fatalf("axis not monotonic at %d", i)
		}
	}
}

func TestTimesSingleSample(t *testing.T) {
	base := time.Date(2025, 11, 23, 9, 30, 0, 0, time.UTC)

	out, err := Times([]time.Time{base, base.Add(time.Second)}, 1)
	if err != nil {
		t.Fatalf("Times: %v", err)
	}

	if !out[0].Equal(base) {
		t.Fatalf("single sample = %v, want %v", out[0], base)
	}
}

func TestNextPowerOf2(t *testing.T) {
	for _, tt := range []struct{ in, want int }{
		{1, 1}, {2, 2}, {3, 4}, {5, 8}, {1000, 1024},
	} {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
