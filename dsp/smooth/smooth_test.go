package smooth

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestMovingAverageWidthOneIdentity(t *testing.T) {
	in := []float64{3, -1, 4, 1, 5}

	out, err := MovingAverage(in, 1)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestMovingAverageOddWidthCentered(t *testing.T) {
	in := []float64{0, 0, 9, 0, 0}

	out, err := MovingAverage(in, 3)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	want := []float64{0, 3, 3, 3, 0}
	for i := range want {
		if !almostEqual(out[i], want[i]) {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestMovingAverageEvenWidthAlignment(t *testing.T) {
	// Same-mode alignment for width 4: window of output i is [i-2, i+1].
	in := []float64{1, 1, 1, 1, 1, 1}

	out, err := MovingAverage(in, 4)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	want := []float64{0.5, 0.75, 1, 1, 1, 0.75}
	for i := range want {
		if !almostEqual(out[i], want[i]) {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestMovingAveragePreservesLength(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		for _, w := range []int{1, 2, 5, 150} {
			in := make([]float64, n)

			out, err := MovingAverage(in, w)
			if err != nil {
				t.Fatalf("n=%d w=%d: %v", n, w, err)
			}

			if len(out) != n {
				t.Fatalf("n=%d w=%d: output length %d", n, w, len(out))
			}
		}
	}
}

func TestMovingAverageErrors(t *testing.T) {
	if _, err := MovingAverage([]float64{1}, 0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("zero width: got %v", err)
	}

	if _, err := MovingAverage(nil, 3); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty input: got %v", err)
	}
}

func TestWindowWidth(t *testing.T) {
	tests := []struct {
		seconds float64
		rate    float64
		want    int
	}{
		{150, 4, 600},  // raw axis
		{150, 0.5, 75}, // binned axis at rawRate/binFactor
		{0.1, 4, 1},    // never below one sample
	}

	for _, tt := range tests {
		if got := WindowWidth(tt.seconds, tt.rate); got != tt.want {
			t.Fatalf("WindowWidth(%v, %v) = %d, want %d", tt.seconds, tt.rate, got, tt.want)
		}
	}
}
