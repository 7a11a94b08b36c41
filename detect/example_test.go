package detect_test

import (
	"fmt"
	"time"

	"github.com/rfsurvey/algo-burst/detect"
	"github.com/rfsurvey/algo-burst/spectro"
)

func ExamplePipeline_Detect() {
	// A quiet recording with one strong event in samples 60..63.
	const channels, samples = 4, 120

	data := make([][]float64, channels)
	for i := range data {
		data[i] = make([]float64, samples)
		for j := 60; j < 64; j++ {
			data[i][j] = 9
		}
	}

	base := time.Date(2025, 11, 23, 10, 0, 0, 0, time.UTC)

	times := make([]time.Time, samples)
	for j := range times {
		times[j] = base.Add(time.Duration(j) * 250 * time.Millisecond)
	}

	freqs := make([]float64, channels)
	for i := range freqs {
		freqs[i] = 20e6 + float64(i)*100e3
	}

	s := &spectro.Spectrogram{Data: data, Times: times, Freqs: freqs}

	p, err := detect.New(
		detect.WithSampleRate(4),
		detect.WithSmoothingDuration(2),
		detect.WithPadDuration(1),
	)
	if err != nil {
		panic(err)
	}

	windows, err := p.Detect(s)
	if err != nil {
		panic(err)
	}

	for _, w := range windows {
		start, _ := w.Times(times)
		fmt.Printf("burst at %s, %d samples\n", start.Format("15:04:05"), w.Len())
	}
	// Output:
	// burst at 10:00:13, 17 samples
}
