package detect

import (
	"math"

	"github.com/rfsurvey/algo-burst/stats/robust"
)

// fallbackQuantile is the clip percentile used by the robust strategy when a
// channel's MAD collapses to zero (more than half its bins share one value).
const fallbackQuantile = 0.995

// Masked is an outlier-isolated spectrogram. Surviving samples keep their
// amplitude; everything else is zero (per-band strategy) or NaN no-data
// (binned robust strategy). BinFactor records how many raw time samples each
// column represents, 1 when the axis was not binned.
type Masked struct {
	Data      [][]float64
	BinFactor int
}

// maskPerBand thresholds each channel independently at mean + sigma·std over
// the full time axis. Values at or below the threshold are zeroed. A
// zero-variance channel degrades to a mean-only threshold, so a constant
// channel is fully zeroed rather than producing NaN anywhere.
func maskPerBand(data [][]float64, sigma float64) Masked {
	out := make([][]float64, len(data))

	for i, row := range data {
		mean, std := robust.MeanStd(row)
		threshold := mean + sigma*std

		masked := make([]float64, len(row))
		for j, v := range row {
			if v > threshold {
				masked[j] = v
			}
		}

		out[i] = masked
	}

	return Masked{Data: out, BinFactor: 1}
}

// maskBinnedRobust pools binFactor contiguous columns into bins and applies a
// median/MAD outlier test per channel over the binned axis. Non-outliers
// become NaN, which downstream stages treat as "no data" rather than zero.
func maskBinnedRobust(data [][]float64, binFactor int, sigma float64) Masked {
	binned := binColumns(data, binFactor)

	for _, row := range binned {
		threshold := robustThreshold(row, sigma)

		for j, v := range row {
			if v <= threshold {
				row[j] = math.NaN()
			}
		}
	}

	return Masked{Data: binned, BinFactor: binFactor}
}

// robustThreshold returns the outlier threshold for one channel.
func robustThreshold(row []float64, sigma float64) float64 {
	med := robust.Median(row)

	if s := robust.Sigma(row); s > 0 {
		return med + sigma*s
	}

	// MAD collapsed to zero: more than half the bins share one value, as
	// quantized amplitudes do on quiet channels. Clip at an interpolated
	// high percentile, which falls below a lone spike. A constant channel
	// yields the shared value, which nothing exceeds.
	return robust.QuantileInterp(fallbackQuantile, row)
}

// binColumns pools runs of factor contiguous columns into their mean.
// A trailing partial run is dropped. factor 1 returns a plain copy.
func binColumns(data [][]float64, factor int) [][]float64 {
	cols := 0
	if len(data) > 0 {
		cols = len(data[0]) / factor
	}

	out := make([][]float64, len(data))

	for i, row := range data {
		binned := make([]float64, cols)
		for b := range binned {
			var sum float64
			for _, v := range row[b*factor : (b+1)*factor] {
				sum += v
			}

			binned[b] = sum / float64(factor)
		}

		out[i] = binned
	}

	return out
}
