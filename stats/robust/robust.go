// Package robust provides outlier-resistant statistics for heavy-tailed
// amplitude distributions.
//
// Radio spectrogram noise is far from Gaussian: interference spikes drag both
// the mean and the standard deviation upward, which makes plain sigma
// thresholds blind to real events. The estimators here (median, MAD,
// percentiles) ignore the tails and are the basis of the robust-clip masking
// strategy.
package robust

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// madNormal scales MAD to estimate the standard deviation of a normal
// distribution: 1/Phi^-1(0.75).
const madNormal = 0.6745

// Median returns the median of x, or 0 for empty input.
func Median(x []float64) float64 {
	return Quantile(0.5, x)
}

// Quantile returns the empirical p-quantile of x, or 0 for empty input.
// The input is not modified.
func Quantile(p float64, x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// QuantileInterp returns the p-quantile of x with the empirical CDF linearly
// interpolated between sample points, or 0 for empty input. Unlike Quantile
// the result can fall between two sample values. The input is not modified.
func QuantileInterp(p float64, x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// MAD returns the median absolute deviation of x around its median.
func MAD(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	med := Median(x)

	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - med)
	}

	return Median(dev)
}

// Sigma returns the MAD-based robust standard deviation estimate
// MAD / 0.6745. A constant input yields 0.
func Sigma(x []float64) float64 {
	return MAD(x) / madNormal
}

// MeanStd returns the mean and population standard deviation of x.
// Both are 0 for empty input; a constant input yields a zero deviation,
// never NaN.
func MeanStd(x []float64) (mean, std float64) {
	if len(x) == 0 {
		return 0, 0
	}

	return stat.Mean(x, nil), stat.PopStdDev(x, nil)
}
