package detect

import "github.com/rfsurvey/algo-burst/stats/robust"

// Threshold returns mean + k·std of the smoothed flux. A zero-variance signal
// degrades to a mean-only threshold, which nothing exceeds.
func Threshold(x []float64, k float64) float64 {
	mean, std := robust.MeanStd(x)

	return mean + k*std
}

// Intervals finds contiguous regions of x above mean + k·std and returns them
// as ordered, non-overlapping (start, end) index pairs.
func Intervals(x []float64, k float64) []Window {
	return IntervalsAbove(x, Threshold(x, k))
}

// IntervalsAbove finds contiguous regions where x is strictly above the given
// threshold. A region still open at the end of the signal is closed at len(x);
// one already open at the start begins at 0.
func IntervalsAbove(x []float64, threshold float64) []Window {
	var (
		out  []Window
		open bool
		from int
	)

	for i, v := range x {
		above := v > threshold

		switch {
		case above && !open:
			from, open = i, true
		case !above && open:
			out = append(out, Window{Start: from, End: i})
			open = false
		}
	}

	if open {
		out = append(out, Window{Start: from, End: len(x)})
	}

	return out
}

// Centers finds burst center indices in x above mean + k·std, keeping a new
// center only when it is at least minGap samples past the previous one.
func Centers(x []float64, k float64, minGap int) []int {
	return CentersAbove(x, Threshold(x, k), minGap)
}

// CentersAbove scans above-threshold indices in ascending order and greedily
// thins them: an index is accepted only when it lies at least minGap samples
// past the last accepted index. Adjacent detections of one event collapse to
// its leading edge.
func CentersAbove(x []float64, threshold float64, minGap int) []int {
	var out []int

	last := -minGap - 1

	for i, v := range x {
		if v <= threshold {
			continue
		}

		if i-last >= minGap {
			out = append(out, i)
			last = i
		}
	}

	return out
}
