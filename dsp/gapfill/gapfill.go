package gapfill

// Fill returns a copy of data with zero-valued gaps filled per channel.
// Rows are frequency channels, columns are time samples.
func Fill(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = FillChannel(row)
	}

	return out
}

// FillChannel fills zero gaps in a single channel and returns a new slice.
// An all-zero channel is returned as an unmodified copy.
func FillChannel(row []float64) []float64 {
	out := append([]float64(nil), row...)

	first, last := -1, -1
	for i, v := range out {
		if v != 0 {
			if first < 0 {
				first = i
			}

			last = i
		}
	}

	if first < 0 {
		return out
	}

	// Leading and trailing gaps have a neighbor on one side only: extend flat.
	for i := 0; i < first; i++ {
		out[i] = out[first]
	}

	for i := last + 1; i < len(out); i++ {
		out[i] = out[last]
	}

	// Interior gaps interpolate linearly between the bounding valid samples.
	prev := first
	for i := first + 1; i <= last; i++ {
		if out[i] == 0 {
			continue
		}

		if i > prev+1 {
			lo, hi := out[prev], out[i]
			span := float64(i - prev)

			for j := prev + 1; j < i; j++ {
				frac := float64(j-prev) / span
				out[j] = lo + frac*(hi-lo)
			}
		}

		prev = i
	}

	return out
}
