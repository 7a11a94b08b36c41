package detect

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Collapse reduces a masked spectrogram to a flux signal: the mean over the
// frequency axis at each time index. No-data markers (NaN) count as zero for
// this stage only. Pure reduction, no state.
func Collapse(m Masked) []float64 {
	if len(m.Data) == 0 {
		return nil
	}

	n := len(m.Data[0])

	acc := make([]float64, n)
	scratch := make([]float64, n)

	for _, row := range m.Data {
		for j, v := range row {
			if math.IsNaN(v) {
				scratch[j] = 0
			} else {
				scratch[j] = v
			}
		}

		vecmath.AddBlockInPlace(acc, scratch)
	}

	out := make([]float64, n)
	vecmath.ScaleBlock(out, acc, 1/float64(len(m.Data)))

	return out
}
