// Package smooth provides the moving-average filter applied to the collapsed
// flux signal before threshold detection.
//
// The filter is a uniform kernel of configurable width applied as a centered,
// zero-padded convolution. Output length always equals input length, so sample
// indices keep their meaning across the smoothing stage; this alignment is what
// lets the edge detector's indices be mapped straight back onto the time axis.
//
// Boundary policy: samples outside the input are treated as zero. For even
// widths the kernel center sits at index width/2, matching the alignment of a
// same-mode discrete convolution.
package smooth
