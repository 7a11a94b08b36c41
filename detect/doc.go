// Package detect locates candidate burst windows in a radio spectrogram.
//
// The pipeline runs a fixed sequence of stages over a frequency × time
// amplitude matrix:
//
//	mask outliers → collapse to flux → smooth → find edges → build windows
//
// Two masking strategies and two edge-detection modes are supported and freely
// combinable through a single parameterized [Pipeline]:
//
//   - [PerBandSigma]: per-channel mean + 3·std threshold, survivors pass
//     through, everything else is zeroed.
//   - [BinnedRobustClip]: time-binned median/MAD outlier test; non-outliers
//     become no-data (NaN), which is distinguishable from a true zero.
//   - [IntervalEdges]: rising/falling threshold crossings of the smoothed flux
//     yield (start, end) intervals.
//   - [CenterMerge]: above-threshold indices are greedily thinned to burst
//     centers at least one smoothing window apart.
//
// All window indices returned by [Pipeline.Detect] are in raw time-axis space,
// regardless of whether masking binned the axis internally.
//
// The pipeline is a synchronous, single-threaded batch computation. It never
// mutates the caller's spectrogram.
package detect
