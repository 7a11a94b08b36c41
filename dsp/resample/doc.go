// Package resample decimates the time axis of a spectrogram using band-limited
// FFT-domain filtering rather than stride skipping.
//
// Each frequency channel is low-pass filtered at the new Nyquist rate in the
// frequency domain and then sampled onto the decimated grid. The matching
// timestamp axis is regenerated as evenly spaced points between the original
// first and last timestamps, so axis and matrix stay aligned sample-for-sample.
//
// Decimation permanently replaces the time axis: downstream stages never see
// the pre-resample axis again.
package resample
