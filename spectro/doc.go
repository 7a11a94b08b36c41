// Package spectro defines the time-frequency data model shared by the
// burst-detection pipeline.
//
// A [Spectrogram] is a rectangular amplitude matrix with one row per frequency
// channel and one column per time sample, plus parallel time and frequency
// axes. The matrix shape is fixed once loaded; every pipeline stage preserves
// the time axis length except resampling, which replaces the axis wholesale.
//
// Opaque preprocessing steps (background subtraction, median filtering) are
// modeled as a [Transform]: same-shape matrix in, same-shape matrix out. The
// pipeline never needs to know what a transform does, only that the shape
// contract holds.
package spectro
