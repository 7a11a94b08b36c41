package detect

import (
	"errors"
	"fmt"

	"github.com/rfsurvey/algo-burst/spectro"
)

// ErrInvalidConfig indicates a pipeline configuration that fails validation.
var ErrInvalidConfig = errors.New("detect: invalid configuration")

// MaskStrategy selects the outlier-masking stage.
type MaskStrategy int

const (
	// PerBandSigma thresholds each frequency channel at mean + 3·std.
	PerBandSigma MaskStrategy = iota
	// BinnedRobustClip bins the time axis and applies a median/MAD outlier test.
	BinnedRobustClip
)

// String returns the strategy name.
func (s MaskStrategy) String() string {
	switch s {
	case BinnedRobustClip:
		return "binned-robust-clip"
	default:
		return "per-band-sigma"
	}
}

// EdgeMode selects the edge-detection stage.
type EdgeMode int

const (
	// IntervalEdges emits (start, end) pairs at threshold crossings.
	IntervalEdges EdgeMode = iota
	// CenterMerge emits burst center indices thinned by the smoothing width.
	CenterMerge
)

// String returns the mode name.
func (m EdgeMode) String() string {
	switch m {
	case CenterMerge:
		return "center-merge"
	default:
		return "interval-edges"
	}
}

type config struct {
	strategy MaskStrategy
	mode     EdgeMode

	rate        float64 // raw time-axis samples per second
	sensitivity float64 // k in threshold = mean + k·std; 0 selects the mode default
	maskSigma   float64 // sigma multiplier for the masking stage
	binFactor   int

	smoothingSeconds float64
	padSeconds       float64
	windowSeconds    float64 // total width of center-mode windows

	mergeOverlaps bool
	transform     spectro.Transform
}

// Option configures the pipeline.
type Option func(*config)

// WithStrategy selects the outlier-masking strategy.
func WithStrategy(s MaskStrategy) Option {
	return func(cfg *config) {
		cfg.strategy = s
	}
}

// WithEdgeMode selects the edge-detection mode.
func WithEdgeMode(m EdgeMode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

// WithSampleRate sets the raw time-axis rate in samples per second.
func WithSampleRate(perSecond float64) Option {
	return func(cfg *config) {
		cfg.rate = perSecond
	}
}

// WithSensitivity sets the k multiplier in threshold = mean + k·std.
// Zero selects the mode default: 1 for interval edges, 3 for center merge.
func WithSensitivity(k float64) Option {
	return func(cfg *config) {
		cfg.sensitivity = k
	}
}

// WithBinFactor sets the number of contiguous time samples pooled per bin by
// the binned masking strategy.
func WithBinFactor(n int) Option {
	return func(cfg *config) {
		cfg.binFactor = n
	}
}

// WithSmoothingDuration sets the moving-average kernel duration in seconds.
func WithSmoothingDuration(seconds float64) Option {
	return func(cfg *config) {
		cfg.smoothingSeconds = seconds
	}
}

// WithPadDuration sets the context padding added before and after each
// interval-mode window, in seconds.
func WithPadDuration(seconds float64) Option {
	return func(cfg *config) {
		cfg.padSeconds = seconds
	}
}

// WithWindowDuration sets the total duration of center-mode windows in seconds.
func WithWindowDuration(seconds float64) Option {
	return func(cfg *config) {
		cfg.windowSeconds = seconds
	}
}

// WithMergeOverlaps enables coalescing of overlapping or abutting padded
// windows. Off by default: each detection keeps its own window.
func WithMergeOverlaps(merge bool) Option {
	return func(cfg *config) {
		cfg.mergeOverlaps = merge
	}
}

// WithTransform injects an opaque preprocessing transform (background
// subtraction, median filtering) run on a working copy before masking.
func WithTransform(t spectro.Transform) Option {
	return func(cfg *config) {
		cfg.transform = t
	}
}

func defaultConfig() config {
	return config{
		strategy:         PerBandSigma,
		mode:             IntervalEdges,
		rate:             4,
		maskSigma:        3,
		binFactor:        4,
		smoothingSeconds: 150,
		padSeconds:       60,
		windowSeconds:    300,
	}
}

func (c config) finalized() config {
	if c.sensitivity == 0 {
		if c.mode == CenterMerge {
			c.sensitivity = 3
		} else {
			c.sensitivity = 1
		}
	}

	return c
}

func (c config) validate() error {
	switch {
	case c.rate <= 0:
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	case c.binFactor < 1:
		return fmt.Errorf("%w: bin factor must be >= 1", ErrInvalidConfig)
	case c.smoothingSeconds <= 0:
		return fmt.Errorf("%w: smoothing duration must be positive", ErrInvalidConfig)
	case c.padSeconds < 0:
		return fmt.Errorf("%w: pad duration must be non-negative", ErrInvalidConfig)
	case c.windowSeconds <= 0:
		return fmt.Errorf("%w: window duration must be positive", ErrInvalidConfig)
	case c.sensitivity < 0:
		return fmt.Errorf("%w: sensitivity must be non-negative", ErrInvalidConfig)
	}

	return nil
}
