package detect

import (
	"errors"
	"fmt"

	"github.com/rfsurvey/algo-burst/dsp/smooth"
	"github.com/rfsurvey/algo-burst/spectro"
)

// ErrEmptyInput indicates a spectrogram with no usable samples.
var ErrEmptyInput = errors.New("detect: empty spectrogram")

// Pipeline runs the burst-detection stages with a fixed configuration.
// A single Pipeline can process any number of spectrograms; per-recording
// parameters such as the sample rate belong to the configuration, so
// recordings at different rates use separate pipelines.
type Pipeline struct {
	cfg config
}

// New creates a pipeline from the given options.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg}, nil
}

// Strategy returns the configured masking strategy.
func (p *Pipeline) Strategy() MaskStrategy {
	return p.cfg.strategy
}

// Mode returns the configured edge-detection mode.
func (p *Pipeline) Mode() EdgeMode {
	return p.cfg.mode
}

// Sensitivity returns the threshold multiplier k in effect.
func (p *Pipeline) Sensitivity() float64 {
	return p.cfg.sensitivity
}

// Detect locates candidate burst windows in the spectrogram. Returned windows
// are in raw time-axis index space, ordered by start, each satisfying
// 0 <= Start < End <= s.Samples(). The input is not mutated.
func (p *Pipeline) Detect(s *spectro.Spectrogram) ([]Window, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rawLen := s.Samples()

	work := &spectro.Spectrogram{
		Data:  spectro.CopyData(s.Data),
		Times: s.Times,
		Freqs: s.Freqs,
	}

	if err := work.Apply(p.cfg.transform); err != nil {
		return nil, fmt.Errorf("detect: transform: %w", err)
	}

	var masked Masked

	switch p.cfg.strategy {
	case BinnedRobustClip:
		if rawLen < p.cfg.binFactor {
			return nil, fmt.Errorf("%w: %d samples is less than one bin", ErrEmptyInput, rawLen)
		}

		masked = maskBinnedRobust(work.Data, p.cfg.binFactor, p.cfg.maskSigma)
	default:
		masked = maskPerBand(work.Data, p.cfg.maskSigma)
	}

	flux := Collapse(masked)

	// The smoothing kernel must be sized at the rate of the axis in use; a
	// binned axis runs slower than the raw axis by the bin factor.
	effRate := p.cfg.rate / float64(masked.BinFactor)
	width := smooth.WindowWidth(p.cfg.smoothingSeconds, effRate)

	smoothed, err := smooth.MovingAverage(flux, width)
	if err != nil {
		return nil, fmt.Errorf("detect: smoothing: %w", err)
	}

	switch p.cfg.mode {
	case CenterMerge:
		centers := Centers(smoothed, p.cfg.sensitivity, width)
		windowWidth := int(p.cfg.windowSeconds * p.cfg.rate)

		return buildCenterWindows(centers, masked.BinFactor, windowWidth, rawLen), nil
	default:
		intervals := Intervals(smoothed, p.cfg.sensitivity)
		pad := int(p.cfg.padSeconds * p.cfg.rate)

		return buildIntervalWindows(intervals, masked.BinFactor, pad, rawLen, p.cfg.mergeOverlaps), nil
	}
}
