// Command burstfind locates candidate bursts in spectrogram recordings and
// persists the confirmed ones.
//
// Usage:
//
//	burstfind [flags] <recording-prefix> ...
//
// Each recording prefix names three .npy files produced by the ingestion
// tooling: <prefix>.npy (frequency × time amplitude matrix),
// <prefix>.times.npy (epoch seconds, one per time sample), and
// <prefix>.freqs.npy (channel center frequencies in Hz).
//
// Examples:
//
//	burstfind data/20251123-station1
//	burstfind -strategy robust -bin 4 -merge data/20251123-station1
//	burstfind -yes -out confirmed data/*.npy prefixes...
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rfsurvey/algo-burst/confirm"
	"github.com/rfsurvey/algo-burst/detect"
	"github.com/rfsurvey/algo-burst/dsp/gapfill"
	"github.com/rfsurvey/algo-burst/dsp/resample"
	"github.com/rfsurvey/algo-burst/spectro"
	"github.com/rfsurvey/algo-burst/spectro/npy"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override)")
	rate := flag.Float64("rate", 4, "time-axis sample rate in samples per second")
	sensitivity := flag.Float64("k", 0, "threshold sensitivity multiplier (0 = mode default)")
	binFactor := flag.Int("bin", 4, "time bin factor for the robust strategy")
	pad := flag.Float64("pad", 60, "context padding per window side in seconds")
	smoothing := flag.Float64("smooth", 150, "moving-average duration in seconds")
	windowDur := flag.Float64("window", 300, "center-mode window duration in seconds")
	strategy := flag.String("strategy", "perband", "masking strategy: perband or robust")
	mode := flag.String("mode", "", "edge mode: interval or center (default follows strategy)")
	merge := flag.Bool("merge", false, "coalesce overlapping padded windows")
	outDir := flag.String("out", "confirmed_bursts", "output directory for confirmed bursts")
	fillGaps := flag.Bool("fill", false, "fill zero-valued gaps before detection")
	resampleRatio := flag.Float64("resample", 0, "decimate time axis by this ratio (0 = off)")
	acceptAll := flag.Bool("yes", false, "confirm every candidate without prompting")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: burstfind [flags] <recording-prefix> ...\n\n")
		fmt.Fprintf(os.Stderr, "Locates candidate bursts in spectrogram recordings.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "burstfind: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *configPath != "" {
		cfg, err := loadConfigFile(*configPath)
		if err != nil {
			logger.Fatal("config file", zap.String("path", *configPath), zap.Error(err))
		}

		// File values apply only where the flag was not given explicitly.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		if !set["rate"] && cfg.SampleRate > 0 {
			*rate = cfg.SampleRate
		}

		if !set["k"] && cfg.Sensitivity > 0 {
			*sensitivity = cfg.Sensitivity
		}

		if !set["bin"] && cfg.BinFactor > 0 {
			*binFactor = cfg.BinFactor
		}

		if !set["pad"] && cfg.PadSeconds > 0 {
			*pad = cfg.PadSeconds
		}

		if !set["smooth"] && cfg.SmoothingSeconds > 0 {
			*smoothing = cfg.SmoothingSeconds
		}

		if !set["window"] && cfg.WindowSeconds > 0 {
			*windowDur = cfg.WindowSeconds
		}

		if !set["strategy"] && cfg.Strategy != "" {
			*strategy = cfg.Strategy
		}

		if !set["mode"] && cfg.Mode != "" {
			*mode = cfg.Mode
		}

		if !set["merge"] {
			*merge = *merge || cfg.MergeOverlaps
		}

		if !set["out"] && cfg.OutputDir != "" {
			*outDir = cfg.OutputDir
		}

		if !set["fill"] {
			*fillGaps = *fillGaps || cfg.FillGaps
		}

		if !set["resample"] && cfg.ResampleRatio > 0 {
			*resampleRatio = cfg.ResampleRatio
		}
	}

	opts, err := pipelineOptions(*strategy, *mode, *rate, *sensitivity, *binFactor, *pad, *smoothing, *windowDur, *merge)
	if err != nil {
		logger.Fatal("flags", zap.Error(err))
	}

	pipeline, err := detect.New(opts...)
	if err != nil {
		logger.Fatal("pipeline", zap.Error(err))
	}

	store := &confirm.DirStore{Dir: *outDir}

	decider := confirm.AcceptAll()
	if !*acceptAll {
		decider = &promptDecider{in: bufio.NewReader(os.Stdin)}
	}

	failed := 0

	for _, prefix := range flag.Args() {
		log := logger.With(zap.String("recording", prefix))

		if err := processRecording(log, pipeline, decider, store, prefix, *fillGaps, *resampleRatio); err != nil {
			log.Error("recording failed", zap.Error(err))

			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func processRecording(log *zap.Logger, pipeline *detect.Pipeline, decider confirm.Decider, store confirm.Store, prefix string, fillGaps bool, ratio float64) error {
	s, err := loadRecording(prefix)
	if err != nil {
		return err
	}

	log.Info("loaded recording",
		zap.Int("channels", s.Channels()),
		zap.Int("samples", s.Samples()))

	if fillGaps {
		s.Data = gapfill.Fill(s.Data)
	}

	if ratio > 0 && ratio < 1 {
		s.Data, err = resample.Decimate(s.Data, ratio)
		if err != nil {
			return fmt.Errorf("resample: %w", err)
		}

		s.Times, err = resample.Times(s.Times, len(s.Data[0]))
		if err != nil {
			return fmt.Errorf("resample times: %w", err)
		}

		log.Info("decimated time axis", zap.Int("samples", s.Samples()))
	}

	windows, err := pipeline.Detect(s)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	log.Info("detection complete", zap.Int("candidates", len(windows)))

	if len(windows) == 0 {
		return nil
	}

	source := filepath.Base(prefix)

	res, err := confirm.Run(s, windows, decider, store, source, nil)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}

	for idx, werr := range res.Errors {
		log.Error("burst not persisted", zap.Int("candidate", idx), zap.Error(werr))
	}

	log.Info("run complete",
		zap.Int("confirmed", res.Confirmed()),
		zap.Int("persisted", len(res.Persisted)))

	return nil
}

func pipelineOptions(strategy, mode string, rate, k float64, bin int, pad, smoothSec, windowSec float64, merge bool) ([]detect.Option, error) {
	opts := []detect.Option{
		detect.WithSampleRate(rate),
		detect.WithSensitivity(k),
		detect.WithBinFactor(bin),
		detect.WithPadDuration(pad),
		detect.WithSmoothingDuration(smoothSec),
		detect.WithWindowDuration(windowSec),
		detect.WithMergeOverlaps(merge),
	}

	switch strategy {
	case "perband":
		opts = append(opts, detect.WithStrategy(detect.PerBandSigma))

		if mode == "" {
			mode = "center"
		}
	case "robust":
		opts = append(opts, detect.WithStrategy(detect.BinnedRobustClip))

		if mode == "" {
			mode = "interval"
		}
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	switch mode {
	case "interval":
		opts = append(opts, detect.WithEdgeMode(detect.IntervalEdges))
	case "center":
		opts = append(opts, detect.WithEdgeMode(detect.CenterMerge))
	default:
		return nil, fmt.Errorf("unknown edge mode %q", mode)
	}

	return opts, nil
}

// loadRecording reads the matrix and axis files for one recording prefix.
func loadRecording(prefix string) (*spectro.Spectrogram, error) {
	data, err := readMatrixFile(prefix + ".npy")
	if err != nil {
		return nil, err
	}

	seconds, err := readVectorFile(prefix + ".times.npy")
	if err != nil {
		return nil, err
	}

	freqs, err := readVectorFile(prefix + ".freqs.npy")
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, len(seconds))
	for i, sec := range seconds {
		times[i] = time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9)).UTC()
	}

	s := &spectro.Spectrogram{Data: data, Times: times, Freqs: freqs}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func readMatrixFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return npy.ReadMatrix(f)
}

func readVectorFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return npy.ReadVector(f)
}

// promptDecider asks y/n on stdin for each candidate.
type promptDecider struct {
	in *bufio.Reader
}

// Decide prompts for every candidate in order.
func (p *promptDecider) Decide(candidates []confirm.Candidate) ([]bool, error) {
	out := make([]bool, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		start := c.Slice.Times[0]
		end := c.Slice.Times[len(c.Slice.Times)-1]

		fmt.Printf("burst %d/%d: %s .. %s (%d samples, %.1f-%.1f MHz) confirm? [y/N] ",
			i+1, len(candidates),
			start.Format("15:04:05"), end.Format("15:04:05"),
			c.Window.Len(),
			c.Slice.Freqs[0]/1e6, c.Slice.Freqs[len(c.Slice.Freqs)-1]/1e6)

		line, err := p.in.ReadString('\n')
		if err != nil {
			return nil, err
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		out[i] = answer == "y" || answer == "yes"
	}

	return out, nil
}
