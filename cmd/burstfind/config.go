package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command-line flags for recordings processed in bulk.
// Flags set explicitly on the command line win over file values.
type fileConfig struct {
	SampleRate       float64 `yaml:"sample_rate"`
	Sensitivity      float64 `yaml:"sensitivity"`
	BinFactor        int     `yaml:"bin_factor"`
	PadSeconds       float64 `yaml:"pad_seconds"`
	SmoothingSeconds float64 `yaml:"smoothing_seconds"`
	WindowSeconds    float64 `yaml:"window_seconds"`
	Strategy         string  `yaml:"strategy"`
	Mode             string  `yaml:"mode"`
	MergeOverlaps    bool    `yaml:"merge_overlaps"`
	OutputDir        string  `yaml:"output_dir"`
	FillGaps         bool    `yaml:"fill_gaps"`
	ResampleRatio    float64 `yaml:"resample_ratio"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
