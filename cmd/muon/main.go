// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command muon renders a scene file (spec.md §6) to a PNG. Usage:
//
//	muon -scene cornell.scene -output cornell.png
//
// An optional -config sidecar sets the flags a deployment wants checked
// into source control (acceleration strategy, parallelism, stats logging,
// log format) without having to type them on every invocation; explicit
// flags on the command line always take precedence over the file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/galvanizedlogic/muon/driver"
	"github.com/galvanizedlogic/muon/scene"
)

// fileConfig is the optional -config YAML sidecar, per SPEC_FULL.md's
// DOMAIN STACK section.
type fileConfig struct {
	Acceleration      string `yaml:"acceleration"`
	PartitionStrategy string `yaml:"partition_strategy"`
	Parallelism       int    `yaml:"parallelism"`
	Stats             bool   `yaml:"stats"`
	LogFormat         string `yaml:"log_format"`
}

func main() {
	scenePath := flag.String("scene", "", "path to a scene file (required)")
	configPath := flag.String("config", "", "optional YAML sidecar of render defaults")
	output := flag.String("output", "", "output PNG path; overrides the scene file's output command")
	acceleration := flag.String("acceleration", "", "accelerator: linear or bvh (default bvh)")
	partitionStrategy := flag.String("partition_strategy", "", "BVH split strategy: uniform, midpoint, or sah")
	parallelism := flag.Int("parallelism", 0, "worker goroutines; 0 means runtime.NumCPU()")
	statsFlag := flag.Bool("stats", false, "log aggregate ray/intersection counters after rendering")
	logFormat := flag.String("log_format", "text", "log handler: text or json")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "muon: -scene is required")
		os.Exit(2)
	}

	cfg := fileConfig{LogFormat: *logFormat}
	if *configPath != "" {
		if err := loadFileConfig(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "muon: %v\n", err)
			os.Exit(1)
		}
	}
	// explicit flags override the config file.
	applyFlagOverrides(&cfg, acceleration, partitionStrategy, parallelism, statsFlag, logFormat)

	logger := newLogger(cfg.LogFormat)

	if err := run(*scenePath, *output, cfg, logger); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func loadFileConfig(path string, cfg *fileConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("main.loadFileConfig: could not open %s: %w", path, err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("main.loadFileConfig: could not parse %s: %w", path, err)
	}
	return nil
}

func applyFlagOverrides(cfg *fileConfig, acceleration, partitionStrategy *string, parallelism *int, statsFlag *bool, logFormat *string) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "acceleration":
			cfg.Acceleration = *acceleration
		case "partition_strategy":
			cfg.PartitionStrategy = *partitionStrategy
		case "parallelism":
			cfg.Parallelism = *parallelism
		case "stats":
			cfg.Stats = *statsFlag
		case "log_format":
			cfg.LogFormat = *logFormat
		}
	})
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func run(scenePath, outputOverride string, cfg fileConfig, logger *slog.Logger) error {
	f, err := os.Open(scenePath)
	if err != nil {
		return fmt.Errorf("main.run: could not open scene %s: %w", scenePath, err)
	}
	defer f.Close()

	sc, err := scene.Parse(f, scene.Options{
		Acceleration:      cfg.Acceleration,
		PartitionStrategy: cfg.PartitionStrategy,
	}, logger)
	if err != nil {
		return fmt.Errorf("main.run: %w", err)
	}

	out := sc.Output
	if outputOverride != "" {
		out = outputOverride
	}

	d := driver.New(sc, driver.Parallelism(cfg.Parallelism), driver.Stats(cfg.Stats))
	film, _, err := d.Render(logger)
	if err != nil {
		return fmt.Errorf("main.run: %w", err)
	}

	if err := film.Write(out, sc.Gamma, sc.PixelSamples); err != nil {
		return fmt.Errorf("main.run: %w", err)
	}
	logger.Info("wrote image", "path", out)
	return nil
}
