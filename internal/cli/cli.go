// Package cli holds the command line flags shared by the boids programs.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

// Flags are the overrides every program accepts on top of the config file.
type Flags struct {
	ConfigFile string
	Seed       uint64
	Boids      int
	Width      float64
	Height     float64
	Debug      bool
	Wall       bool
	LogLevel   string
	LogFile    string
}

// Register declares the shared flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "path to a .json or .toml config file")
	fs.Uint64Var(&f.Seed, "seed", 0, "seed for the spawn RNG (0 = time based)")
	fs.IntVar(&f.Boids, "boids", 0, "number of boids spawned on reset")
	fs.Float64Var(&f.Width, "width", 0, "initial world width")
	fs.Float64Var(&f.Height, "height", 0, "initial world height")
	fs.BoolVar(&f.Debug, "debug", false, "start with the debug lines visible")
	fs.BoolVar(&f.Wall, "wall", false, "enable the wall avoidance rule")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.LogFile, "log-file", "", "append logs to this file instead of the default output")
}

// Config loads the config file (or the defaults) and applies the flags that were set on fs.
func (f *Flags) Config(fs *flag.FlagSet) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if f.ConfigFile != "" {
		loaded, err := simulation.LoadConfig(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			cfg.Seed = f.Seed
		case "boids":
			cfg.BoidCount = f.Boids
		case "width":
			cfg.WorldWidth = f.Width
		case "height":
			cfg.WorldHeight = f.Height
		case "debug":
			cfg.ShowDebugLines = f.Debug
		case "wall":
			cfg.WallAvoidance = f.Wall
		case "log-level":
			cfg.LogLevel = f.LogLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logOutput opens the log file when one was given.
func (f *Flags) logOutput(fallback io.Writer) (io.Writer, func() error, error) {
	if f.LogFile == "" {
		return fallback, func() error { return nil }, nil
	}
	out, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return out, out.Close, nil
}

// Setup parses args and returns the resulting config with its logger.
// Logs go to fallback unless -log-file is set. closeLog must be called on exit.
func Setup(fs *flag.FlagSet, args []string, fallback io.Writer) (cfg *simulation.Config, logger golog.Logger, closeLog func() error, err error) {
	var f Flags
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	if cfg, err = f.Config(fs); err != nil {
		return nil, nil, nil, fmt.Errorf("configuration: %w", err)
	}
	out, closeLog, err := f.logOutput(fallback)
	if err != nil {
		return nil, nil, nil, err
	}
	if logger, err = simulation.NewLogger(cfg.LogLevel, out); err != nil {
		_ = closeLog()
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}
