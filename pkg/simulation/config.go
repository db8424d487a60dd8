package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	golog "github.com/tochemey/goakt/v3/log"
)

// MaxBoidCapacity is the hard ceiling for BoidCountMax.
// The neighbor search is O(n²) per frame, so this bound keeps a frame interactive.
const MaxBoidCapacity = 5000

//go:embed config.schema.json
var configSchema string

type Config struct {
	// World Dimensions (initial window size, the live viewport overrides them every frame)
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	BoidCount    int `json:"boidCount"`    // spawned on every reset
	BoidCountMax int `json:"boidCountMax"` // capacity of the boid arena

	// Rule nudge factors
	CenterNudge float64 `json:"centerNudge"` // Cohesion
	AvoidNudge  float64 `json:"avoidNudge"`  // Separation
	MatchNudge  float64 `json:"matchNudge"`  // Alignment
	WallNudge   float64 `json:"wallNudge"`   // only used when WallAvoidance is on

	WallAvoidance bool `json:"wallAvoidance"`

	// Presentation
	ShowDebugLines bool    `json:"showDebugLines"`
	DebugLineScale float64 `json:"debugLineScale"`
	TicksPerSecond int     `json:"ticksPerSecond"`

	// Seed for the reset RNG, 0 means time based.
	Seed     uint64 `json:"seed"`
	LogLevel string `json:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:     1440,
		WorldHeight:    980,
		BoidCount:      50,
		BoidCountMax:   1000,
		CenterNudge:    0.00003,
		AvoidNudge:     0.01,
		MatchNudge:     0.01,
		WallNudge:      0.07,
		WallAvoidance:  false,
		ShowDebugLines: false,
		DebugLineScale: 1,
		TicksPerSecond: 60,
		Seed:           0,
		LogLevel:       "info",
	}
}

// Rules extracts the rule parameters used by World.Step.
func (c *Config) Rules() Rules {
	return Rules{
		CenterNudge:   c.CenterNudge,
		AvoidNudge:    c.AvoidNudge,
		MatchNudge:    c.MatchNudge,
		WallNudge:     c.WallNudge,
		WallAvoidance: c.WallAvoidance,
	}
}

// Validate checks the cross-field rules the schema cannot express.
func (c *Config) Validate() error {
	if !isPositiveFinite(c.WorldWidth) || !isPositiveFinite(c.WorldHeight) {
		return fmt.Errorf("%w: world size %gx%g must be positive and finite", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	}
	if c.BoidCountMax < 1 || c.BoidCountMax > MaxBoidCapacity {
		return fmt.Errorf("%w: boidCountMax %d must be within [1, %d]", ErrInvalidConfig, c.BoidCountMax, MaxBoidCapacity)
	}
	if c.BoidCount < 1 {
		return fmt.Errorf("%w: boidCount %d: %w", ErrInvalidConfig, c.BoidCount, ErrEmptyFlock)
	}
	if c.BoidCount > c.BoidCountMax {
		return fmt.Errorf("%w: boidCount %d > boidCountMax %d: %w", ErrInvalidConfig, c.BoidCount, c.BoidCountMax, ErrCapacityExceeded)
	}
	for name, v := range map[string]float64{
		"centerNudge": c.CenterNudge,
		"avoidNudge":  c.AvoidNudge,
		"matchNudge":  c.MatchNudge,
		"wallNudge":   c.WallNudge,
	} {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("%w: %s %g must be within [0, 1]", ErrInvalidConfig, name, v)
		}
	}
	if !isPositiveFinite(c.DebugLineScale) {
		return fmt.Errorf("%w: debugLineScale %g must be positive and finite", ErrInvalidConfig, c.DebugLineScale)
	}
	if c.TicksPerSecond < 1 {
		return fmt.Errorf("%w: ticksPerSecond %d must be positive", ErrInvalidConfig, c.TicksPerSecond)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// isPositiveFinite is false for NaN and both infinities.
func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// LoadConfig loads a JSON or TOML configuration file, validates it against the
// embedded schema and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File, TOML documents are converted to JSON first
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".json":
	case ".toml":
		if raw, err = tomlToJSON(raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q (want .json or .toml)", ErrInvalidConfig, filepath.Ext(configFile))
	}

	// 3. Validate
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: config validation failed: %w", ErrInvalidConfig, err)
	}

	// 4. Unmarshal on top of the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func tomlToJSON(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if _, err := toml.Decode(string(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config toml: %w", err)
	}
	return out, nil
}

// ParseLogLevel maps a config log level to the goakt logger level.
func ParseLogLevel(level string) (golog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return golog.DebugLevel, nil
	case "", "info":
		return golog.InfoLevel, nil
	case "warn", "warning":
		return golog.WarningLevel, nil
	case "error":
		return golog.ErrorLevel, nil
	default:
		return golog.InvalidLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
	}
}

// NewLogger builds the logger used by the world and the front ends.
func NewLogger(level string, w io.Writer) (golog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return golog.New(lvl, w), nil
}
