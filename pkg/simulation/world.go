package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

// spawnHeadings is the number of discrete spawn headings, 1 radian apart from DefaultHeading.
const spawnHeadings = 6

// World owns the flock, the world bounds and the control flags.
// It is not safe for concurrent use: one driver loop calls SetBounds and Step every frame.
type World struct {
	cfg    *Config
	rules  Rules
	rng    *rand.Rand
	logger golog.Logger

	// boids is a fixed-capacity arena, len(boids) is the active count.
	boids []Boid
	// snapshot holds the pre-step state every rule reads from.
	snapshot []Boid

	Width, Height float64
	CenterOfMass  geometry.Vector2D
	Controls      Controls

	frame uint64
}

// NewWorld creates the world described by cfg. The first Step spawns the flock.
// A nil rng is seeded from cfg.Seed (or the clock), a nil logger discards everything.
func NewWorld(cfg *Config, rng *rand.Rand, logger golog.Logger) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	return &World{
		cfg:      cfg,
		rules:    cfg.Rules(),
		rng:      rng,
		logger:   logger,
		boids:    make([]Boid, 0, cfg.BoidCountMax),
		snapshot: make([]Boid, 0, cfg.BoidCountMax),
		Width:    cfg.WorldWidth,
		Height:   cfg.WorldHeight,
		Controls: Controls{
			ResetRequested: true,
			DebugVisible:   cfg.ShowDebugLines,
		},
	}, nil
}

// NewRand returns a PCG generator for seed, or a clock seeded one when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Boids returns the active boids. The slice aliases the world storage and is
// only valid until the next Step or Reset.
func (w *World) Boids() []Boid { return w.boids }

// Count is the number of active boids.
func (w *World) Count() int { return len(w.boids) }

// Capacity is the maximum number of boids a reset may create.
func (w *World) Capacity() int { return cap(w.boids) }

// Frame is the number of completed steps since the world was created.
func (w *World) Frame() uint64 { return w.frame }

func (w *World) Config() *Config { return w.cfg }

func (w *World) Rules() Rules { return w.rules }

// SetRules replaces the nudge factors, e.g. from the tuning panel.
func (w *World) SetRules(r Rules) {
	if r != w.rules {
		w.logger.Debugf("rules changed: center=%g avoid=%g match=%g wall=%t",
			r.CenterNudge, r.AvoidNudge, r.MatchNudge, r.WallAvoidance)
	}
	w.rules = r
}

// SetBounds updates the wrap thresholds from the live viewport.
// Boids are not moved: the next Step wraps whatever ended up outside.
func (w *World) SetBounds(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.Width, w.Height = float64(width), float64(height)
}

// Reset replaces the whole flock with count fresh boids.
// A rejected reset leaves the current flock untouched.
func (w *World) Reset(count int) error {
	if count < 1 {
		w.logger.Warnf("reset rejected: %d boids requested", count)
		return fmt.Errorf("reset to %d boids: %w", count, ErrEmptyFlock)
	}
	if count > cap(w.boids) {
		w.logger.Warnf("reset rejected: %d boids requested, capacity is %d", count, cap(w.boids))
		return fmt.Errorf("reset to %d boids (capacity %d): %w", count, cap(w.boids), ErrCapacityExceeded)
	}

	w.boids = w.boids[:0]
	for i := 0; i < count; i++ {
		w.boids = append(w.boids, Boid{
			Position: geometry.Vector2D{
				X: w.rng.Float64() * w.Width,
				Y: w.rng.Float64() * w.Height,
			},
			Velocity:       DefaultHeading.Rotate(float64(w.rng.IntN(spawnHeadings))),
			DeltaToNearest: seedDelta,
		})
	}
	w.CenterOfMass = centroid(w.boids)
	w.logger.Infof("World is spawning the flock: %d boids in %.0fx%.0f", count, w.Width, w.Height)
	return nil
}

// Step advances the simulation by one frame.
// A pending reset request is served first. Every rule reads the other boids
// from the state they had before this step started.
func (w *World) Step() error {
	if w.Controls.ResetRequested {
		w.Controls.ResetRequested = false
		if err := w.Reset(w.cfg.BoidCount); err != nil {
			return err
		}
	}
	if len(w.boids) == 0 {
		return ErrEmptyFlock
	}

	w.snapshot = append(w.snapshot[:0], w.boids...)
	w.CenterOfMass = centroid(w.snapshot)

	for i := range w.boids {
		ComputeBoidUpdate(&w.boids[i], i, w.snapshot, w.CenterOfMass, w.rules, w.Width, w.Height)
	}
	w.frame++
	return nil
}
