package simulation

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

const unitTolerance = 1e-5

// newTestWorld builds a seeded world whose flock is exactly boids, with no pending reset.
func newTestWorld(t testing.TB, width, height float64, boids ...Boid) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.WorldWidth = width
	cfg.WorldHeight = height
	w, err := NewWorld(cfg, rand.New(rand.NewPCG(1, 2)), nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	w.Controls.ResetRequested = false
	w.boids = append(w.boids[:0], boids...)
	return w
}

// checkInvariants verifies unit velocities and in-bounds positions for every boid.
func checkInvariants(t *testing.T, w *World) {
	t.Helper()
	for i, b := range w.Boids() {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			t.Fatalf("frame %d boid %d has non finite state: pos=%v vel=%v", w.Frame(), i, b.Position, b.Velocity)
		}
		if l := b.Velocity.Len(); math.Abs(l-1) > unitTolerance {
			t.Fatalf("frame %d boid %d |velocity| = %v; want 1", w.Frame(), i, l)
		}
		if b.Position.X < 0 || b.Position.X > w.Width || b.Position.Y < 0 || b.Position.Y > w.Height {
			t.Fatalf("frame %d boid %d position %v outside [0,%v]x[0,%v]", w.Frame(), i, b.Position, w.Width, w.Height)
		}
	}
}

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoidCount = cfg.BoidCountMax + 1
	_, err := NewWorld(cfg, nil, nil)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("NewWorld error = %v; want ErrCapacityExceeded", err)
	}
}

func TestNewWorld_RequestsInitialReset(t *testing.T) {
	w, err := NewWorld(nil, NewRand(7), nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if !w.Controls.ResetRequested {
		t.Error("a new world should request a reset")
	}
	if w.Count() != 0 {
		t.Errorf("Count before first step = %d; want 0", w.Count())
	}
	if w.Capacity() != DefaultConfig().BoidCountMax {
		t.Errorf("Capacity = %d; want %d", w.Capacity(), DefaultConfig().BoidCountMax)
	}

	if err := w.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if w.Controls.ResetRequested {
		t.Error("Step should consume the reset request")
	}
	if w.Count() != DefaultConfig().BoidCount {
		t.Errorf("Count after first step = %d; want %d", w.Count(), DefaultConfig().BoidCount)
	}
	if w.Frame() != 1 {
		t.Errorf("Frame = %d; want 1", w.Frame())
	}
}

func TestWorld_Reset(t *testing.T) {
	w := newTestWorld(t, 1440, 980)

	if err := w.Reset(50); err != nil {
		t.Fatalf("Reset(50) failed: %v", err)
	}
	if w.Count() != 50 {
		t.Fatalf("Count = %d; want 50", w.Count())
	}

	headings := make([]geometry.Vector2D, spawnHeadings)
	for k := range headings {
		headings[k] = geometry.Vector2D{X: 1, Y: 1}.Normalize().Rotate(float64(k))
	}

	for i, b := range w.Boids() {
		if b.Position.X < 0 || b.Position.X >= 1440 || b.Position.Y < 0 || b.Position.Y >= 980 {
			t.Errorf("boid %d spawned outside the world: %v", i, b.Position)
		}
		if l := b.Velocity.Len(); math.Abs(l-1) > unitTolerance {
			t.Errorf("boid %d |velocity| = %v; want 1", i, l)
		}
		found := false
		for _, h := range headings {
			if b.Velocity.EqWithin(h, 1e-9) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("boid %d velocity %v is not one of the %d spawn headings", i, b.Velocity, spawnHeadings)
		}
		if b.DeltaToNearest != seedDelta {
			t.Errorf("boid %d DeltaToNearest = %v; want seed %v", i, b.DeltaToNearest, seedDelta)
		}
	}
}

func TestWorld_ResetReplacesPopulation(t *testing.T) {
	w := newTestWorld(t, 800, 600)
	if err := w.Reset(40); err != nil {
		t.Fatalf("Reset(40) failed: %v", err)
	}
	if err := w.Reset(10); err != nil {
		t.Fatalf("Reset(10) failed: %v", err)
	}
	if w.Count() != 10 {
		t.Errorf("Count = %d; want 10", w.Count())
	}
}

func TestWorld_ResetRejections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoidCountMax = 60
	w, err := NewWorld(cfg, NewRand(3), nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if err := w.Reset(50); err != nil {
		t.Fatalf("Reset(50) failed: %v", err)
	}
	before := append([]Boid(nil), w.Boids()...)

	tests := []struct {
		name  string
		count int
		want  error
	}{
		{"over capacity", 61, ErrCapacityExceeded},
		{"far over capacity", 10_000, ErrCapacityExceeded},
		{"zero", 0, ErrEmptyFlock},
		{"negative", -3, ErrEmptyFlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.Reset(tt.count)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Reset(%d) error = %v; want %v", tt.count, err, tt.want)
			}
			if w.Count() != len(before) {
				t.Fatalf("Count after rejected reset = %d; want %d", w.Count(), len(before))
			}
			for i := range before {
				if w.Boids()[i] != before[i] {
					t.Fatalf("boid %d changed after rejected reset", i)
				}
			}
		})
	}

	if err := w.Reset(60); err != nil {
		t.Errorf("Reset at exactly the capacity failed: %v", err)
	}
}

func TestWorld_StepEmptyFlock(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	if err := w.Step(); !errors.Is(err, ErrEmptyFlock) {
		t.Fatalf("Step on an empty flock error = %v; want ErrEmptyFlock", err)
	}
	if w.Frame() != 0 {
		t.Errorf("Frame = %d; a failed step must not count", w.Frame())
	}
}

func TestWorld_StepInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BoidCount = 120
	w, err := NewWorld(cfg, NewRand(42), nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	for frame := 0; frame < 300; frame++ {
		switch frame {
		case 100:
			// shrinking window: boids outside the new bounds are wrapped by the next step
			w.SetBounds(400, 300)
		case 200:
			w.SetBounds(1600, 1000)
		}
		if err := w.Step(); err != nil {
			t.Fatalf("Step %d failed: %v", frame, err)
		}
		checkInvariants(t, w)
	}
}

func TestWorld_StepInvariantsWithWallRule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallAvoidance = true
	w, err := NewWorld(cfg, NewRand(11), nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	for frame := 0; frame < 200; frame++ {
		if err := w.Step(); err != nil {
			t.Fatalf("Step %d failed: %v", frame, err)
		}
		checkInvariants(t, w)
	}
}

func TestWorld_CenterOfMass(t *testing.T) {
	w := newTestWorld(t, 100, 100,
		Boid{Position: geometry.Vector2D{X: 0, Y: 0}, Velocity: geometry.Vector2D{X: 1, Y: 0}},
		Boid{Position: geometry.Vector2D{X: 10, Y: 0}, Velocity: geometry.Vector2D{X: 1, Y: 0}},
		Boid{Position: geometry.Vector2D{X: 20, Y: 30}, Velocity: geometry.Vector2D{X: 1, Y: 0}},
	)
	if err := w.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	want := geometry.Vector2D{X: 10, Y: 10}
	if !w.CenterOfMass.EqWithin(want, 1e-12) {
		t.Errorf("CenterOfMass = %v; want %v", w.CenterOfMass, want)
	}
}

func TestWorld_StepReadsPreStepState(t *testing.T) {
	flock := []Boid{
		{Position: geometry.Vector2D{X: 10, Y: 10}, Velocity: geometry.Vector2D{X: 1, Y: 0}},
		{Position: geometry.Vector2D{X: 11, Y: 10}, Velocity: geometry.Vector2D{X: 0, Y: 1}},
		{Position: geometry.Vector2D{X: 30, Y: 40}, Velocity: geometry.Vector2D{X: -1, Y: 0}},
		{Position: geometry.Vector2D{X: 31, Y: 41}, Velocity: geometry.Vector2D{X: 0, Y: -1}},
	}
	w := newTestWorld(t, 100, 100, flock...)
	rules := w.Rules()

	// every boid is computed against the untouched input flock
	expected := make([]Boid, len(flock))
	com := centroid(flock)
	for i := range flock {
		expected[i] = flock[i]
		ComputeBoidUpdate(&expected[i], i, flock, com, rules, 100, 100)
	}

	if err := w.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	for i, got := range w.Boids() {
		if got != expected[i] {
			t.Errorf("boid %d = %+v; want %+v", i, got, expected[i])
		}
	}
}

func TestWorld_StepIsDeterministic(t *testing.T) {
	seed := newTestWorld(t, 640, 480)
	if err := seed.Reset(60); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	flock := append([]Boid(nil), seed.Boids()...)

	a := newTestWorld(t, 640, 480, flock...)
	b := newTestWorld(t, 640, 480, flock...)
	// the debug flag belongs to the renderer and must not influence the step
	b.Controls.DebugVisible = true

	for frame := 0; frame < 50; frame++ {
		if err := a.Step(); err != nil {
			t.Fatalf("a.Step failed: %v", err)
		}
		if err := b.Step(); err != nil {
			t.Fatalf("b.Step failed: %v", err)
		}
	}
	for i := range a.Boids() {
		if a.Boids()[i] != b.Boids()[i] {
			t.Fatalf("boid %d diverged: %+v vs %+v", i, a.Boids()[i], b.Boids()[i])
		}
	}
	if a.CenterOfMass != b.CenterOfMass {
		t.Errorf("CenterOfMass diverged: %v vs %v", a.CenterOfMass, b.CenterOfMass)
	}
}

func TestWorld_SingleBoid(t *testing.T) {
	w := newTestWorld(t, 100, 100,
		Boid{Position: geometry.Vector2D{X: 50, Y: 50}, Velocity: geometry.Vector2D{X: 0, Y: 1}},
	)
	if err := w.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	b := w.Boids()[0]
	if b.DeltaToNearest != seedDelta {
		t.Errorf("DeltaToNearest = %v; want seed %v", b.DeltaToNearest, seedDelta)
	}
	if b.MatchForce != (geometry.Vector2D{}) {
		t.Errorf("MatchForce = %v; want zero without a neighbor", b.MatchForce)
	}
	checkInvariants(t, w)
}

func TestWorld_SetBounds(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	w.SetBounds(320, 200)
	if w.Width != 320 || w.Height != 200 {
		t.Errorf("bounds = %vx%v; want 320x200", w.Width, w.Height)
	}
	w.SetBounds(0, 50)
	if w.Width != 320 || w.Height != 200 {
		t.Errorf("a degenerate viewport must be ignored, got %vx%v", w.Width, w.Height)
	}
}

func TestWorld_SetRules(t *testing.T) {
	w := newTestWorld(t, 100, 100)
	r := w.Rules()
	r.WallAvoidance = true
	r.MatchNudge = 0.2
	w.SetRules(r)
	if w.Rules() != r {
		t.Errorf("Rules = %+v; want %+v", w.Rules(), r)
	}
}

func BenchmarkWorld_Step(b *testing.B) {
	for _, n := range []int{50, 500} {
		b.Run("boids="+strconv.Itoa(n), func(b *testing.B) {
			cfg := DefaultConfig()
			cfg.BoidCount = n
			w, err := NewWorld(cfg, NewRand(1), nil)
			if err != nil {
				b.Fatalf("NewWorld failed: %v", err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := w.Step(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
