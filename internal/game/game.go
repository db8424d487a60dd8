package game

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/render"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/ui"
	golog "github.com/tochemey/goakt/v3/log"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Game drives one World from the ebiten loop: input, step, draw.
type Game struct {
	world  *simulation.World
	cfg    *simulation.Config
	logger golog.Logger
	panel  *tuningPanel

	// logical screen size, refreshed by Layout
	width, height int

	// Timing instrumentation
	clock              func() time.Time
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
	framesSinceLog     int
	lastLogTime        time.Time
}

// NewGame creates the world described by cfg and the panel that tunes it.
func NewGame(cfg *simulation.Config, logger golog.Logger) (*Game, error) {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	world, err := simulation.NewWorld(cfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	g := &Game{
		world:  world,
		cfg:    world.Config(),
		logger: logger,
		width:  int(world.Width),
		height: int(world.Height),
		clock:  time.Now,
	}
	g.lastLogTime = g.clock()
	g.panel = newTuningPanel(g)
	return g, nil
}

// World exposes the simulated world, mainly for tests and the HUD.
func (g *Game) World() *simulation.World { return g.world }

func (g *Game) apply(cmd simulation.Command) {
	g.world.Controls.Apply(cmd)
	if cmd == simulation.CommandToggleDebug {
		g.panel.debug.Set(g.world.Controls.DebugVisible)
	}
	g.logger.Debugf("command %s", cmd)
}

func (g *Game) togglePanel() {
	g.panel.Visible = !g.panel.Visible
}

func (g *Game) copyStats() {
	stats := g.world.Stats().String()
	if err := writeClipboard(stats); err != nil {
		g.logger.Warnf("could not copy flock stats to the clipboard: %v", err)
		return
	}
	g.logger.Infof("flock stats copied to the clipboard: %s", stats)
}

// Update advances the simulation by one frame.
// A quit requested during the previous frame ends the loop before anything else runs.
func (g *Game) Update() error {
	if g.world.Controls.QuitRequested {
		g.logger.Info("quit requested, leaving the game loop")
		return ebiten.Termination
	}

	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.handleInput()
	g.panel.Update(ui.ReadPointer())
	return g.tick()
}

// tick runs the simulation part of Update: viewport, step and telemetry.
func (g *Game) tick() error {
	g.world.SetBounds(g.width, g.height)
	if err := g.world.Step(); err != nil {
		g.logger.Errorf("simulation step failed: %v", err)
		return err
	}
	g.framesSinceLog++
	g.logBenchmarks()
	return nil
}

// logBenchmarks writes the frame rate and the timings once per second.
func (g *Game) logBenchmarks() {
	now := g.clock()
	elapsed := now.Sub(g.lastLogTime)
	if elapsed < time.Second {
		return
	}
	g.logger.Debugf("📊 FRAME RATE: %.1f/sec | Boids: %d | Update: %.2fms | Draw: %.2fms",
		float64(g.framesSinceLog)/elapsed.Seconds(), g.world.Count(), g.updateAvg, g.drawAvg)
	g.framesSinceLog = 0
	g.lastLogTime = now
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(render.Background)
	render.DrawWorld(screenSurface{dst: screen}, g.world, g.world.Controls.DebugVisible, g.cfg.DebugLineScale)
	g.panel.Draw(screen)
	g.drawHUD(screen)
}

// Layout keeps the logical screen equal to the window, the world follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}
