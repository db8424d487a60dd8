package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/ui"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Seed = 77
	cfg.BoidCount = 12
	g, err := NewGame(cfg, nil)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.BoidCount = cfg.BoidCountMax + 1
	if _, err := NewGame(cfg, nil); !errors.Is(err, simulation.ErrCapacityExceeded) {
		t.Fatalf("NewGame error = %v; want ErrCapacityExceeded", err)
	}
}

func TestGame_TickFollowsLayout(t *testing.T) {
	g := newTestGame(t)
	if w, h := g.Layout(640, 480); w != 640 || h != 480 {
		t.Fatalf("Layout = %dx%d; want 640x480", w, h)
	}
	if err := g.tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	world := g.World()
	if world.Width != 640 || world.Height != 480 {
		t.Errorf("world bounds = %vx%v; want 640x480", world.Width, world.Height)
	}
	if world.Count() != 12 || world.Frame() != 1 {
		t.Errorf("Count/Frame = %d/%d; want 12/1", world.Count(), world.Frame())
	}
	for i, b := range world.Boids() {
		if b.Position.X < 0 || b.Position.X > 640 || b.Position.Y < 0 || b.Position.Y > 480 {
			t.Errorf("boid %d at %v is outside the window", i, b.Position)
		}
	}
}

func TestGame_LayoutIgnoresEmptyWindow(t *testing.T) {
	g := newTestGame(t)
	if w, h := g.Layout(0, 0); w != 1440 || h != 980 {
		t.Errorf("Layout(0, 0) = %dx%d; want the previous 1440x980", w, h)
	}
}

func TestGame_QuitEndsTheNextUpdate(t *testing.T) {
	g := newTestGame(t)
	g.apply(simulation.CommandQuit)
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update error = %v; want ebiten.Termination", err)
	}
	if g.World().Frame() != 0 {
		t.Errorf("a step ran after quit was requested")
	}
}

func TestGame_ToggleDebugSyncsPanel(t *testing.T) {
	g := newTestGame(t)
	g.apply(simulation.CommandToggleDebug)
	if !g.World().Controls.DebugVisible || !g.panel.debug.Value {
		t.Fatalf("debug visible=%v checkbox=%v; want both true", g.World().Controls.DebugVisible, g.panel.debug.Value)
	}
	g.apply(simulation.CommandToggleDebug)
	if g.World().Controls.DebugVisible || g.panel.debug.Value {
		t.Errorf("second toggle left debug on")
	}
}

func TestGame_PanelPushesRules(t *testing.T) {
	g := newTestGame(t)
	s := g.panel.avoid
	g.panel.Update(ui.Pointer{X: s.X + s.W, Y: s.Y + 1, Pressed: true})
	if got := g.World().Rules().AvoidNudge; got != s.Max {
		t.Errorf("AvoidNudge = %v; want the slider maximum %v", got, s.Max)
	}

	c := g.panel.wallRule
	g.panel.Update(ui.Pointer{X: c.X + 1, Y: c.Y + 1, Pressed: true})
	if !g.World().Rules().WallAvoidance {
		t.Error("checking the wall box did not enable the wall rule")
	}
}

func TestGame_PanelResetButton(t *testing.T) {
	g := newTestGame(t)
	if err := g.tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	var reset *ui.ButtonWrapper
	for _, w := range g.panel.Widgets {
		if b, ok := w.(*ui.ButtonWrapper); ok {
			reset = b
		}
	}
	if reset == nil {
		t.Fatal("panel has no reset button")
	}
	g.panel.Update(ui.Pointer{X: reset.X + 2, Y: reset.Y + 2, Pressed: true})
	if !g.World().Controls.ResetRequested {
		t.Error("reset button did not request a reset")
	}
}

func TestGame_TogglePanel(t *testing.T) {
	g := newTestGame(t)
	visible := g.panel.Visible
	g.togglePanel()
	if g.panel.Visible == visible {
		t.Error("togglePanel did not change visibility")
	}
}

func TestGame_CopyStats(t *testing.T) {
	g := newTestGame(t)
	if err := g.tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	var copied string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(s string) error { copied = s; return nil }

	g.copyStats()
	if !strings.Contains(copied, "boids=12/1000") || !strings.Contains(copied, "frame=1") {
		t.Errorf("copied %q; want the flock stats", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	g.copyStats() // must only log
}

func TestGame_LogBenchmarksOncePerSecond(t *testing.T) {
	g := newTestGame(t)
	now := g.lastLogTime
	g.clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if err := g.tick(); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
	}
	if g.framesSinceLog != 3 {
		t.Fatalf("framesSinceLog = %d; want 3 before a second elapsed", g.framesSinceLog)
	}

	now = now.Add(time.Second)
	if err := g.tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if g.framesSinceLog != 0 || !g.lastLogTime.Equal(now) {
		t.Errorf("framesSinceLog=%d lastLogTime=%v; want a reset at %v", g.framesSinceLog, g.lastLogTime, now)
	}
}

func TestPressedCommands(t *testing.T) {
	pressed := map[ebiten.Key]bool{ebiten.KeyR: true, ebiten.KeyEscape: true, ebiten.KeyP: true}
	got := pressedCommands(func(k ebiten.Key) bool { return pressed[k] })
	want := []simulation.Command{simulation.CommandQuit, simulation.CommandReset}
	if len(got) != len(want) {
		t.Fatalf("commands = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("commands[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}
