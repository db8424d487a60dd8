package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/render"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

// World units covered by one terminal cell. Cells are about twice as tall as wide.
const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0
)

// Driver runs a World inside a terminal.
// Only the loop goroutine touches the world, the event goroutine just forwards tcell events.
type Driver struct {
	screen tcell.Screen
	world  *simulation.World
	cfg    *simulation.Config
	logger golog.Logger
	sound  Chirper

	cellW, cellH float64
}

// Open initializes the terminal and the speaker. Audio is optional: when the
// speaker cannot be opened the driver runs silently.
func Open(cfg *simulation.Config, logger golog.Logger) (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	sound, err := NewChirper()
	if err != nil && logger != nil {
		logger.Warnf("audio disabled: %v", err)
	}
	d, err := NewDriver(screen, cfg, logger, sound)
	if err != nil {
		screen.Fini()
		sound.Close()
		return nil, err
	}
	return d, nil
}

// NewDriver wraps an initialized screen. A nil sound plays nothing.
func NewDriver(screen tcell.Screen, cfg *simulation.Config, logger golog.Logger, sound Chirper) (*Driver, error) {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	if sound == nil {
		sound = silent{}
	}
	world, err := simulation.NewWorld(cfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	return &Driver{
		screen: screen,
		world:  world,
		cfg:    world.Config(),
		logger: logger,
		sound:  sound,
		cellW:  defaultCellWidth,
		cellH:  defaultCellHeight,
	}, nil
}

func (d *Driver) World() *simulation.World { return d.world }

// Run steps the world at the configured rate until quit is requested or ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(time.Second / time.Duration(d.cfg.TicksPerSecond))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	d.logger.Infof("terminal driver started at %d ticks per second", d.cfg.TicksPerSecond)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			d.handleEvent(ev)
		case <-ticker.C:
			done, err := d.frame()
			if err != nil || done {
				return err
			}
		}
	}
}

// Close restores the terminal and releases the speaker.
func (d *Driver) Close() {
	d.sound.Close()
	d.screen.Fini()
}

// commandForKey maps a key event to a simulation command.
func commandForKey(ev *tcell.EventKey) simulation.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return simulation.CommandQuit
	case tcell.KeyTab:
		return simulation.CommandToggleDebug
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return simulation.CommandQuit
		case 'r', 'R':
			return simulation.CommandReset
		}
	}
	return simulation.CommandNone
}

func (d *Driver) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if cmd := commandForKey(ev); cmd != simulation.CommandNone {
			d.world.Controls.Apply(cmd)
			d.logger.Debugf("command %s", cmd)
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
}

// viewport returns the drawable cell area, the last row is the status line.
func (d *Driver) viewport() (cols, rows int) {
	cols, rows = d.screen.Size()
	return cols, max(rows-1, 1)
}

// frame runs one step and redraws. It reports done once quit has been requested.
func (d *Driver) frame() (bool, error) {
	if d.world.Controls.QuitRequested {
		d.logger.Info("quit requested, leaving the terminal loop")
		return true, nil
	}

	cols, rows := d.viewport()
	d.world.SetBounds(int(float64(cols)*d.cellW), int(float64(rows)*d.cellH))

	respawn := d.world.Controls.ResetRequested
	if err := d.world.Step(); err != nil {
		d.logger.Errorf("simulation step failed: %v", err)
		return true, err
	}
	if respawn {
		d.sound.Chirp()
	}
	d.draw(cols, rows)
	return false, nil
}

func (d *Driver) draw(cols, rows int) {
	d.screen.Clear()
	surface := cellSurface{screen: d.screen, cellW: d.cellW, cellH: d.cellH, cols: cols, rows: rows}
	render.DrawWorld(surface, d.world, d.world.Controls.DebugVisible, d.cfg.DebugLineScale)

	status := fmt.Sprintf(" boids %d/%d  frame %d  [Tab] debug  [r] reset  [q] quit",
		d.world.Count(), d.world.Capacity(), d.world.Frame())
	style := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(status) {
		if x >= cols {
			break
		}
		d.screen.SetContent(x, rows, r, nil, style)
	}
	d.screen.Show()
}
