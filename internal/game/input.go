package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
)

// keyBindings maps the simulation keys to commands.
var keyBindings = []struct {
	key ebiten.Key
	cmd simulation.Command
}{
	{ebiten.KeyEscape, simulation.CommandQuit},
	{ebiten.KeyTab, simulation.CommandToggleDebug},
	{ebiten.KeyR, simulation.CommandReset},
}

// Presentation only keys, they never reach the world.
const (
	keyTogglePanel = ebiten.KeyP
	keyCopyStats   = ebiten.KeyC
)

// pressedCommands returns the commands whose key went down this frame, in binding order.
func pressedCommands(justPressed func(ebiten.Key) bool) []simulation.Command {
	var cmds []simulation.Command
	for _, b := range keyBindings {
		if justPressed(b.key) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}

func (g *Game) handleInput() {
	for _, cmd := range pressedCommands(inpututil.IsKeyJustPressed) {
		g.apply(cmd)
	}
	if inpututil.IsKeyJustPressed(keyTogglePanel) {
		g.togglePanel()
	}
	if inpututil.IsKeyJustPressed(keyCopyStats) {
		g.copyStats()
	}
}
