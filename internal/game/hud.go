package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 16

// hudLines is the text shown in the top right corner.
func (g *Game) hudLines() []string {
	return []string{
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("Boids: %d/%d", g.world.Count(), g.world.Capacity()),
		fmt.Sprintf("Update: %.2fms  Draw: %.2fms", g.updateAvg, g.drawAvg),
		"Tab debug  R reset  P panel  C copy  Esc quit",
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	x := screen.Bounds().Dx() - 330
	for i, line := range g.hudLines() {
		text.Draw(screen, line, basicfont.Face7x13, x, 18+i*hudLineHeight, color.White)
	}
}
