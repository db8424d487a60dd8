package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const strokeWidth = 1

// screenSurface draws render primitives straight onto an ebiten image.
// World units are pixels since Layout keeps the logical size equal to the window.
type screenSurface struct {
	dst *ebiten.Image
}

func (s screenSurface) Line(x0, y0, x1, y1 float64, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), strokeWidth, c, true)
}

func (s screenSurface) Circle(cx, cy, r float64, c color.RGBA) {
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), strokeWidth, c, true)
}
