package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// circleSegments is the number of points sampled on a circle outline.
const circleSegments = 24

// cellSurface rasterizes render primitives onto terminal cells.
// One cell covers cellW x cellH world units.
type cellSurface struct {
	screen       tcell.Screen
	cellW, cellH float64
	cols, rows   int // drawable area, the status line is excluded
}

func (s cellSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

func (s cellSurface) set(cx, cy int, r rune, c color.RGBA) {
	if cx < 0 || cy < 0 || cx >= s.cols || cy >= s.rows {
		return
	}
	st := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	s.screen.SetContent(cx, cy, r, nil, st)
}

// Line draws a Bresenham line of slope glyphs between the two cells.
func (s cellSurface) Line(x0, y0, x1, y1 float64, c color.RGBA) {
	cx0, cy0 := s.toCell(x0, y0)
	cx1, cy1 := s.toCell(x1, y1)
	glyph := lineGlyph(cx1-cx0, cy1-cy0)
	for _, p := range bresenham(cx0, cy0, cx1, cy1) {
		s.set(p[0], p[1], glyph, c)
	}
}

func (s cellSurface) Circle(cx, cy, r float64, c color.RGBA) {
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x, y := s.toCell(cx+r*math.Cos(a), cy+r*math.Sin(a))
		s.set(x, y, 'o', c)
	}
}

// lineGlyph picks the character closest to the direction of a line.
// Terminal rows grow downwards, like the world y axis.
func lineGlyph(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return '·'
	case dy == 0 || abs(dx) > 2*abs(dy):
		return '-'
	case dx == 0 || abs(dy) > 2*abs(dx):
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// bresenham returns every cell on the segment, both ends included.
func bresenham(x0, y0, x1, y1 int) [][2]int {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	cells := make([][2]int, 0, max(dx, -dy)+1)
	e := dx + dy
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
