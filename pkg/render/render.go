package render

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
)

// Surface is what a front end must provide to draw the flock.
// Coordinates are world units, the surface maps them to pixels or cells.
type Surface interface {
	Line(x0, y0, x1, y1 float64, c color.RGBA)
	Circle(cx, cy, r float64, c color.RGBA)
}

const (
	// HeadingLength is the length of the line drawn along a boid velocity.
	HeadingLength = 10.0
	// CenterRadius is the radius of the center of mass marker.
	CenterRadius = 10.0
)

var (
	Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	BoidColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	NearColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	// Debug force lines
	CenterColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	AvoidColor  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	MatchColor  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	WallColor   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	MassColor   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// DrawWorld draws the flock of w onto s.
// With debug on, the nearest neighbor delta and the force vectors of every boid are
// drawn first, from the boid backwards, scaled by scale. Heading lines come after so
// they are never covered. The center of mass is always marked.
func DrawWorld(s Surface, w *simulation.World, debug bool, scale float64) {
	boids := w.Boids()
	if debug {
		wall := w.Rules().WallAvoidance
		for _, b := range boids {
			// the nearest delta is a real distance, it is not scaled
			near := b.Position.Sub(b.DeltaToNearest)
			s.Line(b.Position.X, b.Position.Y, near.X, near.Y, NearColor)

			drawForce(s, b, b.CenterForce, scale, CenterColor)
			drawForce(s, b, b.AvoidForce, scale, AvoidColor)
			drawForce(s, b, b.MatchForce, scale, MatchColor)
			if wall {
				drawForce(s, b, b.WallForce, scale, WallColor)
			}
		}
	}
	for _, b := range boids {
		head := b.Position.Add(b.Velocity.Mul(HeadingLength))
		s.Line(b.Position.X, b.Position.Y, head.X, head.Y, BoidColor)
	}
	s.Circle(w.CenterOfMass.X, w.CenterOfMass.Y, CenterRadius, MassColor)
}

func drawForce(s Surface, b simulation.Boid, force geometry.Vector2D, scale float64, c color.RGBA) {
	end := b.Position.Sub(force.Mul(scale))
	s.Line(b.Position.X, b.Position.Y, end.X, end.Y, c)
}
