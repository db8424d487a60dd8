package simulation

import "github.com/lao-tseu-is-alive/go-boids/pkg/geometry"

var (
	// DefaultHeading is Normalize(1,1), the diagonal every spawn heading is rotated from.
	DefaultHeading = geometry.Vector2D{X: 1, Y: 1}.Normalize()
	// seedDelta is the nearest-neighbor delta a boid keeps when it has no neighbor.
	seedDelta = geometry.Vector2D{X: 1, Y: 1}
)

// Boid is one agent of the flock.
// The force vectors are kept only for the debug overlay, they never feed back into Velocity.
type Boid struct {
	Position geometry.Vector2D
	Velocity geometry.Vector2D // unit length after every step

	// DeltaToNearest is Position minus the nearest neighbor position.
	DeltaToNearest geometry.Vector2D

	CenterForce geometry.Vector2D
	AvoidForce  geometry.Vector2D
	MatchForce  geometry.Vector2D
	WallForce   geometry.Vector2D // zero unless the wall rule is enabled
}

// UpdatePhysics applies the velocity to the position: one unit per frame.
func (b *Boid) UpdatePhysics() {
	b.Position = b.Position.Add(b.Velocity)
}

// Wrap teleports a boid that left the world to the opposite edge.
// Comparisons are strict, a boid sitting exactly on an edge stays there.
func (b *Boid) Wrap(width, height float64) {
	if b.Position.X > width {
		b.Position.X = 0
	}
	if b.Position.X < 0 {
		b.Position.X = width
	}
	if b.Position.Y > height {
		b.Position.Y = 0
	}
	if b.Position.Y < 0 {
		b.Position.Y = height
	}
}
