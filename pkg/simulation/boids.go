package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// minWallDistance keeps the inverse-square wall push finite when a boid touches an edge.
const minWallDistance = 0.1

// Rules holds the nudge factors blended into a boid's velocity each frame.
type Rules struct {
	CenterNudge float64 // Cohesion
	AvoidNudge  float64 // Separation
	MatchNudge  float64 // Alignment
	WallNudge   float64

	// WallAvoidance switches on the wall rule. It is off by default and the
	// flock then relies on the toroidal wrap alone.
	WallAvoidance bool
}

// steer blends the velocity toward target by t and renormalizes it.
// If the blend cancels out, the previous heading is kept.
func (b *Boid) steer(target geometry.Vector2D, t float64) {
	fallback := b.Velocity.NormalizeOr(DefaultHeading)
	b.Velocity = b.Velocity.Lerp(target, t).NormalizeOr(fallback)
}

// applyCohesion nudges the boid toward the flock's center of mass.
// The raw delta is used as the target, so far away boids turn faster.
func (b *Boid) applyCohesion(centerOfMass geometry.Vector2D, nudge float64) {
	deltaToCenter := centerOfMass.Sub(b.Position)
	b.steer(deltaToCenter, nudge)
	b.CenterForce = deltaToCenter.Mul(nudge)
}

// applySeparation nudges the boid away from its nearest neighbor.
func (b *Boid) applySeparation(minDelta geometry.Vector2D, nudge float64) {
	b.steer(minDelta.NormalizeOr(DefaultHeading), nudge)
	b.DeltaToNearest = minDelta
	b.AvoidForce = minDelta.Mul(nudge)
}

// applyAlignment nudges the boid toward its nearest neighbor's heading.
func (b *Boid) applyAlignment(neighborVelocity geometry.Vector2D, nudge float64) {
	b.steer(neighborVelocity, nudge)
	b.MatchForce = neighborVelocity.Mul(nudge)
}

// applyWallAvoidance pushes the boid away from the closest wall with an
// inverse-square strength.
func (b *Boid) applyWallAvoidance(width, height, nudge float64) {
	normal := wallPush(b.Position, width, height)
	b.steer(normal, nudge)
	b.WallForce = normal.Mul(nudge)
}

func wallPush(p geometry.Vector2D, width, height float64) geometry.Vector2D {
	normal := geometry.Vector2D{X: 0, Y: 1} // top
	dist := p.Y
	if left := p.X; left < dist {
		normal, dist = geometry.Vector2D{X: 1, Y: 0}, left
	}
	if right := width - p.X; right < dist {
		normal, dist = geometry.Vector2D{X: -1, Y: 0}, right
	}
	if bottom := height - p.Y; bottom < dist {
		normal, dist = geometry.Vector2D{X: 0, Y: -1}, bottom
	}
	dist = math.Max(dist, minWallDistance)

	push := normal.Mul(1 / dist)
	return geometry.Vector2D{X: push.X * math.Abs(push.X), Y: push.Y * math.Abs(push.Y)}
}

// finalizeForces normalizes the debug vectors so every overlay line has the same length.
func (b *Boid) finalizeForces() {
	b.CenterForce = b.CenterForce.Normalize()
	b.AvoidForce = b.AvoidForce.Normalize()
	b.MatchForce = b.MatchForce.Normalize()
	b.WallForce = b.WallForce.Normalize()
}

// nearestNeighbor scans flock in index order for the boid closest to flock[i].
// Ties keep the first boid found. It returns -1 and seedDelta when flock[i] is alone.
func nearestNeighbor(flock []Boid, i int) (int, geometry.Vector2D) {
	nearest := -1
	minDistSq := math.Inf(1)
	minDelta := seedDelta
	me := flock[i].Position
	for j := range flock {
		if j == i {
			continue
		}
		delta := me.Sub(flock[j].Position)
		if distSq := delta.LenSqr(); distSq < minDistSq {
			minDistSq = distSq
			minDelta = delta
			nearest = j
		}
	}
	return nearest, minDelta
}

// ComputeBoidUpdate runs every rule for one boid against the pre-step snapshot
// of the flock, then moves and wraps it.
// me must be a copy of snapshot[i] (or the same boid in the live array).
func ComputeBoidUpdate(me *Boid, i int, snapshot []Boid, centerOfMass geometry.Vector2D, rules Rules, width, height float64) {
	me.applyCohesion(centerOfMass, rules.CenterNudge)

	nearest, minDelta := nearestNeighbor(snapshot, i)
	me.applySeparation(minDelta, rules.AvoidNudge)

	if nearest >= 0 {
		me.applyAlignment(snapshot[nearest].Velocity, rules.MatchNudge)
	} else {
		me.MatchForce = geometry.Vector2D{}
	}

	if rules.WallAvoidance {
		me.applyWallAvoidance(width, height, rules.WallNudge)
	} else {
		me.WallForce = geometry.Vector2D{}
	}

	me.finalizeForces()
	me.UpdatePhysics()
	me.Wrap(width, height)
}

// centroid is the mean position of the flock. The caller guarantees len(flock) > 0.
func centroid(flock []Boid) geometry.Vector2D {
	var sum geometry.Vector2D
	for i := range flock {
		sum = sum.Add(flock[i].Position)
	}
	return sum.Mul(1 / float64(len(flock)))
}
