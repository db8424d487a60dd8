package simulation

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// FlockStats summarizes the flock for the HUD, the clipboard export and the headless report.
type FlockStats struct {
	Frame        uint64
	Count        int
	Capacity     int
	CenterOfMass geometry.Vector2D
	// MeanNearestDistance is the average distance from a boid to its nearest neighbor.
	MeanNearestDistance float64
	// Polarization is the length of the mean velocity: 1 when every boid flies the same way.
	Polarization float64
}

func (s FlockStats) String() string {
	return fmt.Sprintf("frame=%d boids=%d/%d center=%s nn=%.2f polarization=%.3f",
		s.Frame, s.Count, s.Capacity, s.CenterOfMass, s.MeanNearestDistance, s.Polarization)
}

// Stats computes the current FlockStats. It costs one O(n²) neighbor pass.
func (w *World) Stats() FlockStats {
	s := FlockStats{
		Frame:        w.frame,
		Count:        len(w.boids),
		Capacity:     cap(w.boids),
		CenterOfMass: w.CenterOfMass,
	}
	if len(w.boids) == 0 {
		return s
	}

	var heading geometry.Vector2D
	var nnSum float64
	neighbors := 0
	for i := range w.boids {
		heading = heading.Add(w.boids[i].Velocity)
		if j, delta := nearestNeighbor(w.boids, i); j >= 0 {
			nnSum += delta.Len()
			neighbors++
		}
	}
	if neighbors > 0 {
		s.MeanNearestDistance = nnSum / float64(neighbors)
	}
	s.Polarization = math.Min(1, heading.Mul(1/float64(len(w.boids))).Len())
	return s
}
