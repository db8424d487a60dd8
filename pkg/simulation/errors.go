package simulation

import "errors"

var (
	// ErrCapacityExceeded is returned when a reset asks for more boids than the world can hold.
	ErrCapacityExceeded = errors.New("boid count exceeds capacity")
	// ErrEmptyFlock is returned when stepping (or resetting to) a flock without boids:
	// the center of mass is undefined.
	ErrEmptyFlock = errors.New("flock has no active boids")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
)
