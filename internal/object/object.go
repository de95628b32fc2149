// Package object defines the game entities and the factory that creates them.
package object

import "github.com/tomz197/roids/internal/physics"

// wrap moves a position to the opposite edge once the body is fully off screen
// (Asteroids-style wraparound, not a bounce).
func wrap(x, y *float64, radius, width, height float64) {
	*x = physics.Wrap(*x, radius, width)
	*y = physics.Wrap(*y, radius, height)
}

// Wrap applies screen wraparound to the ship.
func (s *Ship) Wrap(width, height float64) {
	wrap(&s.X, &s.Y, s.Radius, width, height)
}

// Collides reports whether the ship's collision circle overlaps the asteroid's.
func (s *Ship) Collides(a *Asteroid) bool {
	return physics.CirclesOverlap(s.X, s.Y, s.Radius, a.X, a.Y, a.Radius)
}
