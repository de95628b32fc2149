package object

import (
	"math"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/physics"
)

// Ship is the player-controlled spaceship.
// A ship is either alive (ExplodeTime == 0) or exploding (ExplodeTime > 0).
type Ship struct {
	X, Y     float64 // Position (center of ship)
	Angle    float64 // Heading in radians (0 = pointing right, increases counter-clockwise)
	Rotation float64 // Heading change per tick, set from input

	ThrustX, ThrustY float64 // Velocity per tick
	Thrusting        bool

	Radius float64 // Draw scale and collision radius

	ExplodeTime int // Ticks left in the explosion, 0 when alive
	BlinkTime   int // Ticks left in the current blink phase
	BlinkNumber int // Blink phases left, 0 when vulnerable
}

// NewShip creates a ship at the given position, facing up, with a full
// invulnerability window.
func NewShip(x, y float64, t config.Tuning) *Ship {
	return &Ship{
		X:           x,
		Y:           y,
		Angle:       math.Pi / 2,
		Radius:      t.ShipRadius,
		BlinkTime:   t.BlinkTicks,
		BlinkNumber: t.BlinkCount,
	}
}

// Exploding returns true while the explosion is playing.
func (s *Ship) Exploding() bool {
	return s.ExplodeTime > 0
}

// Invulnerable returns true while blink phases remain.
func (s *Ship) Invulnerable() bool {
	return s.BlinkNumber > 0
}

// BlinkOn returns true when the outline should be drawn in the current blink phase.
// Always true once the ship is vulnerable.
func (s *Ship) BlinkOn() bool {
	return s.BlinkNumber%2 == 0
}

// Explode starts the explosion. Calling it again with the same duration is harmless.
func (s *Ship) Explode(ticks int) {
	s.ExplodeTime = ticks
}

// Outline returns the nose and two rear corners of the ship triangle.
func (s *Ship) Outline() [3]physics.Point {
	r := s.Radius
	cos, sin := math.Cos(s.Angle), math.Sin(s.Angle)
	return [3]physics.Point{
		{X: s.X + 4.0/3*r*cos, Y: s.Y - 4.0/3*r*sin},
		{X: s.X - r*(2.0/3*cos+sin), Y: s.Y + r*(2.0/3*sin-cos)},
		{X: s.X - r*(2.0/3*cos-sin), Y: s.Y + r*(2.0/3*sin+cos)},
	}
}

// Flame returns the thrust flame triangle behind the ship.
func (s *Ship) Flame() [3]physics.Point {
	r := s.Radius
	cos, sin := math.Cos(s.Angle), math.Sin(s.Angle)
	return [3]physics.Point{
		{X: s.X - 7.0/3*r*cos, Y: s.Y + 7.0/3*r*sin},
		{X: s.X - r*(2.0/3*cos+0.25*sin), Y: s.Y + r*(2.0/3*sin-0.25*cos)},
		{X: s.X - r*(2.0/3*cos-0.25*sin), Y: s.Y + r*(2.0/3*sin+0.25*cos)},
	}
}

// ExplosionRings are the ring radii, as multiples of the ship radius, drawn
// from the outside in while the ship is exploding.
var ExplosionRings = [5]float64{1.8, 1.5, 1.2, 0.9, 0.6}
