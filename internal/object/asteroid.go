package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/physics"
)

// Asteroid is a drifting space rock. Only its position changes after creation.
type Asteroid struct {
	X, Y     float64   // Position (center)
	VX, VY   float64   // Velocity per tick
	Radius   float64   // Collision/draw radius
	Angle    float64   // Orientation of vertex 0
	Vertices int       // Polygon vertex count
	Offsets  []float64 // Radius scale per vertex, len == Vertices
}

// NewAsteroid creates an asteroid at (x, y) with random drift and a jagged outline.
func NewAsteroid(rng *rand.Rand, x, y float64, t config.Tuning) *Asteroid {
	a := &Asteroid{
		X:      x,
		Y:      y,
		VX:     rng.Float64() * t.AsteroidSpeedPerTick * randomSign(rng),
		VY:     rng.Float64() * t.AsteroidSpeedPerTick * randomSign(rng),
		Radius: t.AsteroidRadius,
		Angle:  rng.Float64() * math.Pi * 2,
	}

	avg := float64(t.AsteroidVertices)
	a.Vertices = max(int(math.Floor(rng.Float64()*(avg+1)+avg/2)), 1)

	a.Offsets = make([]float64, a.Vertices)
	for i := range a.Offsets {
		a.Offsets[i] = rng.Float64()*t.AsteroidJag*2 + 1 - t.AsteroidJag
	}
	return a
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() < 0.5 {
		return 1
	}
	return -1
}

// Move advances the asteroid by its velocity and wraps it at the canvas edges.
func (a *Asteroid) Move(width, height float64) {
	a.X += a.VX
	a.Y += a.VY
	wrap(&a.X, &a.Y, a.Radius, width, height)
}

// VertexAt returns the position of vertex j.
func (a *Asteroid) VertexAt(j int) physics.Point {
	angle := a.Angle + float64(j)*math.Pi*2/float64(a.Vertices)
	return physics.Point{
		X: a.X + a.Radius*a.Offsets[j]*math.Cos(angle),
		Y: a.Y + a.Radius*a.Offsets[j]*math.Sin(angle),
	}
}

// Outline fills points with the polygon vertices, reusing its backing array.
func (a *Asteroid) Outline(points []physics.Point) []physics.Point {
	points = points[:0]
	for j := 0; j < a.Vertices; j++ {
		points = append(points, a.VertexAt(j))
	}
	return points
}
