// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap.
// Circles that exactly touch do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) < r1+r2
}

// Heading returns the screen-space unit vector for an angle.
// Angles grow counter-clockwise while screen y grows downward, so y is negated.
func Heading(angle float64) (x, y float64) {
	return math.Cos(angle), -math.Sin(angle)
}

// Wrap moves a coordinate to the opposite edge once it is more than radius
// outside [0, extent]. Coordinates inside that band are returned unchanged.
func Wrap(v, radius, extent float64) float64 {
	switch {
	case v < -radius:
		return extent + radius
	case v > extent+radius:
		return -radius
	default:
		return v
	}
}

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}
