package object

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/physics"
)

// MaxPlacementAttempts bounds the position samples tried for one asteroid.
const MaxPlacementAttempts = 10000

// ErrPlacement is returned when no position clear of the ship could be found.
var ErrPlacement = errors.New("no room to place asteroid")

// PopulateField creates count asteroids at random integer positions, none
// closer than AsteroidSize + ship radius to the ship. It also returns the
// number of positions sampled.
func PopulateField(rng *rand.Rand, count int, ship *Ship, t config.Tuning) ([]*Asteroid, int, error) {
	width, height := int(t.Width), int(t.Height)
	if width <= 0 || height <= 0 {
		return nil, 0, errors.Wrapf(ErrPlacement, "canvas %dx%d", width, height)
	}

	clearance := t.AsteroidSize + ship.Radius
	asteroids := make([]*Asteroid, 0, count)
	samples := 0
	for i := 0; i < count; i++ {
		placed := false
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			samples++
			x := float64(rng.Intn(width))
			y := float64(rng.Intn(height))
			if physics.Distance(ship.X, ship.Y, x, y) < clearance {
				continue
			}
			asteroids = append(asteroids, NewAsteroid(rng, x, y, t))
			placed = true
			break
		}
		if !placed {
			return nil, samples, errors.Wrapf(ErrPlacement, "asteroid %d after %d attempts", i, MaxPlacementAttempts)
		}
	}
	return asteroids, samples, nil
}
