package object

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/physics"
)

func classic() config.Tuning {
	return config.Default().Tuning()
}

func TestNewShip(t *testing.T) {
	s := NewShip(380, 285, classic())

	assert.Equal(t, 380.0, s.X)
	assert.Equal(t, 285.0, s.Y)
	assert.Equal(t, math.Pi/2, s.Angle)
	assert.Zero(t, s.Rotation)
	assert.Zero(t, s.ThrustX)
	assert.Zero(t, s.ThrustY)
	assert.False(t, s.Thrusting)
	assert.Equal(t, 15.0, s.Radius)
	assert.Zero(t, s.ExplodeTime)
	assert.Equal(t, 3, s.BlinkTime)
	assert.Equal(t, 30, s.BlinkNumber)

	assert.False(t, s.Exploding())
	assert.True(t, s.Invulnerable())
	assert.True(t, s.BlinkOn())
}

func TestShipExplode(t *testing.T) {
	s := NewShip(0, 0, classic())
	s.Explode(30)
	s.Explode(30)
	assert.True(t, s.Exploding())
	assert.Equal(t, 30, s.ExplodeTime)
}

func TestShipOutlineFacingUp(t *testing.T) {
	s := NewShip(100, 100, classic())
	pts := s.Outline()

	// Nose sits 4/3 r above the centre.
	assert.InDelta(t, 100.0, pts[0].X, 1e-9)
	assert.InDelta(t, 80.0, pts[0].Y, 1e-9)
	// Rear corners sit 2/3 r below, r either side.
	assert.InDelta(t, 85.0, pts[1].X, 1e-9)
	assert.InDelta(t, 110.0, pts[1].Y, 1e-9)
	assert.InDelta(t, 115.0, pts[2].X, 1e-9)
	assert.InDelta(t, 110.0, pts[2].Y, 1e-9)

	flame := s.Flame()
	assert.InDelta(t, 135.0, flame[0].Y, 1e-9)
}

func TestNewAsteroidShape(t *testing.T) {
	tun := classic()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		a := NewAsteroid(rng, 10, 20, tun)

		require.GreaterOrEqual(t, a.Vertices, 5)
		require.LessOrEqual(t, a.Vertices, 15)
		require.Len(t, a.Offsets, a.Vertices)
		for _, off := range a.Offsets {
			require.GreaterOrEqual(t, off, 1-tun.AsteroidJag)
			require.Less(t, off, 1+tun.AsteroidJag)
		}

		require.Equal(t, 50.0, a.Radius)
		require.GreaterOrEqual(t, a.Angle, 0.0)
		require.Less(t, a.Angle, 2*math.Pi)
		require.LessOrEqual(t, math.Abs(a.VX), tun.AsteroidSpeedPerTick)
		require.LessOrEqual(t, math.Abs(a.VY), tun.AsteroidSpeedPerTick)
	}
}

func TestNewAsteroidAlwaysHasAVertex(t *testing.T) {
	c := config.Default()
	c.Asteroids.Vertices = 2
	tun := c.Tuning()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		a := NewAsteroid(rng, 0, 0, tun)
		require.GreaterOrEqual(t, a.Vertices, 1)
		require.Len(t, a.Offsets, a.Vertices)
	}
}

func TestAsteroidDriftsBothWays(t *testing.T) {
	tun := classic()
	rng := rand.New(rand.NewSource(3))

	var neg, pos int
	for i := 0; i < 200; i++ {
		a := NewAsteroid(rng, 0, 0, tun)
		if a.VX < 0 {
			neg++
		} else {
			pos++
		}
	}
	assert.Positive(t, neg)
	assert.Positive(t, pos)
}

func TestAsteroidMoveKeepsShape(t *testing.T) {
	tun := classic()
	a := NewAsteroid(rand.New(rand.NewSource(5)), 100, 100, tun)
	offsets := append([]float64(nil), a.Offsets...)
	angle, vertices := a.Angle, a.Vertices

	for i := 0; i < 1000; i++ {
		a.Move(tun.Width, tun.Height)
	}

	assert.Equal(t, offsets, a.Offsets)
	assert.Equal(t, angle, a.Angle)
	assert.Equal(t, vertices, a.Vertices)
}

func TestAsteroidOutline(t *testing.T) {
	a := &Asteroid{X: 10, Y: 10, Radius: 2, Vertices: 4, Offsets: []float64{1, 1, 1, 1}}
	pts := a.Outline(nil)

	require.Len(t, pts, 4)
	assert.InDelta(t, 12.0, pts[0].X, 1e-9)
	assert.InDelta(t, 10.0, pts[0].Y, 1e-9)
	// Asteroid vertices use +sin, unlike the ship heading.
	assert.InDelta(t, 10.0, pts[1].X, 1e-9)
	assert.InDelta(t, 12.0, pts[1].Y, 1e-9)
}

func TestShipWrap(t *testing.T) {
	s := NewShip(0, 0, classic())

	s.X = 760 + 15
	s.Wrap(760, 570)
	assert.Equal(t, 775.0, s.X, "exactly at the edge does not wrap")

	s.X = 760 + 15.5
	s.Wrap(760, 570)
	assert.Equal(t, -15.0, s.X)

	s.Y = -16
	s.Wrap(760, 570)
	assert.Equal(t, 585.0, s.Y)
}

func TestShipCollides(t *testing.T) {
	s := NewShip(0, 0, classic())
	a := &Asteroid{X: 65, Y: 0, Radius: 50}
	assert.False(t, s.Collides(a), "touching circles do not collide")

	a.X = 65 - 1e-6
	assert.True(t, s.Collides(a))
}

func TestPopulateFieldKeepsClearOfShip(t *testing.T) {
	tun := classic()
	ship := NewShip(tun.Width/2, tun.Height/2, tun)

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		field, samples, err := PopulateField(rng, tun.FieldSize, ship, tun)
		require.NoError(t, err)
		require.Len(t, field, 7)
		require.GreaterOrEqual(t, samples, 7)

		for _, a := range field {
			d := physics.Distance(ship.X, ship.Y, a.X, a.Y)
			require.GreaterOrEqual(t, d, tun.AsteroidSize+ship.Radius)
			require.Equal(t, math.Trunc(a.X), a.X, "integer position")
			require.GreaterOrEqual(t, a.X, 0.0)
			require.Less(t, a.X, tun.Width)
			require.GreaterOrEqual(t, a.Y, 0.0)
			require.Less(t, a.Y, tun.Height)
		}
	}
}

func TestPopulateFieldGivesUpWhenNoRoom(t *testing.T) {
	c := config.Default()
	c.Canvas = config.Canvas{Width: 50, Height: 50}
	tun := c.Tuning()
	ship := NewShip(25, 25, tun)

	_, samples, err := PopulateField(rand.New(rand.NewSource(1)), 3, ship, tun)
	require.Error(t, err)
	assert.Equal(t, MaxPlacementAttempts, samples)
	assert.True(t, errors.Is(err, ErrPlacement))
}

func TestPopulateFieldEmpty(t *testing.T) {
	tun := classic()
	field, samples, err := PopulateField(rand.New(rand.NewSource(1)), 0, NewShip(0, 0, tun), tun)
	require.NoError(t, err)
	assert.Empty(t, field)
	assert.Zero(t, samples)
}
