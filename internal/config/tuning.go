package config

import (
	"math"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Tuning holds per-tick constants derived once from a validated Config.
type Tuning struct {
	TickRate      int
	TickInterval  time.Duration
	ShowCollision bool

	TurnPerTick     float64 // Radians added to the heading per tick
	ThrustPerTick   float64 // Velocity gained per tick while thrusting
	FrictionPerTick float64 // Fraction of velocity lost per tick while coasting

	ShipRadius   float64
	ExplodeTicks int // Ticks the ship spends exploding
	BlinkTicks   int // Ticks per blink phase
	BlinkCount   int // Blink phases in the invulnerability window

	AsteroidRadius       float64
	AsteroidSize         float64
	AsteroidSpeedPerTick float64
	AsteroidJag          float64
	AsteroidVertices     int
	FieldSize            int // Asteroids created at start

	Width  float64
	Height float64
}

// Tuning derives the per-tick constants. Call Validate first.
func (c Config) Tuning() Tuning {
	rate := float64(c.Game.TickRate)
	return Tuning{
		TickRate:      c.Game.TickRate,
		TickInterval:  time.Second / time.Duration(c.Game.TickRate),
		ShowCollision: c.Game.ShowCollision,

		TurnPerTick:     c.Ship.TurnSpeed / 180 * math.Pi / rate,
		ThrustPerTick:   c.Ship.Thrust / rate,
		FrictionPerTick: c.Game.Friction / rate,

		ShipRadius:   c.Ship.Size / 2,
		ExplodeTicks: ceilTicks(c.Ship.ExplodeDuration * rate),
		BlinkTicks:   ceilTicks(c.Ship.BlinkDuration * rate),
		BlinkCount:   ceilTicks(c.Ship.InvulnerableDuration / c.Ship.BlinkDuration),

		AsteroidRadius:       c.Asteroids.Size / 2,
		AsteroidSize:         c.Asteroids.Size,
		AsteroidSpeedPerTick: c.Asteroids.Speed / rate,
		AsteroidJag:          c.Asteroids.Jag,
		AsteroidVertices:     c.Asteroids.Vertices,
		FieldSize:            c.Asteroids.Count + 2,

		Width:  float64(c.Canvas.Width),
		Height: float64(c.Canvas.Height),
	}
}

// ceilTicks rounds up, ignoring float noise such as 3.0000000000000004.
func ceilTicks(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// Rand returns the random source for a run. A seed text gives a reproducible
// run; an empty seed is time based.
func (c Config) Rand() *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(c.Game.Seed)))
}

// SeedValue hashes seed text into a source seed.
func SeedValue(seed string) int64 {
	if seed == "" {
		return time.Now().UnixNano()
	}
	return int64(xxhash.Sum64String(seed))
}
