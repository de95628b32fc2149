// Package sim advances the game world one fixed tick at a time.
package sim

import (
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/input"
	"github.com/tomz197/roids/internal/object"
	"github.com/tomz197/roids/internal/physics"
)

// World is the whole simulation state: one ship and the asteroid field.
// It is owned by a single driver; nothing else mutates it.
type World struct {
	Ship      *object.Ship
	Asteroids []*object.Asteroid

	tuning config.Tuning
	log    *zap.Logger
	tick   uint64
}

// NewWorld spawns the ship at the canvas centre and places the asteroid field
// around it.
func NewWorld(t config.Tuning, rng *rand.Rand, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{tuning: t, log: log}
	w.Ship = w.newShip()

	asteroids, samples, err := object.PopulateField(rng, t.FieldSize, w.Ship, t)
	if err != nil {
		log.Warn("field population failed", zap.Int("attempts", samples), zap.Error(err))
		return nil, errors.Wrap(err, "populate field")
	}
	w.Asteroids = asteroids

	log.Debug("world created",
		zap.Float64("width", t.Width),
		zap.Float64("height", t.Height),
		zap.Int("asteroids", len(asteroids)),
		zap.Int("attempts", samples))
	return w, nil
}

// Tuning returns the constants the world runs with.
func (w *World) Tuning() config.Tuning {
	return w.tuning
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

func (w *World) newShip() *object.Ship {
	return object.NewShip(w.tuning.Width/2, w.tuning.Height/2, w.tuning)
}

// Respawn replaces the ship with a brand-new one at the centre. The old ship
// is discarded rather than reset so no state survives the respawn.
func (w *World) Respawn() {
	w.Ship = w.newShip()
	w.log.Debug("ship respawned", zap.Uint64("tick", w.tick))
}

// Step advances the world by one tick using a snapshot of the controls.
func (w *World) Step(in input.State) {
	t := w.tuning
	ship := w.Ship
	exploding := ship.Exploding()

	// Heading follows input even while exploding.
	ship.Rotation = in.Rotation(t.TurnPerTick)
	ship.Thrusting = in.Thrusting
	ship.Angle += ship.Rotation

	if ship.Thrusting {
		hx, hy := physics.Heading(ship.Angle)
		ship.ThrustX += t.ThrustPerTick * hx
		ship.ThrustY += t.ThrustPerTick * hy
	} else {
		ship.ThrustX -= t.FrictionPerTick * ship.ThrustX
		ship.ThrustY -= t.FrictionPerTick * ship.ThrustY
	}

	if exploding {
		ship.ExplodeTime--
		if ship.ExplodeTime == 0 {
			w.Respawn()
		}
	} else {
		ship.X += ship.ThrustX
		ship.Y += ship.ThrustY

		if !ship.Invulnerable() {
			w.collide(ship)
		}

		ship.Wrap(t.Width, t.Height)

		if ship.BlinkNumber > 0 {
			ship.BlinkTime--
			if ship.BlinkTime == 0 {
				ship.BlinkTime = t.BlinkTicks
				ship.BlinkNumber--
			}
		}
	}

	for _, a := range w.Asteroids {
		a.Move(t.Width, t.Height)
	}

	w.tick++
}

// collide tests the ship against every asteroid. All asteroids are checked
// even after a hit; a repeated hit sets the same explosion time.
func (w *World) collide(ship *object.Ship) {
	hits := 0
	for _, a := range w.Asteroids {
		if ship.Collides(a) {
			ship.Explode(w.tuning.ExplodeTicks)
			hits++
		}
	}
	if hits > 0 {
		w.log.Info("ship destroyed",
			zap.Uint64("tick", w.tick),
			zap.Float64("x", ship.X),
			zap.Float64("y", ship.Y),
			zap.Int("hits", hits))
	}
}
