package sim

import "github.com/tomz197/roids/internal/object"

// Snapshot is the read-only state a renderer needs for one frame.
type Snapshot struct {
	Tick          uint64         `msgpack:"tick"`
	Width         float64        `msgpack:"w"`
	Height        float64        `msgpack:"h"`
	ShowCollision bool           `msgpack:"debug"`
	Ship          ShipView       `msgpack:"ship"`
	Asteroids     []AsteroidView `msgpack:"roids"`
}

// ShipView is the ship as seen by a renderer.
type ShipView struct {
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	Angle     float64 `msgpack:"a"`
	Radius    float64 `msgpack:"r"`
	Exploding bool    `msgpack:"boom"`
	Visible   bool    `msgpack:"vis"` // Outline drawn this blink phase
	Thrusting bool    `msgpack:"thr"`
}

// Body rebuilds a ship carrying the view's geometry, for outline helpers.
func (v ShipView) Body() object.Ship {
	return object.Ship{X: v.X, Y: v.Y, Angle: v.Angle, Radius: v.Radius}
}

// AsteroidView is an asteroid as seen by a renderer.
type AsteroidView struct {
	X        float64   `msgpack:"x"`
	Y        float64   `msgpack:"y"`
	Radius   float64   `msgpack:"r"`
	Angle    float64   `msgpack:"a"`
	Vertices int       `msgpack:"n"`
	Offsets  []float64 `msgpack:"off"`
}

// Body rebuilds an asteroid carrying the view's geometry, for outline helpers.
func (v AsteroidView) Body() object.Asteroid {
	return object.Asteroid{
		X: v.X, Y: v.Y, Radius: v.Radius, Angle: v.Angle,
		Vertices: v.Vertices, Offsets: v.Offsets,
	}
}

// Snapshot captures the current state. Asteroid offsets are shared, not
// copied; they never change after creation.
func (w *World) Snapshot() Snapshot {
	ship := w.Ship
	snap := Snapshot{
		Tick:          w.tick,
		Width:         w.tuning.Width,
		Height:        w.tuning.Height,
		ShowCollision: w.tuning.ShowCollision,
		Ship: ShipView{
			X:         ship.X,
			Y:         ship.Y,
			Angle:     ship.Angle,
			Radius:    ship.Radius,
			Exploding: ship.Exploding(),
			Visible:   !ship.Exploding() && ship.BlinkOn(),
			Thrusting: ship.Thrusting,
		},
		Asteroids: make([]AsteroidView, len(w.Asteroids)),
	}
	for i, a := range w.Asteroids {
		snap.Asteroids[i] = AsteroidView{
			X:        a.X,
			Y:        a.Y,
			Radius:   a.Radius,
			Angle:    a.Angle,
			Vertices: a.Vertices,
			Offsets:  a.Offsets,
		}
	}
	return snap
}
