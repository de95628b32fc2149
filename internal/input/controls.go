// Package input turns key events into the ship's control intent.
package input

import "sync"

// Direction is the rotation the player is asking for.
type Direction int

const (
	RotateNone Direction = iota
	RotateLeft
	RotateRight
)

// String returns a short name for logging.
func (d Direction) String() string {
	switch d {
	case RotateLeft:
		return "left"
	case RotateRight:
		return "right"
	default:
		return "none"
	}
}

// Key identifies a game control.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyThrust
	KeyFire
	KeyQuit
)

// Event is a key going down (Pressed) or up.
type Event struct {
	Key     Key
	Pressed bool
}

// State is a consistent copy of the control intent, read once per tick.
type State struct {
	Rotate    Direction
	Thrusting bool
}

// Rotation returns the heading change per tick for the given turn rate.
// Left turns counter-clockwise (positive), right turns clockwise.
func (s State) Rotation(turnPerTick float64) float64 {
	switch s.Rotate {
	case RotateLeft:
		return turnPerTick
	case RotateRight:
		return -turnPerTick
	default:
		return 0
	}
}

// Controls holds the current control intent. Key events may arrive from any
// goroutine; the simulation reads a Snapshot at the start of each tick so a
// step never sees a half-applied update.
type Controls struct {
	mu    sync.Mutex
	state State
}

// NewControls creates controls with nothing held.
func NewControls() *Controls {
	return &Controls{}
}

// Apply updates the intent from a key event. Repeated presses of a held key
// set the same value again, so key repeat never accumulates.
func (c *Controls) Apply(ev Event) {
	switch ev.Key {
	case KeyLeft:
		c.rotate(RotateLeft, ev.Pressed)
	case KeyRight:
		c.rotate(RotateRight, ev.Pressed)
	case KeyThrust:
		c.mu.Lock()
		c.state.Thrusting = ev.Pressed
		c.mu.Unlock()
	case KeyFire:
		c.Fire(ev.Pressed)
	}
}

// rotate starts turning on press. Releasing either rotation key stops turning
// outright; angular velocity is zeroed, not decayed.
func (c *Controls) rotate(d Direction, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pressed {
		c.state.Rotate = d
	} else {
		c.state.Rotate = RotateNone
	}
}

// Fire is the hook for the laser. Lasers are not part of the game yet, so
// the event is accepted and has no effect.
func (c *Controls) Fire(pressed bool) {}

// Snapshot returns the intent as it stands now.
func (c *Controls) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset releases every key.
func (c *Controls) Reset() {
	c.mu.Lock()
	c.state = State{}
	c.mu.Unlock()
}
