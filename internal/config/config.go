// Package config centralizes all tunable game parameters.
package config

import (
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) by Validate when any parameter is unusable.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of the game and its frontends.
type Config struct {
	Game      Game      `yaml:"game"`
	Ship      Ship      `yaml:"ship"`
	Asteroids Asteroids `yaml:"asteroids"`
	Canvas    Canvas    `yaml:"canvas"`
	Input     Input     `yaml:"input"`
	Log       Log       `yaml:"log"`
	Server    Server    `yaml:"server"`
}

// Game holds simulation-wide settings.
type Game struct {
	TickRate      int     `yaml:"tick_rate"`      // Ticks per second
	Friction      float64 `yaml:"friction"`       // 0 = no friction
	ShowCollision bool    `yaml:"show_collision"` // Draw collision circles
	Seed          string  `yaml:"seed"`           // Empty = time based
}

// Ship holds player ship settings. Durations are in seconds.
type Ship struct {
	Thrust               float64 `yaml:"thrust"`                // Acceleration, pixels/sec^2
	Size                 float64 `yaml:"size"`                  // Height in pixels
	ExplodeDuration      float64 `yaml:"explode_duration"`      // Explosion length
	InvulnerableDuration float64 `yaml:"invulnerable_duration"` // Respawn protection
	BlinkDuration        float64 `yaml:"blink_duration"`        // One blink phase
	TurnSpeed            float64 `yaml:"turn_speed"`            // Degrees/sec
}

// Asteroids holds asteroid field settings.
type Asteroids struct {
	Count    int     `yaml:"count"`    // Average number spawned
	Jag      float64 `yaml:"jag"`      // Jaggedness, 0 = round
	Speed    float64 `yaml:"speed"`    // Max start speed, pixels/sec
	Size     float64 `yaml:"size"`     // Diameter in pixels
	Vertices int     `yaml:"vertices"` // Average vertex count
}

// Canvas is the logical play area. It does not change during a run.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Input holds keyboard settings for terminal frontends.
type Input struct {
	// HoldDuration is how long a key counts as held after its last byte.
	// Terminals never report key release.
	HoldDuration time.Duration `yaml:"hold_duration"`
}

// Log holds logger settings.
type Log struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
	Output   string `yaml:"output"`   // stderr, stdout or a file path
}

// Server holds network frontend addresses.
type Server struct {
	SSHHost     string `yaml:"ssh_host"`
	SSHPort     string `yaml:"ssh_port"`
	HostKeyPath string `yaml:"host_key_path"`
	WebHost     string `yaml:"web_host"`
	WebPort     string `yaml:"web_port"`
	DisplayHost string `yaml:"display_host"` // SSH host shown on the web page
}

// Default returns the classic browser-sized configuration.
func Default() Config {
	return Config{
		Game: Game{
			TickRate: 30,
			Friction: 0.03,
		},
		Ship: Ship{
			Thrust:               5,
			Size:                 30,
			ExplodeDuration:      1,
			InvulnerableDuration: 3,
			BlinkDuration:        0.1,
			TurnSpeed:            360,
		},
		Asteroids: Asteroids{
			Count:    5,
			Jag:      0.3,
			Speed:    50,
			Size:     100,
			Vertices: 10,
		},
		Canvas: Canvas{Width: 760, Height: 570},
		Input:  Input{HoldDuration: 200 * time.Millisecond},
		Log:    Log{Level: "info", Encoding: "json", Output: "stderr"},
		Server: Server{
			SSHHost:     "::",
			SSHPort:     "2222",
			HostKeyPath: "/app/keys/host_key",
			WebHost:     "0.0.0.0",
			WebPort:     "8080",
			DisplayHost: "your-server.com",
		},
	}
}

// Terminal returns a configuration scaled down for a terminal canvas.
// Terminal cells are coarse, so the play area is small and objects shrink with it.
func Terminal() Config {
	c := Default()
	c.Canvas = Canvas{Width: 240, Height: 160}
	c.Ship.Size = 8
	c.Ship.Thrust = 1.6
	c.Asteroids.Size = 28
	c.Asteroids.Speed = 16
	c.Log.Encoding = "console"
	return c
}

// Load decodes YAML from r on top of base.
func Load(r io.Reader, base Config) (Config, error) {
	c := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return base, errors.Wrap(err, "decode config")
	}
	return c, nil
}

// LoadFile reads a YAML file on top of base. An empty path returns base.
func LoadFile(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return base, errors.Wrap(err, "open config")
	}
	defer f.Close()

	c, err := Load(f, base)
	if err != nil {
		return base, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

// Validate reports every unusable parameter at once.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Game.TickRate > 0, "game.tick_rate must be positive")
	check(c.Game.Friction >= 0, "game.friction must not be negative")
	check(c.Ship.Thrust >= 0, "ship.thrust must not be negative")
	check(c.Ship.Size > 0, "ship.size must be positive")
	check(c.Ship.ExplodeDuration > 0, "ship.explode_duration must be positive")
	check(c.Ship.InvulnerableDuration >= 0, "ship.invulnerable_duration must not be negative")
	check(c.Ship.BlinkDuration > 0, "ship.blink_duration must be positive")
	check(c.Asteroids.Count >= 0, "asteroids.count must not be negative")
	check(c.Asteroids.Jag >= 0 && c.Asteroids.Jag < 1, "asteroids.jag must be in [0, 1)")
	check(c.Asteroids.Speed >= 0, "asteroids.speed must not be negative")
	check(c.Asteroids.Size > 0, "asteroids.size must be positive")
	check(c.Asteroids.Vertices >= 2, "asteroids.vertices must be at least 2")
	check(c.Canvas.Width > 0 && c.Canvas.Height > 0, "canvas dimensions must be positive")
	check(c.Input.HoldDuration > 0, "input.hold_duration must be positive")

	if c.Canvas.Width > 0 && c.Canvas.Height > 0 && c.Ship.Size > 0 && c.Asteroids.Size > 0 {
		// The farthest sample from the centre is the (0, 0) corner.
		reach := math.Hypot(float64(c.Canvas.Width)/2, float64(c.Canvas.Height)/2)
		check(reach > c.Asteroids.Size+c.Ship.Size/2,
			"canvas too small to place asteroids away from the ship spawn")
	}

	// Values that are positive can still round to zero ticks.
	if len(problems) == 0 {
		t := c.Tuning()
		check(t.TickInterval > 0, "game.tick_rate too high for a timer")
		check(t.ExplodeTicks >= 1, "ship.explode_duration must last at least one tick")
		check(t.BlinkTicks >= 1, "ship.blink_duration must last at least one tick")
		check(c.Input.HoldDuration/4 > 0, "input.hold_duration too short to poll")
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
