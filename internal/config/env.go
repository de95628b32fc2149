package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROIDS_"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides c with any ROIDS_* variables that are set.
func (c *Config) ApplyEnv() error {
	var problems []string
	str := func(name string, dst *string) {
		*dst = GetEnv(EnvPrefix+name, *dst)
	}
	num := func(name string, dst *float64) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				problems = append(problems, EnvPrefix+name+"="+v)
				return
			}
			*dst = f
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				problems = append(problems, EnvPrefix+name+"="+v)
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				problems = append(problems, EnvPrefix+name+"="+v)
				return
			}
			*dst = b
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				problems = append(problems, EnvPrefix+name+"="+v)
				return
			}
			*dst = d
		}
	}

	integer("TICK_RATE", &c.Game.TickRate)
	num("FRICTION", &c.Game.Friction)
	flag("SHOW_COLLISION", &c.Game.ShowCollision)
	str("SEED", &c.Game.Seed)

	num("SHIP_THRUST", &c.Ship.Thrust)
	num("SHIP_SIZE", &c.Ship.Size)
	num("SHIP_EXPLODE_DURATION", &c.Ship.ExplodeDuration)
	num("SHIP_INVULNERABLE_DURATION", &c.Ship.InvulnerableDuration)
	num("SHIP_BLINK_DURATION", &c.Ship.BlinkDuration)
	num("TURN_SPEED", &c.Ship.TurnSpeed)

	integer("ASTEROIDS_COUNT", &c.Asteroids.Count)
	num("ASTEROIDS_JAG", &c.Asteroids.Jag)
	num("ASTEROIDS_SPEED", &c.Asteroids.Speed)
	num("ASTEROIDS_SIZE", &c.Asteroids.Size)
	integer("ASTEROIDS_VERTICES", &c.Asteroids.Vertices)

	integer("CANVAS_WIDTH", &c.Canvas.Width)
	integer("CANVAS_HEIGHT", &c.Canvas.Height)
	duration("INPUT_HOLD", &c.Input.HoldDuration)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_ENCODING", &c.Log.Encoding)
	str("LOG_OUTPUT", &c.Log.Output)

	str("SSH_HOST", &c.Server.SSHHost)
	str("SSH_PORT", &c.Server.SSHPort)
	str("SSH_HOST_KEY", &c.Server.HostKeyPath)
	str("WEB_HOST", &c.Server.WebHost)
	str("WEB_PORT", &c.Server.WebPort)
	str("SSH_DISPLAY_HOST", &c.Server.DisplayHost)

	if len(problems) > 0 {
		return errors.Errorf("bad environment override: %s", strings.Join(problems, ", "))
	}
	return nil
}

// FromEnvironment builds the configuration without command-line flags: base,
// the YAML file named by path (or ROIDS_CONFIG), then ROIDS_* overrides.
// The result is validated.
func FromEnvironment(path string, base Config) (Config, error) {
	f := &Flags{fs: flag.NewFlagSet("env", flag.ContinueOnError), path: path}
	return f.Resolve(base)
}
