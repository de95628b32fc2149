package config

import (
	"flag"
	"time"
)

// Flags holds command-line overrides. Flags left unset on the command line
// do not touch the configuration.
type Flags struct {
	fs *flag.FlagSet

	path     string
	seed     string
	debug    bool
	tickRate int
	level    string
	logOut   string
	hold     time.Duration
}

// RegisterFlags defines the shared frontend flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "YAML config file (default $"+EnvPrefix+"CONFIG)")
	fs.StringVar(&f.seed, "seed", "", "asteroid field seed text")
	fs.BoolVar(&f.debug, "debug", false, "draw collision circles")
	fs.IntVar(&f.tickRate, "fps", 0, "ticks per second")
	fs.StringVar(&f.level, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.logOut, "log", "", "log output: stderr, stdout or a file path")
	fs.DurationVar(&f.hold, "hold", 0, "how long a terminal key counts as held")
	return f
}

// Resolve builds the final configuration: base, the config file, ROIDS_*
// variables, then any flags given on the command line. The result is validated.
func (f *Flags) Resolve(base Config) (Config, error) {
	c, err := LoadFile(f.configPath(), base)
	if err != nil {
		return base, err
	}
	if err := c.ApplyEnv(); err != nil {
		return base, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			c.Game.Seed = f.seed
		case "debug":
			c.Game.ShowCollision = f.debug
		case "fps":
			c.Game.TickRate = f.tickRate
		case "log-level":
			c.Log.Level = f.level
		case "log":
			c.Log.Output = f.logOut
		case "hold":
			c.Input.HoldDuration = f.hold
		}
	})

	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

func (f *Flags) configPath() string {
	if f.path != "" {
		return f.path
	}
	return GetEnv(EnvPrefix+"CONFIG", "")
}
