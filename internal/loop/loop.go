// Package loop drives the simulation at a fixed tick rate and hands each
// frame to a renderer.
package loop

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/input"
	"github.com/tomz197/roids/internal/sim"
)

// Renderer consumes one snapshot per tick. It must not keep references
// past the call except for the immutable asteroid offsets.
type Renderer interface {
	Render(frame sim.Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(frame sim.Snapshot) error

// Render calls f.
func (f RendererFunc) Render(frame sim.Snapshot) error {
	return f(frame)
}

// Driver owns a world and steps it once per tick, then renders the result.
type Driver struct {
	world    *sim.World
	controls *input.Controls
	renderer Renderer
	interval time.Duration
	log      *zap.Logger
}

// NewDriver creates a driver ticking at the world's configured rate.
func NewDriver(world *sim.World, controls *input.Controls, renderer Renderer, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		world:    world,
		controls: controls,
		renderer: renderer,
		interval: world.Tuning().TickInterval,
		log:      log,
	}
}

// World returns the driven world.
func (d *Driver) World() *sim.World {
	return d.world
}

// Tick runs one simulation step against a single snapshot of the controls,
// then renders the result.
func (d *Driver) Tick() error {
	d.world.Step(d.controls.Snapshot())
	if err := d.renderer.Render(d.world.Snapshot()); err != nil {
		return errors.Wrapf(err, "render tick %d", d.world.Tick())
	}
	return nil
}

// Run ticks until ctx is done or rendering fails. A cancelled context is a
// normal stop and returns nil.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.log.Debug("driver started", zap.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			d.log.Debug("driver stopped", zap.Uint64("ticks", d.world.Tick()))
			return nil
		case <-ticker.C:
			if err := d.Tick(); err != nil {
				d.log.Warn("render failed", zap.Error(err))
				return err
			}
		}
	}
}
