package loop

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/draw"
	"github.com/tomz197/roids/internal/input"
	"github.com/tomz197/roids/internal/object"
	"github.com/tomz197/roids/internal/physics"
	"github.com/tomz197/roids/internal/sim"
)

const controlsHint = "A/D or arrows rotate, W or up thrust, Q quit"

// Terminal renders frames as half-block line art.
type Terminal struct {
	w      io.Writer
	size   draw.TermSizeFunc
	canvas *draw.Canvas
	buf    bytes.Buffer
	points []physics.Point // Reused for asteroid outlines
}

// NewTerminal creates a terminal renderer for a logical play area.
// size is polled every frame so resizes take effect immediately.
func NewTerminal(w io.Writer, size draw.TermSizeFunc, width, height float64) *Terminal {
	cols, rows := 80, 24
	if size != nil {
		if c, r, err := size(); err == nil {
			cols, rows = c, r
		}
	}
	return &Terminal{
		w:      w,
		size:   size,
		canvas: draw.NewCanvas(cols, rows-1, width, height),
	}
}

// Render draws one frame and writes it in a single batch.
func (t *Terminal) Render(frame sim.Snapshot) error {
	if t.size != nil {
		if cols, rows, err := t.size(); err == nil {
			// Last row is kept for the controls hint.
			t.canvas.Resize(cols, rows-1)
		}
	}

	t.canvas.Clear()
	t.drawShip(frame)
	t.drawAsteroids(frame)

	t.buf.Reset()
	draw.ClearScreen(&t.buf)
	if err := t.canvas.Render(&t.buf); err != nil {
		return err
	}
	_, rows := t.canvas.Size()
	draw.MoveCursor(&t.buf, 1, rows+1)
	t.buf.WriteString(controlsHint)

	if err := draw.WriteChunked(t.w, t.buf.Bytes()); err != nil {
		return errors.Wrap(err, "write frame")
	}
	return nil
}

func (t *Terminal) drawShip(frame sim.Snapshot) {
	view := frame.Ship
	ship := view.Body()
	center := physics.Point{X: view.X, Y: view.Y}

	if view.Exploding {
		for _, ring := range object.ExplosionRings {
			t.canvas.Circle(center, view.Radius*ring)
		}
		return
	}

	if view.Visible {
		outline := ship.Outline()
		t.canvas.Polygon(outline[:])
	}
	if view.Thrusting {
		flame := ship.Flame()
		t.canvas.Polygon(flame[:])
	}
	if frame.ShowCollision {
		t.canvas.Circle(center, view.Radius)
		t.canvas.Plot(center)
	}
}

func (t *Terminal) drawAsteroids(frame sim.Snapshot) {
	for _, view := range frame.Asteroids {
		roid := view.Body()
		t.points = roid.Outline(t.points)
		t.canvas.Polygon(t.points)

		if frame.ShowCollision {
			t.canvas.Circle(physics.Point{X: view.X, Y: view.Y}, view.Radius)
		}
	}
}

// RunTerminal plays one game on a terminal: bytes from r drive the ship and
// frames go to w. It returns when the player quits, r closes, ctx is done or
// a frame cannot be written.
func RunTerminal(ctx context.Context, r io.ByteReader, w io.Writer, size draw.TermSizeFunc, cfg config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	tuning := cfg.Tuning()

	world, err := sim.NewWorld(tuning, cfg.Rand(), log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controls := input.NewControls()
	stream := input.StartStream(ctx, r, cfg.Input.HoldDuration)
	go stream.Pump(ctx, controls, cancel)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	renderer := NewTerminal(w, size, tuning.Width, tuning.Height)
	return NewDriver(world, controls, renderer, log).Run(ctx)
}
