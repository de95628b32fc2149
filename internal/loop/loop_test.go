package loop

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/roids/internal/config"
	"github.com/tomz197/roids/internal/input"
	"github.com/tomz197/roids/internal/sim"
)

type recorder struct {
	mu     sync.Mutex
	frames []sim.Snapshot
	fail   error
}

func (r *recorder) Render(frame sim.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return r.fail
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func newWorld(t *testing.T, rate int) *sim.World {
	t.Helper()
	c := config.Default()
	c.Game.TickRate = rate
	w, err := sim.NewWorld(c.Tuning(), rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	return w
}

func TestTickStepsThenRenders(t *testing.T) {
	rec := &recorder{}
	controls := input.NewControls()
	d := NewDriver(newWorld(t, 30), controls, rec, nil)

	controls.Apply(input.Event{Key: input.KeyThrust, Pressed: true})
	require.NoError(t, d.Tick())
	require.NoError(t, d.Tick())

	require.Equal(t, 2, rec.count())
	assert.Equal(t, uint64(1), rec.frames[0].Tick)
	assert.Equal(t, uint64(2), rec.frames[1].Tick)
	assert.True(t, rec.frames[1].Ship.Thrusting)
	assert.Less(t, rec.frames[1].Ship.Y, rec.frames[0].Ship.Y)
	assert.Len(t, rec.frames[0].Asteroids, 7)
}

func TestTickReturnsRenderError(t *testing.T) {
	rec := &recorder{fail: errors.New("broken pipe")}
	d := NewDriver(newWorld(t, 30), input.NewControls(), rec, nil)

	err := d.Tick()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Contains(t, err.Error(), "render tick 1")
}

func TestRunStopsOnCancel(t *testing.T) {
	rec := &recorder{}
	d := NewDriver(newWorld(t, 200), input.NewControls(), rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.count() >= 5 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestRunStopsOnRenderError(t *testing.T) {
	rec := &recorder{fail: errors.New("closed")}
	d := NewDriver(newWorld(t, 200), input.NewControls(), rec, nil)

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, rec.count())
}

func TestRendererFunc(t *testing.T) {
	var got uint64
	r := RendererFunc(func(frame sim.Snapshot) error {
		got = frame.Tick
		return nil
	})
	d := NewDriver(newWorld(t, 30), input.NewControls(), r, nil)
	require.NoError(t, d.Tick())
	assert.Equal(t, uint64(1), got)
}
