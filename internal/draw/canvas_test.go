package draw

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasScalesLogicalCoordinates(t *testing.T) {
	// 20x10 terminal = 20x20 sub-pixels for a 200x200 logical area.
	c := NewCanvas(20, 10, 200, 200)

	c.Plot(Point{X: 100, Y: 100})
	assert.True(t, c.pixel(10, 10))

	c.Plot(Point{X: 1000, Y: -5})
	w, h := c.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 5, 10, 10)
	c.Line(Point{X: 0, Y: 0}, Point{X: 9, Y: 9})

	for i := 0; i < 10; i++ {
		assert.True(t, c.pixel(i, i), "diagonal pixel %d", i)
	}
	assert.False(t, c.pixel(9, 0))
}

func TestCanvasPolygonCloses(t *testing.T) {
	c := NewCanvas(10, 5, 10, 10)
	c.Polygon([]Point{{X: 1, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 8}})

	assert.True(t, c.pixel(4, 1), "top edge")
	assert.True(t, c.pixel(8, 4), "right edge")
	assert.True(t, c.pixel(4, 4), "closing edge back to the first vertex")
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(40, 20, 40, 40)
	c.Circle(Point{X: 20, Y: 20}, 10)

	assert.True(t, c.pixel(30, 20))
	assert.True(t, c.pixel(10, 20))
	assert.True(t, c.pixel(20, 10))
	assert.False(t, c.pixel(20, 20), "outline only")
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1, 3, 2)
	c.setPixel(0, 0)
	c.setPixel(1, 1)
	c.setPixel(2, 0)
	c.setPixel(2, 1)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "\033[1;1H"+string(BlockUpperHalf))
	assert.Contains(t, out, "\033[1;2H"+string(BlockLowerHalf))
	assert.Contains(t, out, "\033[1;3H"+string(BlockFull))

	c.Clear()
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Empty(t, buf.String())
}

func TestWriteChunked(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3*MaxChunkSize+17)

	w := &countingWriter{}
	require.NoError(t, WriteChunked(w, data))
	assert.Equal(t, 4, w.writes)
	assert.LessOrEqual(t, w.largest, MaxChunkSize)
	assert.Equal(t, data, w.buf.Bytes())

	empty := &countingWriter{}
	require.NoError(t, WriteChunked(empty, nil))
	assert.Zero(t, empty.writes)
}

func TestWriteChunkedStopsOnError(t *testing.T) {
	err := WriteChunked(failWriter{}, bytes.Repeat([]byte("x"), 2*MaxChunkSize))
	require.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestCanvasRenderFull(t *testing.T) {
	c := NewCanvas(200, 50, 200, 100)
	for x := 0; x < 200; x++ {
		for y := 0; y < 100; y++ {
			c.setPixel(x, y)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, 200*50, strings.Count(buf.String(), string(BlockFull)))
}

type countingWriter struct {
	buf     bytes.Buffer
	writes  int
	largest int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	w.largest = max(w.largest, len(p))
	return w.buf.Write(p)
}

func TestResizeKeepsLogicalArea(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.Resize(20, 10)
	c.Plot(Point{X: 50, Y: 50})
	assert.True(t, c.pixel(10, 10))

	c.Resize(0, 0)
	w, h := c.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
