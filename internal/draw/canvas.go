// Package draw renders line art to a terminal using half-block characters.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/roids/internal/physics"
)

// Point is a position in logical canvas coordinates.
type Point = physics.Point

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Shapes are given in logical coordinates and scaled to the terminal size.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas mapping a logical play area onto a terminal.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Size returns the terminal dimensions the canvas renders to.
func (c *Canvas) Size() (width, height int) {
	return c.termWidth, c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// pixel reports whether a sub-pixel is set. Used by tests.
func (c *Canvas) pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Plot sets the pixel under a logical point.
func (c *Canvas) Plot(p Point) {
	c.setPixel(c.toPixel(p))
}

// Line draws a line using Bresenham's algorithm.
func (c *Canvas) Line(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed outline through points, returning to the first.
func (c *Canvas) Polygon(points []Point) {
	n := len(points)
	if n == 0 {
		return
	}
	if n == 1 {
		c.Plot(points[0])
		return
	}
	for i := 0; i < n; i++ {
		c.Line(points[i], points[(i+1)%n])
	}
}

// circleSegments is enough for smooth circles at terminal resolution.
const circleSegments = 32

// Circle draws a circle outline of logical radius r.
func (c *Canvas) Circle(center Point, r float64) {
	prev := Point{X: center.X + r, Y: center.Y}
	for i := 1; i <= circleSegments; i++ {
		a := float64(i) * 2 * math.Pi / circleSegments
		next := Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		c.Line(prev, next)
		prev = next
	}
}

// MaxChunkSize is the most bytes WriteChunked writes at once; it stays under
// a 1500-byte MTU.
const MaxChunkSize = 1400

// WriteChunked writes p in pieces of at most MaxChunkSize bytes so a large
// frame reaches an SSH session as a stream of small packets.
func WriteChunked(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n := min(len(p), MaxChunkSize)
		if _, err := w.Write(p[:n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
