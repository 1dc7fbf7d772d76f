package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Pixels carry an intensity in [0, 1] rather than a plain
// on/off bit; intensities map to the ANSI 256-color grayscale ramp so
// overlapping translucent objects (particles, stars, rings) read correctly.
//
// Coordinates are surface pixels: x in terminal columns, y in sub-pixels
// (two per terminal row). One Canvas is owned by exactly one animation
// instance at a time.
type Canvas struct {
	termWidth      int       // Terminal columns
	termHeight     int       // Terminal rows
	subPixelHeight int       // termHeight * 2
	pixels         []float64 // Flat: [y*termWidth + x], intensity 0..1

	// Previous frame, quantized per cell, for differential rendering.
	// A cell is re-emitted only when its quantized content changed.
	prev []cellState

	// Offset for centering the render area when the terminal is larger
	// than the max render resolution (0-based columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce per-frame allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
	polygonBuf      []Point
}

// cellState is the quantized content of one terminal cell: intensity level
// 0..shadeLevels for each half. Zero value means empty.
type cellState struct {
	top, bottom uint8
}

// cellUnknown forces a cell to re-render on the next frame.
var cellUnknown = cellState{top: 255, bottom: 255}

// shadeLevels is the number of non-zero intensity steps. The ANSI 256-color
// grayscale ramp has 24 entries (232..255).
const shadeLevels = 24

// maxChunkSize is the maximum bytes to write at once for optimal network
// flow. 1400 bytes stays under typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Point represents a 2D coordinate in surface pixels.
type Point struct {
	X, Y float64
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. Reallocates the
// pixel buffers only when the size actually changed, and forces a full
// redraw in that case.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]float64, c.subPixelHeight*termWidth)
	c.prev = make([]cellState, termHeight*termWidth)
	c.ForceRedraw()
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Width returns the surface width in pixels (terminal columns).
func (c *Canvas) Width() int { return c.termWidth }

// Height returns the surface height in pixels (sub-pixel rows).
func (c *Canvas) Height() int { return c.subPixelHeight }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels for the next frame.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw invalidates the previous-frame cache so the next Render
// emits every cell. Call after an external screen clear.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = cellUnknown
	}
}

// MarkTextDirty invalidates width cells starting at a 1-based terminal
// position, so canvas rendering overwrites text overlays drawn there.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1 - c.offsetRow
	if r < 0 || r >= c.termHeight {
		return
	}
	for i := 0; i < width; i++ {
		x := col - 1 - c.offsetCol + i
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = cellUnknown
		}
	}
}

// SetPixel blends an intensity into the pixel at integer surface
// coordinates. Overlapping writes keep the brightest value.
func (c *Canvas) SetPixel(x, y int, intensity float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	idx := y*c.termWidth + x
	if intensity > c.pixels[idx] {
		c.pixels[idx] = intensity
	}
}

// SetFloat blends an intensity at float surface coordinates.
func (c *Canvas) SetFloat(x, y, intensity float64) {
	c.SetPixel(int(math.Round(x)), int(math.Round(y)), intensity)
}

// SetPixelSolid overwrites the pixel regardless of what is already there.
// Used for opaque bodies that must occlude content drawn behind them,
// including overwriting with zero (the black hole's event horizon).
func (c *Canvas) SetPixelSolid(x, y int, intensity float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	if intensity > 1 {
		intensity = 1
	} else if intensity < 0 {
		intensity = 0
	}
	c.pixels[y*c.termWidth+x] = intensity
}

// FillCircleSolid draws a filled circle with overwrite semantics, erasing
// anything previously drawn inside it.
func (c *Canvas) FillCircleSolid(cx, cy, r, intensity float64) {
	if r <= 0 {
		return
	}
	yStart := int(math.Floor(cy - r))
	yEnd := int(math.Ceil(cy + r))
	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) - cy
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		xStart := int(math.Ceil(cx - half))
		xEnd := int(math.Floor(cx + half))
		for x := xStart; x <= xEnd; x++ {
			c.SetPixelSolid(x, y, intensity)
		}
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, intensity float64) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

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
		c.SetPixel(x1, y1, intensity)

		if x1 == x2 && y1 == y2 {
			break
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

// FillCircle draws a filled circle. With 2x vertical resolution no aspect
// correction is needed.
func (c *Canvas) FillCircle(cx, cy, r, intensity float64) {
	if r <= 0 {
		c.SetFloat(cx, cy, intensity)
		return
	}
	yStart := int(math.Floor(cy - r))
	yEnd := int(math.Ceil(cy + r))
	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) - cy
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		xStart := int(math.Ceil(cx - half))
		xEnd := int(math.Floor(cx + half))
		for x := xStart; x <= xEnd; x++ {
			c.SetPixel(x, y, intensity)
		}
	}
}

// DrawCircle draws a circle outline by angular stepping.
func (c *Canvas) DrawCircle(cx, cy, r, intensity float64) {
	if r <= 0 {
		c.SetFloat(cx, cy, intensity)
		return
	}
	steps := int(math.Ceil(2 * math.Pi * r))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		c.SetFloat(cx+math.Cos(a)*r, cy+math.Sin(a)*r, intensity)
	}
}

// DrawPolygon draws a polygon outline, optionally filled with a scanline
// pass.
func (c *Canvas) DrawPolygon(points []Point, intensity float64, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, intensity)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], intensity)
	}
}

// fillPolygon fills a polygon using the scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, intensity float64) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.SetPixel(x, y, intensity)
			}
		}
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Safe as long as each animation instance uses its own Canvas.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// quantize maps an intensity to a shade level 0..shadeLevels.
func quantize(intensity float64) uint8 {
	if intensity <= 0 {
		return 0
	}
	if intensity >= 1 {
		return shadeLevels
	}
	level := uint8(intensity*float64(shadeLevels)) + 1
	if level > shadeLevels {
		level = shadeLevels
	}
	return level
}

// grayIndex maps a non-zero shade level to the ANSI 256-color grayscale
// ramp (232 darkest .. 255 brightest).
func grayIndex(level uint8) int {
	return 231 + int(level)
}

// Render emits the frame to the writer using half-block characters,
// only touching cells whose content changed since the previous frame.
// Output is written in MTU-sized chunks.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight / 4 * 16)

	for row := 0; row < c.termHeight; row++ {
		topOffset := (row * 2) * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cellState{
				top:    quantize(c.pixels[topOffset+col]),
				bottom: quantize(c.pixels[bottomOffset+col]),
			}
			prevIdx := row*c.termWidth + col
			if cur == c.prev[prevIdx] {
				continue
			}
			c.prev[prevIdx] = cur
			c.emitCell(col, row, cur)
		}
	}

	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString("\033[0m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// emitCell appends the cursor move, color codes and half-block character
// for one cell to the render buffer.
func (c *Canvas) emitCell(col, row int, cell cellState) {
	buf := &c.renderBuf
	buf.WriteString("\033[")
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	buf.WriteByte('H')

	switch {
	case cell.top > 0 && cell.top == cell.bottom:
		// Equal halves collapse to a full block with foreground only,
		// saving the background escape.
		buf.WriteString("\033[0m\033[38;5;")
		buf.Write(strconv.AppendInt(c.numBuf[:0], int64(grayIndex(cell.top)), 10))
		buf.WriteByte('m')
		buf.WriteRune(BlockFull)
	case cell.top > 0 && cell.bottom > 0:
		buf.WriteString("\033[38;5;")
		buf.Write(strconv.AppendInt(c.numBuf[:0], int64(grayIndex(cell.top)), 10))
		buf.WriteString(";48;5;")
		buf.Write(strconv.AppendInt(c.numBuf[:0], int64(grayIndex(cell.bottom)), 10))
		buf.WriteByte('m')
		buf.WriteRune(BlockUpperHalf)
	case cell.top > 0:
		buf.WriteString("\033[0m\033[38;5;")
		buf.Write(strconv.AppendInt(c.numBuf[:0], int64(grayIndex(cell.top)), 10))
		buf.WriteByte('m')
		buf.WriteRune(BlockUpperHalf)
	case cell.bottom > 0:
		buf.WriteString("\033[0m\033[38;5;")
		buf.Write(strconv.AppendInt(c.numBuf[:0], int64(grayIndex(cell.bottom)), 10))
		buf.WriteByte('m')
		buf.WriteRune(BlockLowerHalf)
	default:
		buf.WriteString("\033[0m ")
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*24)

	moveTo := func(row, col int) {
		buf.WriteString("\033[")
		buf.WriteString(strconv.Itoa(row))
		buf.WriteByte(';')
		buf.WriteString(strconv.Itoa(col))
		buf.WriteByte('H')
	}

	if hasV {
		if hasH {
			moveTo(top, left)
			buf.WriteString("┌" + strings.Repeat("─", c.termWidth) + "┐")
			moveTo(bottom, left)
			buf.WriteString("└" + strings.Repeat("─", c.termWidth) + "┘")
		} else {
			moveTo(top, c.offsetCol+1)
			buf.WriteString(strings.Repeat("─", c.termWidth))
			moveTo(bottom, c.offsetCol+1)
			buf.WriteString(strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			moveTo(row, left)
			buf.WriteString("│")
			moveTo(row, right)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
