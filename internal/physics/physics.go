// Package physics provides the broad-phase proximity index used to find
// close approaches between belt rocks.
package physics

import "math"

// ProximityGrid is a uniform grid for broad-phase pair finding over a
// bounded plane. Positions may be negative; the grid covers
// [minX, minX+width) x [minY, minY+height) and clamps outliers to the
// edge cells.
//
// Cell size must be >= the maximum interaction distance between any two
// inserted objects so every relevant pair lands in adjacent cells.
type ProximityGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize
	minX, minY  float64
	cols        int
	rows        int
	cells       [][]int
}

// NewProximityGrid creates a grid over the given plane bounds.
func NewProximityGrid(minX, minY, width, height, cellSize float64) *ProximityGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &ProximityGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		minX:        minX,
		minY:        minY,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Reset empties all cells without deallocating. Call once per frame before
// re-inserting.
func (g *ProximityGrid) Reset() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an object id at the given plane position.
func (g *ProximityGrid) Insert(x, y float64, id int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], id)
}

// ForEachPair calls fn once for every pair of ids in the same or adjacent
// cells. Each cell pairs internally and against its forward neighbors
// only, so no pair is reported twice.
func (g *ProximityGrid) ForEachPair(fn func(a, b int)) {
	// Forward half of the 3x3 neighborhood
	offsets := [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			items := g.cells[row*g.cols+col]
			for i := 0; i < len(items); i++ {
				for j := i + 1; j < len(items); j++ {
					fn(items[i], items[j])
				}
			}

			for _, off := range offsets {
				nc, nr := col+off[0], row+off[1]
				if nc < 0 || nc >= g.cols || nr >= g.rows {
					continue
				}
				for _, a := range items {
					for _, b := range g.cells[nr*g.cols+nc] {
						fn(a, b)
					}
				}
			}
		}
	}
}

func (g *ProximityGrid) posToCell(x, y float64) (col, row int) {
	col = int((x - g.minX) * g.invCellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int((y - g.minY) * g.invCellSize)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

// DistanceSquared is the squared distance between two points. Use when
// comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CloseApproach reports whether two circles pass within margin times their
// combined radius of each other.
func CloseApproach(x1, y1, r1, x2, y2, r2, margin float64) bool {
	d := (r1 + r2) * margin
	return DistanceSquared(x1, y1, x2, y2) < d*d
}
