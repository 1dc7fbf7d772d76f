// Package scene owns rendering-surface sizing: the viewport tracks the
// host terminal's box, derives the geometry constants every animation
// reads, and triggers population re-seeding when the surface changes.
package scene

import "math"

// PixelDensityY is the device pixel-density factor of the half-block
// surface: two vertical sub-pixels per terminal row.
const PixelDensityY = 2

// Geometry holds the size-derived constants for the current surface.
// It is recomputed wholesale on every effective resize.
type Geometry struct {
	Width   float64 // Surface pixels (terminal columns)
	Height  float64 // Surface pixels (rows × PixelDensityY)
	CenterX float64
	CenterY float64
}

// BodyRadius returns a body radius as a fixed fraction of surface width.
func (g Geometry) BodyRadius(ratio float64) float64 {
	return g.Width * ratio
}

// OrbitRadius returns an orbit radius as a fixed fraction of surface width.
func (g Geometry) OrbitRadius(ratio float64) float64 {
	return g.Width * ratio
}

// StarCount scales the background star population with surface area.
func (g Geometry) StarCount() int {
	n := int(g.Width * g.Height / 140)
	if n < 16 {
		n = 16
	}
	if n > 420 {
		n = 420
	}
	return n
}

// ParticleBudget scales a particle population with surface area.
func (g Geometry) ParticleBudget(perPixel float64) int {
	return int(math.Ceil(g.Width * g.Height * perPixel))
}

// Viewport maps host-element size changes to geometry recomputation and
// population re-seeding. Reseeding replaces star and particle populations
// from scratch (no incremental resize) to keep density visually
// consistent.
type Viewport struct {
	geom     Geometry
	hasGeom  bool
	onReseed func(Geometry)
}

// NewViewport creates a viewport. onReseed runs after every effective
// resize with the freshly derived geometry.
func NewViewport(onReseed func(Geometry)) *Viewport {
	return &Viewport{onReseed: onReseed}
}

// Resize recomputes geometry for a host box of cols × rows terminal cells
// and re-seeds populations. Idempotent: an identical box is a no-op.
// A zero-area box is skipped entirely, retaining the previous (possibly
// empty) state rather than deriving degenerate constants.
// Returns whether a reseed happened.
func (v *Viewport) Resize(cols, rows int) bool {
	if cols <= 0 || rows <= 0 {
		return false
	}

	geom := Geometry{
		Width:  float64(cols),
		Height: float64(rows * PixelDensityY),
	}
	geom.CenterX = geom.Width / 2
	geom.CenterY = geom.Height / 2

	if v.hasGeom && geom == v.geom {
		return false
	}

	v.geom = geom
	v.hasGeom = true
	if v.onReseed != nil {
		v.onReseed(geom)
	}
	return true
}

// Geometry returns the current geometry and whether one has been derived.
func (v *Viewport) Geometry() (Geometry, bool) {
	return v.geom, v.hasGeom
}
