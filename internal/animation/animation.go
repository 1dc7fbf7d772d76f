// Package animation implements the celestial animation variants: ringed
// planet, sun-planet-moon system, asteroid belt, comet and black hole.
// Each variant advances its orbital and particle state per frame, projects
// it through the tilt model, and issues depth-ordered draw commands.
package animation

import (
	"github.com/tomz197/orrery/internal/draw"
	"github.com/tomz197/orrery/internal/orbit"
	"github.com/tomz197/orrery/internal/scene"
)

// Frame carries the drawing resources for one frame.
type Frame struct {
	Canvas  *draw.Canvas
	Geom    scene.Geometry
	Elapsed float64 // Milliseconds since Init
}

// Animation is one procedural celestial renderer. The lifecycle controller
// calls Init on every activation, Update then Draw once per frame (update
// strictly precedes drawing), and Clear on suspension or disposal so
// entity arrays become reclaimable.
type Animation interface {
	Name() string
	Init(geom scene.Geometry)
	Update(dt float64) // dt in milliseconds
	Draw(f Frame)
	Clear()
}

// point is shorthand for a draw.Point literal.
func point(x, y float64) draw.Point {
	return draw.Point{X: x, Y: y}
}

// drawDepthPoints renders one half of a depth set.
func drawDepthPoints(c *draw.Canvas, pts []orbit.DepthPoint) {
	for _, p := range pts {
		if p.Alpha <= 0 {
			continue
		}
		if p.Size > 0.7 {
			c.FillCircle(p.X, p.Y, p.Size, p.Alpha)
		} else {
			c.SetFloat(p.X, p.Y, p.Alpha)
		}
	}
}
