// Package orbit maps orbit-plane coordinates to screen space through a
// pair of fixed tilt rotations, producing a depth value used for
// front/back draw ordering around a central body.
package orbit

import "math"

// Projected is a screen-space point with its depth discriminant.
type Projected struct {
	X, Y  float64 // Screen position (anchor applied)
	Depth float64 // Post-tilt z'; <= 0 is behind the anchor plane
	XTilt float64 // Post-tilt x', before the Z rotation (for the near-side bias)
}

// Projector applies a rotation about the Y axis, then about the Z axis,
// then translates by the anchor point. The tilts are fixed per animation
// instance, so the trig terms are precomputed.
type Projector struct {
	AnchorX, AnchorY float64

	cosY, sinY float64
	cosZ, sinZ float64
}

// NewProjector creates a projector with the given tilt angles (radians)
// and anchor point.
func NewProjector(tiltY, tiltZ, anchorX, anchorY float64) Projector {
	return Projector{
		AnchorX: anchorX,
		AnchorY: anchorY,
		cosY:    math.Cos(tiltY),
		sinY:    math.Sin(tiltY),
		cosZ:    math.Cos(tiltZ),
		sinZ:    math.Sin(tiltZ),
	}
}

// Project transforms an orbit-plane coordinate into screen space.
// In-plane points pass z = 0.
func (p Projector) Project(x, y, z float64) Projected {
	// Rotation about Y
	xr := x*p.cosY + z*p.sinY
	zr := -x*p.sinY + z*p.cosY

	// Rotation about Z
	xs := xr*p.cosZ - y*p.sinZ
	ys := xr*p.sinZ + y*p.cosZ

	return Projected{
		X:     xs + p.AnchorX,
		Y:     ys + p.AnchorY,
		Depth: zr,
		XTilt: xr,
	}
}

// ProjectEllipse projects a point at the given angle on an ellipse with
// the given semi-major axis. The minor-axis compression (aspect) is applied
// before the tilt rotations so the ring reads as a perspective ellipse.
func (p Projector) ProjectEllipse(major, aspect, angle float64) Projected {
	x := major * math.Cos(angle)
	y := major * aspect * math.Sin(angle)
	return p.Project(x, y, 0)
}

// NearSideBias scales a base opacity so the side of an orbit facing the
// implicit viewer reads brighter. This is a depth-legibility cue, not a
// lighting model: 0.5 + 0.5 * (xTilt normalized to [-1, 1] by scale).
func NearSideBias(xTilt, scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	n := xTilt / scale
	if n > 1 {
		n = 1
	} else if n < -1 {
		n = -1
	}
	return 0.5 + 0.5*n
}

// DepthPoint is a projected point ready to draw: position, opacity after
// all bias/shading terms, and an optional dot radius (0 = single pixel).
type DepthPoint struct {
	X, Y  float64
	Alpha float64
	Size  float64
}

// DepthSet partitions projected points into behind/in-front sets relative
// to the anchor plane. Draw order is: back stars, Back, central body,
// Front, then foreground particles. Splitting into exactly two sets (not a
// full depth sort) is what keeps the body silhouette clean; drawing all
// segments in one sorted pass self-intersects at the silhouette.
type DepthSet struct {
	Back  []DepthPoint
	Front []DepthPoint
}

// Reset clears both sets, keeping capacity for reuse across frames.
func (d *DepthSet) Reset() {
	d.Back = d.Back[:0]
	d.Front = d.Front[:0]
}

// Add places a projected point into the back or front set.
func (d *DepthSet) Add(pt Projected, alpha, size float64) {
	dp := DepthPoint{X: pt.X, Y: pt.Y, Alpha: alpha, Size: size}
	if pt.Depth <= 0 {
		d.Back = append(d.Back, dp)
	} else {
		d.Front = append(d.Front, dp)
	}
}
