package orbit

import "math"

// Body is an orbiting celestial body: a planet, moon or similar marker
// following a circular track in the orbit plane. One animation instance
// owns each body exclusively.
type Body struct {
	Radius       float64 // Orbital radius in surface pixels
	Angle        float64 // Current orbital angle, radians
	AngularSpeed float64 // Radians per millisecond
	AxialTilt    float64 // Radians, tilts the self-rotation axis
	Spin         float64 // Self-rotation angle, radians
	SpinSpeed    float64 // Radians per millisecond
	VisualRadius float64 // Drawn radius in surface pixels
}

// Advance moves the body along its orbit and spins it by dt milliseconds.
// Angles wrap to keep values bounded over long sessions.
func (b *Body) Advance(dt float64) {
	b.Angle = wrapAngle(b.Angle + b.AngularSpeed*dt)
	b.Spin = wrapAngle(b.Spin + b.SpinSpeed*dt)
}

// PlanePosition returns the body's orbit-plane coordinates.
func (b *Body) PlanePosition() (x, y float64) {
	return b.Radius * math.Cos(b.Angle), b.Radius * math.Sin(b.Angle)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
