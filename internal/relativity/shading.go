// Package relativity approximates two visual effects of a black hole's
// gravity on its accretion disk: light deflection near the photon sphere
// and relativistic beaming of matter moving toward the viewer. Both are
// presentation approximations tuned for legibility, not geodesic physics.
package relativity

import "math"

// Shading adjusts per-particle position and brightness before projection.
// Constants are tunable presentation parameters (see config presets).
type Shading struct {
	PhotonSphereR   float64 // Photon sphere radius, surface pixels
	DeflectStrength float64 // Peak deflection offset at the photon sphere, pixels
	BeamingFloor    float64 // Minimum brightness multiplier
	BeamingGain     float64 // Velocity-alignment gain
}

// Deflect returns the position offset for a particle at (dx, dy) relative
// to the hole center. The offset is perpendicular to the radius vector and
// scales with photonSphereR²/dist², an inverse-square approximation of
// light bending. Inside the photon sphere, or at zero distance, the term
// is skipped for that particle.
func (s Shading) Deflect(dx, dy float64) (ox, oy float64) {
	dist := math.Hypot(dx, dy)
	if dist <= s.PhotonSphereR || dist == 0 {
		return 0, 0
	}
	mag := s.DeflectStrength * (s.PhotonSphereR * s.PhotonSphereR) / (dist * dist)
	// Unit perpendicular, following the disk's orbital sense
	return -dy / dist * mag, dx / dist * mag
}

// Beaming returns the brightness multiplier for a particle with velocity
// direction (vx, vy) seen along the view direction (viewX, viewY):
// max(floor, 1 + gain·dot(velDir, viewDir)). Matter moving toward the
// viewer renders brighter. A zero velocity leaves brightness unchanged.
func (s Shading) Beaming(vx, vy, viewX, viewY float64) float64 {
	vlen := math.Hypot(vx, vy)
	wlen := math.Hypot(viewX, viewY)
	if vlen == 0 || wlen == 0 {
		return 1
	}
	dot := (vx*viewX + vy*viewY) / (vlen * wlen)
	b := 1 + s.BeamingGain*dot
	if b < s.BeamingFloor {
		return s.BeamingFloor
	}
	return b
}
