package animation

import (
	"math"
	"math/rand"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/orbit"
	"github.com/tomz197/orrery/internal/scene"
)

// ringSegments is the angular sampling of each ring ellipse.
const ringSegments = 140

// Ring is one orbital ring around the planet. The minor axis is always
// major × aspect, and major never drops below twice the body radius so
// rings clear the silhouette.
type Ring struct {
	Major   float64
	Minor   float64
	Phase   float64 // Rotates the ring's shimmer pattern
	Opacity float64
	Moon    orbit.Body // Orbiting marker riding this ring
}

// RingedPlanet renders a tilted planet inside a family of concentric
// rings, each carrying a small orbiting moon marker.
type RingedPlanet struct {
	preset config.RingedPlanetPreset
	seed   int64

	rng        *rand.Rand
	geom       scene.Geometry
	proj       orbit.Projector
	bodyRadius float64
	rings      []Ring
	spin       float64
	elapsed    float64
	depth      orbit.DepthSet
}

// NewRingedPlanet creates the variant with its tuning and random seed.
func NewRingedPlanet(p config.RingedPlanetPreset, seed int64) *RingedPlanet {
	return &RingedPlanet{preset: p, seed: seed}
}

func (a *RingedPlanet) Name() string { return "ringed planet" }

// Init derives geometry constants and seeds the ring family from scratch.
func (a *RingedPlanet) Init(geom scene.Geometry) {
	a.rng = rand.New(rand.NewSource(a.seed))
	a.geom = geom
	a.elapsed = 0
	a.spin = 0

	p := a.preset
	a.bodyRadius = geom.BodyRadius(p.PlanetRadiusRatio)
	a.proj = orbit.NewProjector(p.TiltY, p.TiltZ, geom.CenterX, geom.CenterY)

	a.rings = make([]Ring, p.RingCount)
	for i := range a.rings {
		factor := p.RingFactorMin
		if p.RingCount > 1 {
			factor += (p.RingFactorMax - p.RingFactorMin) * float64(i) / float64(p.RingCount-1)
		}
		major := a.bodyRadius * factor
		a.rings[i] = Ring{
			Major:   major,
			Minor:   major * p.RingAspect,
			Phase:   a.rng.Float64() * 2 * math.Pi,
			Opacity: 0.3 + a.rng.Float64()*0.4,
			Moon: orbit.Body{
				Radius:       major,
				Angle:        a.rng.Float64() * 2 * math.Pi,
				AngularSpeed: p.MoonSpeed / factor, // Outer moons drift slower
				VisualRadius: 1.0 + a.rng.Float64()*0.8,
			},
		}
	}
}

// Update advances planet spin and every ring moon by dt milliseconds.
func (a *RingedPlanet) Update(dt float64) {
	a.elapsed += dt
	a.spin += 0.0004 * dt
	for i := range a.rings {
		a.rings[i].Moon.Advance(dt)
	}
}

// Draw projects ring segments and moons, splits them against the planet
// plane, and issues back set, body, front set in that order.
func (a *RingedPlanet) Draw(f Frame) {
	a.depth.Reset()

	for ri := range a.rings {
		ring := &a.rings[ri]
		for s := 0; s < ringSegments; s++ {
			angle := float64(s) / ringSegments * 2 * math.Pi
			pr := a.proj.ProjectEllipse(ring.Major, a.preset.RingAspect, angle)

			alpha := ring.Opacity * orbit.NearSideBias(pr.XTilt, ring.Major)
			// Slow shimmer traveling along the ring
			alpha *= 0.8 + 0.2*math.Sin(ring.Phase+angle*3+a.elapsed*0.0006)
			a.depth.Add(pr, alpha, 0)
		}

		moon := a.proj.ProjectEllipse(ring.Moon.Radius, a.preset.RingAspect, ring.Moon.Angle)
		moonAlpha := 0.65 + 0.35*orbit.NearSideBias(moon.XTilt, ring.Moon.Radius)
		a.depth.Add(moon, moonAlpha, ring.Moon.VisualRadius)
	}

	drawDepthPoints(f.Canvas, a.depth.Back)
	a.drawBody(f)
	drawDepthPoints(f.Canvas, a.depth.Front)
}

// drawBody renders the planet with a near-side highlight and a rotating
// surface band so the self-rotation reads.
func (a *RingedPlanet) drawBody(f Frame) {
	cx, cy := a.geom.CenterX, a.geom.CenterY
	r := a.bodyRadius

	// Solid fill occludes back-set ring segments and stars
	f.Canvas.FillCircleSolid(cx, cy, r, 0.35)
	// Near-side highlight, offset toward the viewer-facing side
	f.Canvas.FillCircle(cx+r*0.25, cy-r*0.2, r*0.55, 0.6)

	// Rotating meridian band
	band := math.Cos(a.spin)
	f.Canvas.DrawLine(
		point(cx+band*r*0.9, cy-r*0.85),
		point(cx+band*r*0.7, cy+r*0.85),
		0.5,
	)
}

// Clear releases the ring family for reclamation while suspended.
func (a *RingedPlanet) Clear() {
	a.rings = nil
	a.depth = orbit.DepthSet{}
}

// Rings exposes the current ring family for derived-geometry checks.
func (a *RingedPlanet) Rings() []Ring { return a.rings }
