package animation

import (
	"math"
	"math/rand"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/orbit"
	"github.com/tomz197/orrery/internal/particle"
	"github.com/tomz197/orrery/internal/scene"
)

// SolarSystem renders a sun with a live corona at the anchor, orbited by a
// planet that carries its own moon. Flares and the occasional coronal mass
// ejection burst off the sun's limb.
type SolarSystem struct {
	preset config.SolarSystemPreset
	seed   int64

	rng       *rand.Rand
	geom      scene.Geometry
	proj      orbit.Projector
	sunRadius float64
	planet    orbit.Body
	moon      orbit.Body
	particles *particle.System
	elapsed   float64
	depth     orbit.DepthSet
}

// NewSolarSystem creates the variant with its tuning and random seed.
func NewSolarSystem(p config.SolarSystemPreset, seed int64) *SolarSystem {
	return &SolarSystem{preset: p, seed: seed}
}

func (a *SolarSystem) Name() string { return "solar system" }

// Init derives geometry and seeds the corona population from scratch.
func (a *SolarSystem) Init(geom scene.Geometry) {
	a.rng = rand.New(rand.NewSource(a.seed))
	a.geom = geom
	a.elapsed = 0

	p := a.preset
	a.sunRadius = geom.BodyRadius(p.SunRadiusRatio)
	a.proj = orbit.NewProjector(p.TiltY, p.TiltZ, geom.CenterX, geom.CenterY)

	a.planet = orbit.Body{
		Radius:       geom.OrbitRadius(p.PlanetOrbitRatio),
		Angle:        a.rng.Float64() * 2 * math.Pi,
		AngularSpeed: p.PlanetSpeed,
		AxialTilt:    0.35,
		SpinSpeed:    0.0009,
		VisualRadius: a.sunRadius * 0.38,
	}
	a.moon = orbit.Body{
		Radius:       a.planet.VisualRadius * p.MoonOrbitRatio,
		Angle:        a.rng.Float64() * 2 * math.Pi,
		AngularSpeed: p.MoonSpeed,
		VisualRadius: a.planet.VisualRadius * 0.3,
	}

	a.particles = particle.NewSystem(a.seed)
	corona := particle.DefaultRanges(particle.KindCorona)
	corona.DistMin = a.sunRadius * 1.02
	corona.DistMax = a.sunRadius * 1.7
	a.particles.Configure(particle.KindCorona, corona)
	a.particles.OuterBound = a.sunRadius * 2.4
	a.particles.BoundW = geom.Width
	a.particles.BoundH = geom.Height

	// Pre-warm so the corona doesn't visibly fill in
	a.particles.Spawn(particle.KindCorona, 0, p.CoronaTarget)
}

// Update advances bodies and particles, tops up the corona, and rolls the
// per-ms chance of a flare or CME burst.
func (a *SolarSystem) Update(dt float64) {
	a.elapsed += dt
	a.planet.Advance(dt)
	a.moon.Advance(dt)

	a.particles.Update(dt)
	a.particles.TopUp(particle.KindCorona, a.preset.CoronaTarget, a.rng.Float64()*2*math.Pi)

	if a.rng.Float64() < a.preset.FlareChance*dt {
		limb := a.rng.Float64() * 2 * math.Pi
		a.spawnBurst(particle.KindFlare, limb, 6+a.rng.Intn(6))
	}
	// CMEs are an order of magnitude rarer than flares
	if a.rng.Float64() < a.preset.FlareChance*0.1*dt {
		limb := a.rng.Float64() * 2 * math.Pi
		a.spawnBurst(particle.KindCME, limb, 10+a.rng.Intn(8))
	}
}

// spawnBurst launches Cartesian particles outward from the sun's limb.
func (a *SolarSystem) spawnBurst(kind particle.Kind, limb float64, count int) {
	x := a.geom.CenterX + math.Cos(limb)*a.sunRadius
	y := a.geom.CenterY + math.Sin(limb)*a.sunRadius
	a.particles.SpawnAt(kind, x, y, limb, count)
}

// Draw splits planet and moon against the sun plane, then issues back set,
// sun with corona, front set, and finally the burst particles.
func (a *SolarSystem) Draw(f Frame) {
	a.depth.Reset()

	px, py := a.planet.PlanePosition()
	pr := a.proj.Project(px, py, 0)
	planetAlpha := 0.45 + 0.5*orbit.NearSideBias(pr.XTilt, a.planet.Radius)
	a.depth.Add(pr, planetAlpha, a.planet.VisualRadius)

	// Moon orbits in the planet's local plane
	mx, my := a.moon.PlanePosition()
	mr := a.proj.Project(px+mx, py+my*math.Cos(a.planet.AxialTilt), 0)
	moonAlpha := 0.35 + 0.45*orbit.NearSideBias(mr.XTilt, a.planet.Radius)
	a.depth.Add(mr, moonAlpha, a.moon.VisualRadius)

	drawDepthPoints(f.Canvas, a.depth.Back)
	a.drawSun(f)
	drawDepthPoints(f.Canvas, a.depth.Front)
	a.drawBursts(f)
}

// drawSun renders the body with a pulsing limb and the polar corona
// particles around it.
func (a *SolarSystem) drawSun(f Frame) {
	cx, cy := a.geom.CenterX, a.geom.CenterY
	pulse := 0.92 + 0.08*math.Sin(a.elapsed*0.0011)

	f.Canvas.FillCircleSolid(cx, cy, a.sunRadius, 0.9*pulse)
	f.Canvas.DrawCircle(cx, cy, a.sunRadius*1.04, 0.5*pulse)

	a.particles.ForEach(func(p *particle.Particle) {
		if !p.Polar {
			return
		}
		x := cx + math.Cos(p.Angle)*p.Dist
		y := cy + math.Sin(p.Angle)*p.Dist*0.92 // Slight flattening reads as glow
		f.Canvas.SetFloat(x, y, p.Opacity()*0.7)
	})
}

// drawBursts renders flare and CME particles in screen space.
func (a *SolarSystem) drawBursts(f Frame) {
	a.particles.ForEach(func(p *particle.Particle) {
		if p.Polar {
			return
		}
		op := p.Opacity()
		if p.Kind == particle.KindCME && p.Size > 1.4 {
			f.Canvas.FillCircle(p.X, p.Y, p.Size*op, op)
			return
		}
		f.Canvas.SetFloat(p.X, p.Y, op)
	})
}

// Clear releases the particle arena and bodies for reclamation.
func (a *SolarSystem) Clear() {
	if a.particles != nil {
		a.particles.Clear()
		a.particles = nil
	}
	a.depth = orbit.DepthSet{}
}
