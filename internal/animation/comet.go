package animation

import (
	"math"
	"math/rand"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/orbit"
	"github.com/tomz197/orrery/internal/particle"
	"github.com/tomz197/orrery/internal/scene"
)

// cometEccentricity flattens the comet's track into an ellipse so it
// visibly accelerates through perihelion.
const cometEccentricity = 0.55

// Comet renders a nucleus sweeping an inclined elliptical track around a
// central glow, shedding an ion tail and a dust tail. Ion particles are
// fast, tightly collimated anti-sunward and short-lived; dust particles
// are slow, widely spread and linger along the orbit.
type Comet struct {
	preset config.CometPreset
	seed   int64

	rng       *rand.Rand
	geom      scene.Geometry
	proj      orbit.Projector
	orbitA    float64 // Semi-major axis of the track
	nucleusR  float64
	angle     float64
	particles *particle.System
	ionAccum  float64 // Fractional spawn carry, particles per ms
	dustAccum float64
	elapsed   float64
}

// NewComet creates the variant with its tuning and random seed.
func NewComet(p config.CometPreset, seed int64) *Comet {
	return &Comet{preset: p, seed: seed}
}

func (a *Comet) Name() string { return "comet" }

// Init derives the track geometry and resets the tail populations.
func (a *Comet) Init(geom scene.Geometry) {
	a.rng = rand.New(rand.NewSource(a.seed))
	a.geom = geom
	a.elapsed = 0
	a.angle = a.rng.Float64() * 2 * math.Pi
	a.ionAccum = 0
	a.dustAccum = 0

	p := a.preset
	a.orbitA = geom.OrbitRadius(p.OrbitRatio)
	a.nucleusR = geom.BodyRadius(p.NucleusRatio)
	a.proj = orbit.NewProjector(p.TiltY, p.TiltZ, geom.CenterX, geom.CenterY)

	a.particles = particle.NewSystem(a.seed)
	// Tail matter is culled once it travels past the viewport bound
	a.particles.BoundW = geom.Width
	a.particles.BoundH = geom.Height
}

// nucleusPlane returns the nucleus position in the orbit plane.
func (a *Comet) nucleusPlane() (x, y float64) {
	return a.orbitA * math.Cos(a.angle), a.orbitA * cometEccentricity * math.Sin(a.angle)
}

// Update moves the nucleus and sheds tail particles at per-ms rates,
// carrying fractional spawns across frames so rates stay exact.
func (a *Comet) Update(dt float64) {
	a.elapsed += dt
	a.angle += a.preset.Speed * dt
	if a.angle > 2*math.Pi {
		a.angle -= 2 * math.Pi
	}

	a.particles.Update(dt)

	nx, ny := a.nucleusPlane()
	pr := a.proj.Project(nx, ny, 0)

	// Anti-sunward direction in screen space
	away := math.Atan2(pr.Y-a.geom.CenterY, pr.X-a.geom.CenterX)
	// Dust lags behind the orbital motion rather than pointing anti-sunward
	behind := away + 0.45

	a.ionAccum += a.preset.IonRate * dt
	if n := int(a.ionAccum); n > 0 {
		a.ionAccum -= float64(n)
		a.particles.SpawnAt(particle.KindIon, pr.X, pr.Y, away, n)
	}

	a.dustAccum += a.preset.DustRate * dt
	if n := int(a.dustAccum); n > 0 {
		a.dustAccum -= float64(n)
		a.particles.SpawnAt(particle.KindDust, pr.X, pr.Y, behind, n)
	}
}

// Draw renders the central glow, both tails, then the nucleus and coma on
// top.
func (a *Comet) Draw(f Frame) {
	cx, cy := a.geom.CenterX, a.geom.CenterY

	// Central glow the comet orbits; pulses faintly
	glow := 0.55 + 0.1*math.Sin(a.elapsed*0.0013)
	f.Canvas.FillCircle(cx, cy, a.nucleusR*2.2, glow)

	a.particles.ForEach(func(p *particle.Particle) {
		op := p.Opacity()
		if p.Kind == particle.KindIon {
			op *= 0.9
		} else {
			op *= 0.55
		}
		f.Canvas.SetFloat(p.X, p.Y, op)
	})

	nx, ny := a.nucleusPlane()
	pr := a.proj.Project(nx, ny, 0)
	f.Canvas.FillCircle(pr.X, pr.Y, a.nucleusR*1.8, 0.35) // Coma
	f.Canvas.FillCircle(pr.X, pr.Y, a.nucleusR, 0.95)
}

// Clear releases the tail populations for reclamation.
func (a *Comet) Clear() {
	if a.particles != nil {
		a.particles.Clear()
		a.particles = nil
	}
}
