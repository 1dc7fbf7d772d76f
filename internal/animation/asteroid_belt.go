package animation

import (
	"math"
	"math/rand"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/draw"
	"github.com/tomz197/orrery/internal/orbit"
	"github.com/tomz197/orrery/internal/particle"
	"github.com/tomz197/orrery/internal/physics"
	"github.com/tomz197/orrery/internal/scene"
)

// Rock is a large tumbling belt asteroid: an irregular polygon following a
// Keplerian circular track in the orbit plane.
type Rock struct {
	Angle      float64 // Orbital angle
	Dist       float64 // Orbital radius
	AngularVel float64 // Radians per ms, Keplerian falloff
	Tumble     float64 // Self-rotation angle
	TumbleVel  float64 // Radians per ms
	Size       float64
	Vertices   []float64 // Vertex distances from center, irregular shape
}

// AsteroidBelt renders a planet inside an annulus of debris and tumbling
// rocks, with sparse collision sparks.
type AsteroidBelt struct {
	preset config.AsteroidBeltPreset
	seed   int64

	rng        *rand.Rand
	geom       scene.Geometry
	proj       orbit.Projector
	bodyRadius float64
	inner      float64
	outer      float64
	rocks      []Rock
	grid       *physics.ProximityGrid
	particles  *particle.System
	elapsed    float64
	depth      orbit.DepthSet
}

// sparkCellSize bounds the proximity grid cell. Must cover the largest
// close-approach distance between two rocks (max size 4, margin 2).
const sparkCellSize = 16.0

// NewAsteroidBelt creates the variant with its tuning and random seed.
func NewAsteroidBelt(p config.AsteroidBeltPreset, seed int64) *AsteroidBelt {
	return &AsteroidBelt{preset: p, seed: seed}
}

func (a *AsteroidBelt) Name() string { return "asteroid belt" }

// Init derives the annulus geometry and seeds rocks and debris.
func (a *AsteroidBelt) Init(geom scene.Geometry) {
	a.rng = rand.New(rand.NewSource(a.seed))
	a.geom = geom
	a.elapsed = 0

	p := a.preset
	a.inner = geom.OrbitRadius(p.InnerRatio)
	a.outer = geom.OrbitRadius(p.OuterRatio)
	a.bodyRadius = a.inner * 0.3
	a.proj = orbit.NewProjector(p.TiltY, p.TiltZ, geom.CenterX, geom.CenterY)

	a.rocks = make([]Rock, p.RockCount)
	for i := range a.rocks {
		dist := a.inner + a.rng.Float64()*(a.outer-a.inner)
		speed := particle.KeplerSpeed(0.0005, dist, a.inner)
		// Irregular polygon: 6-10 vertices varying ±30% around the size
		size := 1.5 + a.rng.Float64()*2.5
		numVerts := 6 + a.rng.Intn(5)
		verts := make([]float64, numVerts)
		for v := range verts {
			verts[v] = size * (0.7 + a.rng.Float64()*0.6)
		}
		a.rocks[i] = Rock{
			Angle:      a.rng.Float64() * 2 * math.Pi,
			Dist:       dist,
			AngularVel: speed / dist,
			Tumble:     a.rng.Float64() * 2 * math.Pi,
			TumbleVel:  (a.rng.Float64() - 0.5) * 0.004,
			Size:       size,
			Vertices:   verts,
		}
	}

	span := a.outer * 1.05
	a.grid = physics.NewProximityGrid(-span, -span, span*2, span*2, sparkCellSize)

	a.particles = particle.NewSystem(a.seed)
	debris := particle.DefaultRanges(particle.KindDebris)
	debris.Polar = true
	debris.DistMin = a.inner
	debris.DistMax = a.outer
	a.particles.Configure(particle.KindDebris, debris)
	a.particles.KeplerBase = 0.0005
	a.particles.KeplerISCO = a.inner
	a.particles.OuterBound = a.outer * 1.2

	target := geom.ParticleBudget(p.DebrisScale)
	a.particles.Spawn(particle.KindDebris, 0, target)
}

// Update advances rocks and debris, tops up the debris ring, and sparks
// where rocks pass close to one another.
func (a *AsteroidBelt) Update(dt float64) {
	a.elapsed += dt

	for i := range a.rocks {
		r := &a.rocks[i]
		r.Angle += r.AngularVel * dt
		r.Tumble += r.TumbleVel * dt
	}

	a.particles.Update(dt)
	target := a.geom.ParticleBudget(a.preset.DebrisScale)
	a.particles.TopUp(particle.KindDebris, target, a.rng.Float64()*2*math.Pi)

	a.spawnSparks(dt)
}

// spawnSparks runs broad-phase proximity over the rock plane positions
// and rolls the spark chance for each close approach.
func (a *AsteroidBelt) spawnSparks(dt float64) {
	a.grid.Reset()
	for i := range a.rocks {
		r := &a.rocks[i]
		a.grid.Insert(math.Cos(r.Angle)*r.Dist, math.Sin(r.Angle)*r.Dist, i)
	}

	a.grid.ForEachPair(func(i, j int) {
		ri, rj := &a.rocks[i], &a.rocks[j]
		xi, yi := math.Cos(ri.Angle)*ri.Dist, math.Sin(ri.Angle)*ri.Dist
		xj, yj := math.Cos(rj.Angle)*rj.Dist, math.Sin(rj.Angle)*rj.Dist
		if !physics.CloseApproach(xi, yi, ri.Size, xj, yj, rj.Size, 2.0) {
			return
		}
		if a.rng.Float64() >= a.preset.SparkChance*dt {
			return
		}
		pr := a.proj.Project((xi+xj)/2, (yi+yj)/2, 0)
		a.particles.SpawnAt(particle.KindFlare, pr.X, pr.Y, a.rng.Float64()*2*math.Pi, 4+a.rng.Intn(4))
	})
}

// Draw splits debris and rocks against the body plane and issues back set,
// central body, front set, then the spark particles.
func (a *AsteroidBelt) Draw(f Frame) {
	a.depth.Reset()

	a.particles.ForEach(func(p *particle.Particle) {
		if !p.Polar {
			return
		}
		pr := a.proj.Project(math.Cos(p.Angle)*p.Dist, math.Sin(p.Angle)*p.Dist, 0)
		alpha := p.Opacity() * (0.35 + 0.65*orbit.NearSideBias(pr.XTilt, a.outer))
		a.depth.Add(pr, alpha, 0)
	})

	drawDepthPoints(f.Canvas, a.depth.Back)
	a.drawBackRocks(f)

	f.Canvas.FillCircleSolid(a.geom.CenterX, a.geom.CenterY, a.bodyRadius, 0.55)

	drawDepthPoints(f.Canvas, a.depth.Front)
	a.drawFrontRocks(f)
	a.drawSparks(f)
}

func (a *AsteroidBelt) drawBackRocks(f Frame) { a.drawRocks(f, true) }

func (a *AsteroidBelt) drawFrontRocks(f Frame) { a.drawRocks(f, false) }

// drawRocks renders the rocks on one side of the body plane as tumbling
// irregular polygons.
func (a *AsteroidBelt) drawRocks(f Frame, back bool) {
	for i := range a.rocks {
		r := &a.rocks[i]
		pr := a.proj.Project(math.Cos(r.Angle)*r.Dist, math.Sin(r.Angle)*r.Dist, 0)
		if (pr.Depth <= 0) != back {
			continue
		}

		alpha := 0.4 + 0.6*orbit.NearSideBias(pr.XTilt, a.outer)
		numVerts := len(r.Vertices)
		points := f.Canvas.BorrowPoints(numVerts)
		for v, dist := range r.Vertices {
			vertAngle := r.Tumble + float64(v)*2*math.Pi/float64(numVerts)
			points[v] = draw.Point{
				X: pr.X + math.Cos(vertAngle)*dist,
				Y: pr.Y + math.Sin(vertAngle)*dist,
			}
		}
		f.Canvas.DrawPolygon(points, alpha, false)
	}
}

// drawSparks renders the Cartesian collision sparks.
func (a *AsteroidBelt) drawSparks(f Frame) {
	a.particles.ForEach(func(p *particle.Particle) {
		if p.Polar {
			return
		}
		f.Canvas.SetFloat(p.X, p.Y, p.Opacity())
	})
}

// Clear releases rocks and the particle arena for reclamation.
func (a *AsteroidBelt) Clear() {
	a.rocks = nil
	a.grid = nil
	if a.particles != nil {
		a.particles.Clear()
		a.particles = nil
	}
	a.depth = orbit.DepthSet{}
}
