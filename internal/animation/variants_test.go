package animation

import (
	"math"
	"testing"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/particle"
)

func TestSolarSystemCoronaPopulation(t *testing.T) {
	p := config.DefaultPresets().SolarSystem
	a := NewSolarSystem(p, 1)
	a.Init(testGeometry())

	if got := a.particles.CountKind(particle.KindCorona); got != p.CoronaTarget {
		t.Fatalf("pre-warmed corona = %d particles, want %d", got, p.CoronaTarget)
	}

	// sunRadius = 1000 * 0.07
	lo, hi := a.sunRadius*1.02, a.sunRadius*1.7
	a.particles.ForEach(func(pt *particle.Particle) {
		if pt.Kind != particle.KindCorona {
			return
		}
		if pt.Dist < lo || pt.Dist > hi {
			t.Fatalf("corona particle at dist %v outside [%v, %v]", pt.Dist, lo, hi)
		}
	})
}

func TestSolarSystemCoronaHoldsTarget(t *testing.T) {
	p := config.DefaultPresets().SolarSystem
	a := NewSolarSystem(p, 2)
	a.Init(testGeometry())

	for i := 0; i < 600; i++ {
		a.Update(16)
		n := a.particles.CountKind(particle.KindCorona)
		if n > p.CoronaTarget {
			t.Fatalf("corona overshot target: %d > %d at step %d", n, p.CoronaTarget, i)
		}
		if n == 0 {
			t.Fatalf("corona died out at step %d", i)
		}
	}
}

func TestCometTailRates(t *testing.T) {
	p := config.DefaultPresets().Comet
	p.IonRate = 0.125
	p.DustRate = 0.0625
	a := NewComet(p, 1)
	a.Init(testGeometry())

	// 80ms at 0.125/ms sheds exactly 10 ions and 5 dust grains
	a.Update(80)
	if got := a.particles.CountKind(particle.KindIon); got != 10 {
		t.Errorf("ion tail = %d particles after 80ms, want 10", got)
	}
	if got := a.particles.CountKind(particle.KindDust); got != 5 {
		t.Errorf("dust tail = %d particles after 80ms, want 5", got)
	}
}

func TestCometFractionalSpawnCarry(t *testing.T) {
	p := config.DefaultPresets().Comet
	p.IonRate = 0.1
	p.DustRate = 0
	a := NewComet(p, 1)
	a.Init(testGeometry())

	// 5ms yields half an ion particle; nothing spawns until the carry
	// crosses one.
	a.Update(5)
	if got := a.particles.CountKind(particle.KindIon); got != 0 {
		t.Fatalf("ion tail = %d after half a particle accrued, want 0", got)
	}
	a.Update(5)
	if got := a.particles.CountKind(particle.KindIon); got != 1 {
		t.Fatalf("ion tail = %d after a full particle accrued, want 1", got)
	}
}

func TestCometClearReleasesTails(t *testing.T) {
	a := NewComet(config.DefaultPresets().Comet, 1)
	a.Init(testGeometry())
	a.Update(500)
	a.Clear()
	if a.particles != nil {
		t.Error("particle system retained after Clear")
	}
}

func TestAsteroidBeltRockSeeding(t *testing.T) {
	p := config.DefaultPresets().AsteroidBelt
	a := NewAsteroidBelt(p, 1)
	a.Init(testGeometry())

	if len(a.rocks) != p.RockCount {
		t.Fatalf("rock count = %d, want %d", len(a.rocks), p.RockCount)
	}

	// inner = 180, outer = 420 on the 1000-wide surface
	for i, r := range a.rocks {
		if r.Dist < a.inner || r.Dist > a.outer {
			t.Errorf("rock %d at dist %v outside [%v, %v]", i, r.Dist, a.inner, a.outer)
		}
		want := particle.KeplerSpeed(0.0005, r.Dist, a.inner) / r.Dist
		if math.Abs(r.AngularVel-want) > 1e-12 {
			t.Errorf("rock %d angular velocity %v, want Keplerian %v", i, r.AngularVel, want)
		}
		if len(r.Vertices) < 6 || len(r.Vertices) > 10 {
			t.Errorf("rock %d has %d vertices, want 6..10", i, len(r.Vertices))
		}
	}
}

func TestAsteroidBeltSparksOnCloseApproach(t *testing.T) {
	p := config.DefaultPresets().AsteroidBelt
	p.SparkChance = 1 // Spark every close pair
	a := NewAsteroidBelt(p, 1)
	a.Init(testGeometry())

	// Two rocks at the same spot and the rest far apart
	a.rocks = a.rocks[:2]
	a.rocks[0].Angle, a.rocks[0].Dist = 0, a.inner
	a.rocks[1].Angle, a.rocks[1].Dist = 0, a.inner

	a.Update(1)
	if got := a.particles.CountKind(particle.KindFlare); got < 4 {
		t.Errorf("coincident rocks produced %d sparks, want >= 4", got)
	}
}

func TestAsteroidBeltNoSparksWhenApart(t *testing.T) {
	p := config.DefaultPresets().AsteroidBelt
	p.SparkChance = 1
	a := NewAsteroidBelt(p, 1)
	a.Init(testGeometry())

	// Two rocks on opposite sides of the belt
	a.rocks = a.rocks[:2]
	a.rocks[0].Angle, a.rocks[0].Dist = 0, a.inner
	a.rocks[1].Angle, a.rocks[1].Dist = math.Pi, a.inner

	a.Update(1)
	if got := a.particles.CountKind(particle.KindFlare); got != 0 {
		t.Errorf("distant rocks produced %d sparks, want 0", got)
	}
}

func TestBlackHoleDerivedGeometry(t *testing.T) {
	p := config.DefaultPresets().BlackHole
	a := NewBlackHole(p, 1)
	a.Init(testGeometry())

	// Width 1000: horizon 50, photon sphere 75, innermost stable orbit 150
	if a.horizonR != 50 {
		t.Errorf("horizon radius = %v, want 50", a.horizonR)
	}
	if a.photonR != 75 {
		t.Errorf("photon sphere radius = %v, want 75", a.photonR)
	}
	if a.iscoR != 150 {
		t.Errorf("innermost stable orbit = %v, want 150", a.iscoR)
	}
	if a.shading.PhotonSphereR != a.photonR {
		t.Errorf("shading photon sphere %v, want %v", a.shading.PhotonSphereR, a.photonR)
	}
}

func TestBlackHoleDiskSeeding(t *testing.T) {
	p := config.DefaultPresets().BlackHole
	a := NewBlackHole(p, 1)
	a.Init(testGeometry())

	if got := a.particles.Count(); got != p.DiskTarget {
		t.Fatalf("disk = %d particles, want %d", got, p.DiskTarget)
	}

	a.particles.ForEach(func(pt *particle.Particle) {
		if pt.Dist < a.iscoR || pt.Dist > a.iscoR*3.2 {
			t.Fatalf("disk particle at %v outside [%v, %v]", pt.Dist, a.iscoR, a.iscoR*3.2)
		}
		// Keplerian falloff: speed drops with the square root of distance
		wantSpeed := particle.KeplerSpeed(p.KeplerBaseSpeed*0.01, pt.Dist, a.iscoR)
		if math.Abs(pt.AngularVel*pt.Dist-wantSpeed) > 1e-9 {
			t.Fatalf("disk particle speed %v at dist %v, want %v", pt.AngularVel*pt.Dist, pt.Dist, wantSpeed)
		}
	})
}

func TestBlackHoleDiskSurvivesInfall(t *testing.T) {
	p := config.DefaultPresets().BlackHole
	a := NewBlackHole(p, 3)
	a.Init(testGeometry())

	// Long run: matter crosses the horizon and is replaced, the disk
	// population never collapses or overshoots.
	for i := 0; i < 1000; i++ {
		a.Update(16)
		n := a.particles.Count()
		if n == 0 {
			t.Fatalf("disk emptied at step %d", i)
		}
		if n > p.DiskTarget {
			t.Fatalf("disk overshot target at step %d: %d > %d", i, n, p.DiskTarget)
		}
	}

	// A zero-delta update flushes anything that crossed the horizon on
	// the last step without advancing the remainder.
	a.particles.Update(0)
	a.particles.ForEach(func(pt *particle.Particle) {
		if pt.Dist < a.horizonR {
			t.Fatalf("particle survived inside the horizon at dist %v", pt.Dist)
		}
	})
}

func TestVariantNames(t *testing.T) {
	geom := testGeometry()
	p := config.DefaultPresets()
	variants := []Animation{
		NewRingedPlanet(p.RingedPlanet, 1),
		NewSolarSystem(p.SolarSystem, 1),
		NewAsteroidBelt(p.AsteroidBelt, 1),
		NewComet(p.Comet, 1),
		NewBlackHole(p.BlackHole, 1),
	}
	seen := map[string]bool{}
	for _, v := range variants {
		name := v.Name()
		if name == "" || seen[name] {
			t.Errorf("variant name %q empty or duplicated", name)
		}
		seen[name] = true
		v.Init(geom)
		v.Update(16)
		v.Clear()
	}
}
