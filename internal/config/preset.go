package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presets holds the tunable presentation parameters for every animation
// variant. These are visual tuning knobs, not physical constants; the
// compiled-in defaults are what the animations were designed against.
//
// A YAML file with the same structure can overlay any subset of values:
//
//	ringed_planet:
//	  ring_count: 12
//	black_hole:
//	  kepler_base_speed: 1.1
type Presets struct {
	RingedPlanet RingedPlanetPreset `yaml:"ringed_planet"`
	SolarSystem  SolarSystemPreset  `yaml:"solar_system"`
	AsteroidBelt AsteroidBeltPreset `yaml:"asteroid_belt"`
	Comet        CometPreset        `yaml:"comet"`
	BlackHole    BlackHolePreset    `yaml:"black_hole"`
}

// RingedPlanetPreset tunes the orbiting-ring planet variant.
type RingedPlanetPreset struct {
	PlanetRadiusRatio float64 `yaml:"planet_radius_ratio"` // Body radius as fraction of surface width
	RingCount         int     `yaml:"ring_count"`
	RingFactorMin     float64 `yaml:"ring_factor_min"` // Innermost ring major axis, in body radii
	RingFactorMax     float64 `yaml:"ring_factor_max"` // Outermost ring major axis, in body radii
	RingAspect        float64 `yaml:"ring_aspect"`     // Minor axis = major * aspect
	TiltY             float64 `yaml:"tilt_y"`          // Radians
	TiltZ             float64 `yaml:"tilt_z"`          // Radians
	MoonSpeed         float64 `yaml:"moon_speed"`      // Radians per ms
}

// SolarSystemPreset tunes the sun-planet-moon variant.
type SolarSystemPreset struct {
	SunRadiusRatio   float64 `yaml:"sun_radius_ratio"`
	PlanetOrbitRatio float64 `yaml:"planet_orbit_ratio"` // Orbit radius as fraction of surface width
	MoonOrbitRatio   float64 `yaml:"moon_orbit_ratio"`   // Relative to planet radius
	PlanetSpeed      float64 `yaml:"planet_speed"`       // Radians per ms
	MoonSpeed        float64 `yaml:"moon_speed"`
	CoronaTarget     int     `yaml:"corona_target"` // Ambient corona particle population
	FlareChance      float64 `yaml:"flare_chance"`  // Per-ms probability of a flare burst
	TiltY            float64 `yaml:"tilt_y"`
	TiltZ            float64 `yaml:"tilt_z"`
}

// AsteroidBeltPreset tunes the asteroid belt variant.
type AsteroidBeltPreset struct {
	InnerRatio  float64 `yaml:"inner_ratio"` // Inner belt radius as fraction of width
	OuterRatio  float64 `yaml:"outer_ratio"`
	RockCount   int     `yaml:"rock_count"`   // Large tumbling rocks
	DebrisScale float64 `yaml:"debris_scale"` // Debris count per surface pixel
	SparkChance float64 `yaml:"spark_chance"` // Per-ms spark probability for each close rock pair
	TiltY       float64 `yaml:"tilt_y"`
	TiltZ       float64 `yaml:"tilt_z"`
}

// CometPreset tunes the comet variant.
type CometPreset struct {
	NucleusRatio float64 `yaml:"nucleus_ratio"`
	OrbitRatio   float64 `yaml:"orbit_ratio"`
	Speed        float64 `yaml:"speed"`     // Radians per ms along the track
	IonRate      float64 `yaml:"ion_rate"`  // Ion-tail particles per ms
	DustRate     float64 `yaml:"dust_rate"` // Dust-tail particles per ms
	TiltY        float64 `yaml:"tilt_y"`
	TiltZ        float64 `yaml:"tilt_z"`
}

// BlackHolePreset tunes the black hole variant, including the relativistic
// shading approximation constants.
type BlackHolePreset struct {
	HorizonRatio     float64 `yaml:"horizon_ratio"`      // Event horizon radius as fraction of width
	PhotonRingFactor float64 `yaml:"photon_ring_factor"` // Photon sphere radius, in horizon radii
	IscoFactor       float64 `yaml:"isco_factor"`        // Innermost stable orbit, in horizon radii
	DiskTarget       int     `yaml:"disk_target"`        // Accretion disk particle population
	KeplerBaseSpeed  float64 `yaml:"kepler_base_speed"`  // Orbital speed at the ISCO, radians per ms scale
	BeamingFloor     float64 `yaml:"beaming_floor"`      // Minimum beaming brightness multiplier
	BeamingGain      float64 `yaml:"beaming_gain"`       // Velocity-alignment brightness gain
	TiltY            float64 `yaml:"tilt_y"`
	TiltZ            float64 `yaml:"tilt_z"`
}

// DefaultPresets returns the compiled-in tuning for all variants.
func DefaultPresets() Presets {
	return Presets{
		RingedPlanet: RingedPlanetPreset{
			PlanetRadiusRatio: 0.08,
			RingCount:         8,
			RingFactorMin:     2.0,
			RingFactorMax:     3.5,
			RingAspect:        0.4,
			TiltY:             0.45,
			TiltZ:             -0.28,
			MoonSpeed:         0.0011,
		},
		SolarSystem: SolarSystemPreset{
			SunRadiusRatio:   0.07,
			PlanetOrbitRatio: 0.28,
			MoonOrbitRatio:   2.6,
			PlanetSpeed:      0.00042,
			MoonSpeed:        0.0019,
			CoronaTarget:     90,
			FlareChance:      0.004,
			TiltY:            0.5,
			TiltZ:            -0.2,
		},
		AsteroidBelt: AsteroidBeltPreset{
			InnerRatio:  0.18,
			OuterRatio:  0.42,
			RockCount:   14,
			DebrisScale: 0.0009,
			SparkChance: 0.006,
			TiltY:       0.9,
			TiltZ:       0.15,
		},
		Comet: CometPreset{
			NucleusRatio: 0.012,
			OrbitRatio:   0.38,
			Speed:        0.00035,
			IonRate:      0.12,
			DustRate:     0.07,
			TiltY:        0.35,
			TiltZ:        0.4,
		},
		BlackHole: BlackHolePreset{
			HorizonRatio:     0.05,
			PhotonRingFactor: 1.5,
			IscoFactor:       3.0,
			DiskTarget:       260,
			KeplerBaseSpeed:  0.8,
			BeamingFloor:     0.3,
			BeamingGain:      2.0,
			TiltY:            1.15,
			TiltZ:            0.1,
		},
	}
}

// LoadPresets reads a YAML preset file and overlays it onto the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func LoadPresets(path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return presets, nil
		}
		return presets, fmt.Errorf("read presets %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &presets); err != nil {
		return DefaultPresets(), fmt.Errorf("parse presets %s: %w", path, err)
	}

	if err := presets.validate(); err != nil {
		return DefaultPresets(), fmt.Errorf("invalid presets %s: %w", path, err)
	}

	return presets, nil
}

// validate rejects values that would break derived geometry invariants.
func (p Presets) validate() error {
	if p.RingedPlanet.RingCount < 1 {
		return fmt.Errorf("ringed_planet.ring_count must be >= 1, got %d", p.RingedPlanet.RingCount)
	}
	if p.RingedPlanet.RingAspect <= 0 || p.RingedPlanet.RingAspect > 1 {
		return fmt.Errorf("ringed_planet.ring_aspect must be in (0, 1], got %v", p.RingedPlanet.RingAspect)
	}
	if p.RingedPlanet.RingFactorMin < 2.0 {
		// Rings must clear the body silhouette.
		return fmt.Errorf("ringed_planet.ring_factor_min must be >= 2.0, got %v", p.RingedPlanet.RingFactorMin)
	}
	if p.RingedPlanet.RingFactorMax < p.RingedPlanet.RingFactorMin {
		return fmt.Errorf("ringed_planet.ring_factor_max must be >= ring_factor_min")
	}
	if p.AsteroidBelt.OuterRatio <= p.AsteroidBelt.InnerRatio {
		return fmt.Errorf("asteroid_belt.outer_ratio must exceed inner_ratio")
	}
	if p.BlackHole.IscoFactor < p.BlackHole.PhotonRingFactor {
		return fmt.Errorf("black_hole.isco_factor must be >= photon_ring_factor")
	}
	if p.BlackHole.BeamingFloor <= 0 {
		return fmt.Errorf("black_hole.beaming_floor must be positive, got %v", p.BlackHole.BeamingFloor)
	}
	return nil
}
