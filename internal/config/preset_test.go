package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPresetsValid(t *testing.T) {
	if err := DefaultPresets().validate(); err != nil {
		t.Fatalf("compiled-in defaults fail validation: %v", err)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	p, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file returned error: %v", err)
	}
	if p != DefaultPresets() {
		t.Error("missing file did not return the defaults")
	}
}

func TestLoadPresetsEmptyPath(t *testing.T) {
	p, err := LoadPresets("")
	if err != nil {
		t.Fatalf("empty path returned error: %v", err)
	}
	if p != DefaultPresets() {
		t.Error("empty path did not return the defaults")
	}
}

func TestLoadPresetsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := []byte("ringed_planet:\n  ring_count: 12\nblack_hole:\n  kepler_base_speed: 1.1\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	if p.RingedPlanet.RingCount != 12 {
		t.Errorf("ring_count = %d, want overlaid 12", p.RingedPlanet.RingCount)
	}
	if p.BlackHole.KeplerBaseSpeed != 1.1 {
		t.Errorf("kepler_base_speed = %v, want overlaid 1.1", p.BlackHole.KeplerBaseSpeed)
	}

	// Untouched values keep their defaults
	def := DefaultPresets()
	if p.RingedPlanet.RingAspect != def.RingedPlanet.RingAspect {
		t.Errorf("ring_aspect = %v, want default %v", p.RingedPlanet.RingAspect, def.RingedPlanet.RingAspect)
	}
	if p.Comet != def.Comet {
		t.Error("unrelated comet preset changed by the overlay")
	}
}

func TestLoadPresetsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "ringed_planet: ["},
		{"ring aspect above one", "ringed_planet:\n  ring_aspect: 1.5\n"},
		{"rings inside the body", "ringed_planet:\n  ring_factor_min: 1.2\n"},
		{"inverted ring band", "ringed_planet:\n  ring_factor_max: 1.9\n"},
		{"inverted belt annulus", "asteroid_belt:\n  outer_ratio: 0.1\n"},
		{"isco inside photon ring", "black_hole:\n  isco_factor: 1.0\n"},
		{"zero beaming floor", "black_hole:\n  beaming_floor: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			p, err := LoadPresets(path)
			if err == nil {
				t.Fatal("invalid presets accepted")
			}
			if p != DefaultPresets() {
				t.Error("error path did not fall back to the defaults")
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ORRERY_TEST_STR", "hello")
	if got := GetEnv("ORRERY_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("GetEnv = %q, want %q", got, "hello")
	}
	if got := GetEnv("ORRERY_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ORRERY_TEST_INT", "42")
	t.Setenv("ORRERY_TEST_BAD", "forty")

	if got := GetEnvInt("ORRERY_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("ORRERY_TEST_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt on garbage = %d, want fallback 7", got)
	}
	if got := GetEnvInt("ORRERY_TEST_UNSET", 7); got != 7 {
		t.Errorf("GetEnvInt unset = %d, want fallback 7", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("ORRERY_TEST_FLOAT", "0.75")
	t.Setenv("ORRERY_TEST_BAD", "fast")

	if got := GetEnvFloat("ORRERY_TEST_FLOAT", 1.5); got != 0.75 {
		t.Errorf("GetEnvFloat = %v, want 0.75", got)
	}
	if got := GetEnvFloat("ORRERY_TEST_BAD", 1.5); got != 1.5 {
		t.Errorf("GetEnvFloat on garbage = %v, want fallback 1.5", got)
	}
	if got := GetEnvFloat("ORRERY_TEST_UNSET", 1.5); got != 1.5 {
		t.Errorf("GetEnvFloat unset = %v, want fallback 1.5", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("ORRERY_TEST_ON", "1")
	t.Setenv("ORRERY_TEST_OFF", "false")
	t.Setenv("ORRERY_TEST_BAD", "maybe")

	if !GetEnvBool("ORRERY_TEST_ON", false) {
		t.Error("GetEnvBool(1) = false, want true")
	}
	if GetEnvBool("ORRERY_TEST_OFF", true) {
		t.Error("GetEnvBool(false) = true, want false")
	}
	if !GetEnvBool("ORRERY_TEST_BAD", true) {
		t.Error("GetEnvBool on garbage did not fall back")
	}
}
