package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avosk/flightsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Airframe != "quadx" {
		t.Errorf("expected airframe quadx, got %s", cfg.Airframe)
	}
	if cfg.RateHz <= 0 {
		t.Error("rate should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestSnapshotMapsFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GroundBehavior = "forward-only"
	cfg.ThermalScenario = 2
	cfg.Terrain = "rolling"

	p := cfg.Snapshot()

	if p.GroundBehavior != sim.GroundBehaviorForwardOnly {
		t.Errorf("ground behavior %v", p.GroundBehavior)
	}
	if p.ThermalScenario != 2 {
		t.Errorf("thermal scenario %v", p.ThermalScenario)
	}
	if !p.TerrainEnabled {
		t.Error("terrain should be enabled")
	}
	if p.OriginLatDeg != cfg.Origin.Lat {
		t.Errorf("origin lat %v", p.OriginLatDeg)
	}
}

func TestSnapshotDefaultsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateHz = 0
	cfg.Speedup = -1

	p := cfg.Snapshot()
	if p.LoopRateHz != DefaultRateHz {
		t.Errorf("zero rate should default, got %v", p.LoopRateHz)
	}
	if p.Speedup != 1 {
		t.Errorf("negative speedup should default, got %v", p.Speedup)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.yaml")

	cfg := DefaultConfig()
	cfg.Airframe = "glider"
	cfg.Wind.Speed = 7.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Airframe != "glider" {
		t.Errorf("airframe %s", loaded.Airframe)
	}
	if loaded.Wind.Speed != 7.5 {
		t.Errorf("wind speed %v", loaded.Wind.Speed)
	}
}

func TestLoadRejectsBadBehavior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ground_behavior: hover\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown ground behavior")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quadx", "windy-hover")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Wind.Speed != 8 {
		t.Errorf("expected wind speed 8, got %f", cfg.Wind.Speed)
	}
	if cfg.RateHz != DefaultRateHz {
		t.Errorf("preset should keep default rate, got %f", cfg.RateHz)
	}
	if cfg.Origin.Lat == 0 {
		t.Error("preset should keep default origin")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("quadx", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "calm-hover"); cfg != nil {
		t.Error("expected nil for nonexistent airframe")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("glider")
	if len(presets) == 0 {
		t.Error("expected presets for glider")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent airframe")
	}
}
