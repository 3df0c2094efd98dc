package config

var Presets = map[string]map[string]*Config{
	"quadx": {
		"calm-hover": {
			Airframe: "quadx", Duration: 30, TargetAltM: 50,
		},
		"windy-hover": {
			Airframe: "quadx", Duration: 30, TargetAltM: 50,
			Wind: WindConfig{Speed: 8, Direction: 90, Turbulence: 0.5},
		},
		"gusty": {
			Airframe: "quadx", Duration: 60, TargetAltM: 30,
			Wind: WindConfig{Speed: 12, Direction: 45, Turbulence: 1.5},
		},
	},
	"glider": {
		"cruise": {
			Airframe: "glider", Duration: 60,
			GroundBehavior: "forward-only",
		},
		"thermal": {
			Airframe: "glider", Duration: 120, ThermalScenario: 2,
			Wind: WindConfig{Speed: 3, Direction: 270},
		},
		"rough-air": {
			Airframe: "glider", Duration: 60,
			Wind: WindConfig{Speed: 10, Direction: 180, Turbulence: 2},
		},
	},
	"tailsitter": {
		"launch": {
			Airframe: "tailsitter", Duration: 20, TargetAltM: 40,
			GroundBehavior: "tailsitter",
		},
	},
}

// GetPreset returns a copy of the named preset layered over the
// defaults, so partial presets keep a valid origin and loop rate.
func GetPreset(airframe, preset string) *Config {
	framePresets, ok := Presets[airframe]
	if !ok {
		return nil
	}
	p, ok := framePresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Airframe = p.Airframe
	cfg.GroundBehavior = p.GroundBehavior
	cfg.Wind = p.Wind
	cfg.ThermalScenario = p.ThermalScenario
	if p.Duration > 0 {
		cfg.Duration = p.Duration
	}
	if p.TargetAltM > 0 {
		cfg.TargetAltM = p.TargetAltM
	}
	if p.RateHz > 0 {
		cfg.RateHz = p.RateHz
	}
	if p.Terrain != "" {
		cfg.Terrain = p.Terrain
	}
	return cfg
}

func ListPresets(airframe string) []string {
	framePresets, ok := Presets[airframe]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(framePresets))
	for name := range framePresets {
		names = append(names, name)
	}
	return names
}
