package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avosk/flightsim/internal/mathx"
	"github.com/avosk/flightsim/internal/sim"
)

const (
	DefaultRateHz   = 1200.0
	DefaultDuration = 30.0
	DefaultAltitude = 50.0
)

type Config struct {
	Airframe string  `yaml:"airframe"`
	Duration float64 `yaml:"duration"`
	RateHz   float64 `yaml:"rate_hz"`
	Speedup  float64 `yaml:"speedup"`
	Seed     int64   `yaml:"seed"`
	RealTime bool    `yaml:"real_time"`

	TargetAltM float64 `yaml:"target_alt"`

	GroundBehavior string `yaml:"ground_behavior"`

	Origin OriginConfig `yaml:"origin"`
	Wind   WindConfig   `yaml:"wind"`
	Noise  NoiseConfig  `yaml:"noise"`
	Mag    MagConfig    `yaml:"mag"`

	ServoFilterHz   float64 `yaml:"servo_filter_hz"`
	ThermalScenario int     `yaml:"thermal_scenario"`
	Terrain         string  `yaml:"terrain"`
}

type OriginConfig struct {
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Alt     float64 `yaml:"alt"`
	Heading float64 `yaml:"heading"`
}

type WindConfig struct {
	Speed         float64 `yaml:"speed"`
	Direction     float64 `yaml:"direction"`
	VerticalAngle float64 `yaml:"vertical_angle"`
	Turbulence    float64 `yaml:"turbulence"`
}

type NoiseConfig struct {
	GyroDegS float64 `yaml:"gyro_deg_s"`
	AccelMSS float64 `yaml:"accel_mss"`
}

type MagConfig struct {
	AnomalyHeight float64    `yaml:"anomaly_height"`
	AnomalyNED    [3]float64 `yaml:"anomaly_ned"`
	MotorGaussAmp [3]float64 `yaml:"motor_mgauss_per_amp"`
}

func DefaultConfig() *Config {
	return &Config{
		Airframe:   "quadx",
		Duration:   DefaultDuration,
		RateHz:     DefaultRateHz,
		Speedup:    1,
		TargetAltM: DefaultAltitude,
		Origin: OriginConfig{
			Lat:     -35.363261,
			Lng:     149.165230,
			Alt:     584,
			Heading: 353,
		},
		Noise: NoiseConfig{
			GyroDegS: 0.1,
			AccelMSS: 0.3,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.groundBehavior(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) groundBehavior() (sim.GroundBehavior, error) {
	switch c.GroundBehavior {
	case "":
		return sim.GroundBehaviorUnset, nil
	case "none":
		return sim.GroundBehaviorNone, nil
	case "no-movement":
		return sim.GroundBehaviorNoMovement, nil
	case "forward-only":
		return sim.GroundBehaviorForwardOnly, nil
	case "tailsitter":
		return sim.GroundBehaviorTailsitter, nil
	default:
		return sim.GroundBehaviorUnset, fmt.Errorf("unknown ground behavior: %s", c.GroundBehavior)
	}
}

// WindInput returns the steady wind commanded by the configuration.
func (c *Config) WindInput() sim.WindInput {
	return sim.WindInput{
		SpeedMS:          c.Wind.Speed,
		DirectionDeg:     c.Wind.Direction,
		VerticalAngleDeg: c.Wind.VerticalAngle,
		Turbulence:       c.Wind.Turbulence,
	}
}

// Snapshot implements sim.ParamSource, mapping the file-level settings
// onto the per-tick parameter set.
func (c *Config) Snapshot() sim.Params {
	gb, err := c.groundBehavior()
	if err != nil {
		gb = sim.GroundBehaviorUnset
	}

	rate := c.RateHz
	if rate <= 0 {
		rate = DefaultRateHz
	}
	speedup := c.Speedup
	if speedup <= 0 {
		speedup = 1
	}

	return sim.Params{
		LoopRateHz:      rate,
		Speedup:         speedup,
		GroundBehavior:  gb,
		GyroNoise:       mathx.Radians(c.Noise.GyroDegS),
		AccelNoise:      c.Noise.AccelMSS,
		ServoFilterHz:   c.ServoFilterHz,
		ThermalScenario: c.ThermalScenario,

		MagAnomalyHeight: c.Mag.AnomalyHeight,
		MagAnomalyNED: mathx.Vec3{
			X: c.Mag.AnomalyNED[0], Y: c.Mag.AnomalyNED[1], Z: c.Mag.AnomalyNED[2],
		},
		MagMotorInterference: mathx.Vec3{
			X: c.Mag.MotorGaussAmp[0], Y: c.Mag.MotorGaussAmp[1], Z: c.Mag.MotorGaussAmp[2],
		},

		OriginLatDeg:     c.Origin.Lat,
		OriginLngDeg:     c.Origin.Lng,
		OriginAltM:       c.Origin.Alt,
		OriginHeadingDeg: c.Origin.Heading,

		TerrainEnabled: c.Terrain != "",
	}
}
