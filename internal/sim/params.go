package sim

import (
	"github.com/avosk/flightsim/internal/mathx"
)

// Rotation names the orientation of the mounted sensor package relative to
// the vehicle body. RotationCustom is a distinct tagged case: its matrix
// comes from three extra angle parameters and cannot be derived from the
// tag alone.
type Rotation int

const (
	RotationNone Rotation = iota
	RotationYaw45
	RotationYaw90
	RotationYaw135
	RotationYaw180
	RotationYaw225
	RotationYaw270
	RotationYaw315
	RotationRoll180
	RotationRoll180Yaw90
	RotationPitch90
	RotationPitch270
	RotationCustom
)

var rotationEuler = map[Rotation][3]float64{
	RotationNone:         {0, 0, 0},
	RotationYaw45:        {0, 0, 45},
	RotationYaw90:        {0, 0, 90},
	RotationYaw135:       {0, 0, 135},
	RotationYaw180:       {0, 0, 180},
	RotationYaw225:       {0, 0, 225},
	RotationYaw270:       {0, 0, 270},
	RotationYaw315:       {0, 0, 315},
	RotationRoll180:      {180, 0, 0},
	RotationRoll180Yaw90: {180, 0, 90},
	RotationPitch90:      {0, 90, 0},
	RotationPitch270:     {0, 270, 0},
}

// Matrix returns the fixed mounting matrix for the rotation. It reports
// false for RotationCustom (angles required) and unknown tags.
func (r Rotation) Matrix() (mathx.Mat3, bool) {
	e, ok := rotationEuler[r]
	if !ok {
		return mathx.Identity(), false
	}
	return mathx.FromEuler(mathx.Radians(e[0]), mathx.Radians(e[1]), mathx.Radians(e[2])), true
}

// Params is the immutable-per-tick configuration snapshot consumed by the
// core. A ParamSource may refresh it between ticks; within a tick every
// component reads the same copy.
type Params struct {
	// LoopRateHz is the target physics rate the tick duration is retuned
	// toward (constrained to +-1 Hz per tick).
	LoopRateHz float64

	// Speedup is the target ratio of simulated time to wall-clock time.
	Speedup float64

	// GroundBehavior overrides the vehicle's ground handling when not
	// GroundBehaviorUnset.
	GroundBehavior GroundBehavior

	// GyroNoise / AccelNoise are 1-sigma sensor noise at full throttle,
	// rad/s and m/s^2.
	GyroNoise  float64
	AccelNoise float64

	// ServoFilterHz is the actuator low-pass corner frequency; zero
	// disables filtering.
	ServoFilterHz float64

	// ThermalScenario selects a fixed thermal-updraft table; zero is calm.
	ThermalScenario int

	// MagAnomalyHeight is the height constant (m) of the inverse-cube
	// ground-anomaly decay; zero disables the anomaly.
	MagAnomalyHeight float64

	// MagAnomalyNED is a fixed field anomaly in milligauss, earth frame.
	MagAnomalyNED mathx.Vec3

	// MagMotorInterference is milligauss of body-frame interference per
	// ampere of battery current.
	MagMotorInterference mathx.Vec3

	// Origin of the home anchor, used once when the first tick runs.
	OriginLatDeg     float64
	OriginLngDeg     float64
	OriginAltM       float64
	OriginHeadingDeg float64

	// TerrainEnabled gates the terrain-correction lookup.
	TerrainEnabled bool

	// IMURotation is the mounting orientation of the sensor package.
	// RotationCustom requires the three custom angles below.
	IMURotation     Rotation
	CustomRollDeg   *float64
	CustomPitchDeg  *float64
	CustomYawDeg    *float64
}

// ParamSource supplies the per-tick configuration snapshot. It is an
// external collaborator and may be absent, in which case DefaultParams
// keeps the core physically valid.
type ParamSource interface {
	Snapshot() Params
}

// DefaultParams is the configuration used when no parameter source is
// wired: a complete, flyable setup at the default test field.
func DefaultParams() Params {
	return Params{
		LoopRateHz:       DefaultRateHz,
		Speedup:          1,
		GroundBehavior:   GroundBehaviorUnset,
		GyroNoise:        mathx.Radians(0.1),
		AccelNoise:       0.3,
		OriginLatDeg:     -35.363261,
		OriginLngDeg:     149.165230,
		OriginAltM:       584,
		OriginHeadingDeg: 353,
	}
}
