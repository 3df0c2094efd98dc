package sim

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
)

// Snapshot is the sensor-truth frame published after every tick. Angular
// quantities are degrees; linear quantities SI. It is a value type and
// safe to retain.
type Snapshot struct {
	TimestampUS uint64

	Home      Location
	Latitude  float64
	Longitude float64
	AltitudeM float64

	// HeadingDeg is the course over ground, degrees from north.
	HeadingDeg float64

	SpeedN float64
	SpeedE float64
	SpeedD float64

	AccelX float64
	AccelY float64
	AccelZ float64

	RollRate  float64
	PitchRate float64
	YawRate   float64
	AngAccel  mathx.Vec3

	RollDeg  float64
	PitchDeg float64
	YawDeg   float64
	Attitude mathx.Quat

	AirspeedMS float64

	BatteryVoltage float64
	BatteryCurrent float64

	NumMotors int
	RPM       [MaxMotors]float64

	RangeM  float64
	MagBody mathx.Vec3
}

// mountMatrix resolves the configured sensor mounting rotation.
func (a *Aircraft) mountMatrix() (mathx.Mat3, error) {
	p := a.curParams
	if p.IMURotation == RotationCustom {
		if p.CustomRollDeg == nil || p.CustomPitchDeg == nil || p.CustomYawDeg == nil {
			return mathx.Identity(), ErrCustomRotationUnset
		}
		return mathx.FromEuler(
			mathx.Radians(*p.CustomRollDeg),
			mathx.Radians(*p.CustomPitchDeg),
			mathx.Radians(*p.CustomYawDeg),
		), nil
	}
	m, ok := p.IMURotation.Matrix()
	if !ok {
		return mathx.Identity(), ErrUnknownRotation
	}
	return m, nil
}

// fillSnapshot runs the sensor smoothing pass and assembles the published
// frame, applying the sensor mounting rotation last.
func (a *Aircraft) fillSnapshot() (Snapshot, error) {
	if a.useSmoothing {
		a.smoothSensors()
	}

	loc := a.location
	dcm := a.dcm
	gyro := a.gyro
	accel := a.accelBody
	vel := a.velocityEF
	if a.smoothing.enabled {
		loc = a.smoothing.location
		dcm = a.smoothing.rotation
		gyro = a.smoothing.gyro
		accel = a.smoothing.accelBody
		vel = a.smoothing.velocityEF
	}

	// the mounting rotation re-derives the reported attitude only; rates
	// and accelerations stay in the vehicle body frame
	mount, err := a.mountMatrix()
	if err != nil {
		return Snapshot{}, err
	}
	dcm = dcm.Mul(mount.Transposed())

	roll, pitch, yaw := dcm.ToEuler()

	snap := Snapshot{
		TimestampUS: a.timeNowUS,
		Home:        a.home,
		Latitude:    loc.LatDeg,
		Longitude:   loc.LngDeg,
		AltitudeM:   loc.AltM(),
		HeadingDeg:  mathx.Wrap360(mathx.Degrees(math.Atan2(vel.Y, vel.X))),

		SpeedN: vel.X,
		SpeedE: vel.Y,
		SpeedD: vel.Z,

		AccelX: accel.X,
		AccelY: accel.Y,
		AccelZ: accel.Z,

		RollRate:  mathx.Degrees(gyro.X),
		PitchRate: mathx.Degrees(gyro.Y),
		YawRate:   mathx.Degrees(gyro.Z),
		AngAccel:  a.angAccel,

		RollDeg:  mathx.Degrees(roll),
		PitchDeg: mathx.Degrees(pitch),
		YawDeg:   mathx.Degrees(yaw),
		Attitude: mathx.QuatFromMatrix(dcm).Normalized(),

		AirspeedMS: a.airspeedPitot,

		BatteryVoltage: a.batteryVoltage,
		BatteryCurrent: a.batteryCurrent,

		NumMotors: a.numMotors,
		RPM:       a.rpm,

		RangeM:  a.rangeFinderM,
		MagBody: a.magBody,
	}
	return snap, nil
}
