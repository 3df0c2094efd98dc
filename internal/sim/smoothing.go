package sim

import "github.com/avosk/flightsim/internal/mathx"

// smoothedState is the kinematically consistent shadow of the truth
// state. It chases the truth with a fixed time constant so the reported
// accelerations and rates always integrate exactly to the reported
// velocity, position and attitude, even across discrete truth jumps such
// as the ground clamp.
type smoothedState struct {
	enabled      bool
	lastUpdateUS uint64

	position   mathx.Vec3
	velocityEF mathx.Vec3
	accelBody  mathx.Vec3
	gyro       mathx.Vec3
	rotation   mathx.Mat3
	location   Location
}

const (
	smoothingTimeConstant = 0.1
	smoothingResetDistM   = 10.0
	smoothingAccelLimit   = 14 * GravityMSS
)

// smoothSensors advances the shadow state one tick toward the truth.
func (a *Aircraft) smoothSensors() {
	now := a.timeNowUS
	s := &a.smoothing

	deltaPos := a.position.Sub(s.position)
	if s.lastUpdateUS == 0 || deltaPos.Length() > smoothingResetDistM {
		s.position = a.position
		s.rotation = a.dcm
		s.accelBody = a.accelBody
		s.velocityEF = a.velocityEF
		s.gyro = a.gyro
		s.location = a.location
		s.lastUpdateUS = now
		s.enabled = true
		return
	}

	dt := float64(now-s.lastUpdateUS) * 1e-6
	if dt <= 0 || dt > smoothingTimeConstant {
		s.lastUpdateUS = now
		return
	}

	// earth-frame accel that closes the velocity and position error over
	// one time constant, on top of the truth's kinematic accel
	dvel := a.velocityEF.Sub(s.velocityEF).Add(deltaPos.Scale(1 / smoothingTimeConstant))
	accelE := dvel.Scale(1 / smoothingTimeConstant).
		Add(a.dcm.MulVec(a.accelBody)).
		Add(mathx.Vec3{Z: GravityMSS})
	accelE = accelE.ClampAxes(smoothingAccelLimit)
	accelB := s.rotation.MulTransposeVec(accelE.Add(mathx.Vec3{Z: -GravityMSS}))

	// truth rate plus a correction that closes the attitude error over
	// one time constant
	desired := mathx.QuatFromMatrix(a.dcm).Normalized()
	current := mathx.QuatFromMatrix(s.rotation).Normalized()
	gyro := a.gyro.Add(
		desired.Div(current).Normalized().AxisAngle().Scale(1 / smoothingTimeConstant))

	s.accelBody = accelB
	s.gyro = gyro

	s.rotation.Rotate(gyro.Scale(dt))
	s.rotation.Normalize()

	s.velocityEF = s.velocityEF.Add(accelE.Scale(dt))
	s.position = s.position.Add(s.velocityEF.Scale(dt))

	s.location = a.home
	s.location.Offset(s.position.X, s.position.Y)
	s.location.AltCM = a.home.AltCM - int32(s.position.Z*100)

	s.lastUpdateUS = now
	s.enabled = true
}
