package sim

import (
	"fmt"
	"math"

	"github.com/avosk/flightsim/internal/mathx"
)

// ForceModel turns one actuator frame into body-frame linear and angular
// accelerations. Implementations read vehicle state through the Aircraft
// accessors and may report motor feedback through the setters.
type ForceModel interface {
	ComputeForces(a *Aircraft, in Input) (accelBody, rotAccel mathx.Vec3)
}

// ThrottleReporter is an optional ForceModel capability: the current
// throttle demand in [0, 1], used to scale vibration noise.
type ThrottleReporter interface {
	Throttle() float64
}

// Aircraft is one simulated vehicle: the rigid-body truth state, its
// environment, and the sensor pipeline. All methods must be called from a
// single goroutine.
type Aircraft struct {
	model ForceModel

	// collaborators, all optional
	params    ParamSource
	terrain   TerrainSource
	geomag    FieldSource
	telemetry Telemetry
	payloads  []Payload
	beacon    Beacon

	curParams Params

	// truth state
	home          Location
	homeIsSet     bool
	location      Location
	position      mathx.Vec3 // metres NED relative to home
	velocityEF    mathx.Vec3
	windEF        mathx.Vec3
	velocityAirEF mathx.Vec3
	dcm           mathx.Mat3
	gyro          mathx.Vec3
	angAccel      mathx.Vec3 // deg/s^2
	accelBody     mathx.Vec3

	// derived sensor values
	airspeed      float64
	airspeedPitot float64
	magBody       mathx.Vec3
	rangeFinderM  float64

	// model feedback
	batteryVoltage float64
	batteryCurrent float64
	numMotors      int
	rpm            [MaxMotors]float64

	// ground contact
	groundBehavior  GroundBehavior
	groundLevel     float64
	frameHeight     float64
	onGround        bool
	wasOnGround     bool
	lastGroundMsgMS uint64
	useSmoothing    bool

	mass        float64
	payloadMass float64

	// turbulence state
	turbAzimuthDeg float64
	turbHorizSpeed float64
	turbVertSpeed  float64

	shove disturbance
	twist disturbance

	noise     *noiseSource
	smoothing smoothedState

	clock       *FrameClock
	realTime    bool
	lastSpeedup float64
	timeNowUS   uint64

	servoFilter [ServoChannels]mathx.LowPassFilter
}

// NewAircraft builds a vehicle around a force model with default
// parameters and pacing disabled. Collaborators are wired with the
// setters before the first Step.
func NewAircraft(model ForceModel) *Aircraft {
	a := &Aircraft{
		model:          model,
		curParams:      DefaultParams(),
		groundBehavior: GroundBehaviorNone,
		frameHeight:    0.1,
		mass:           1.5,
		noise:          newNoiseSource(1),
		clock:          NewFrameClock(DefaultRateHz),
		dcm:            mathx.Identity(),
	}
	a.lastSpeedup = a.curParams.Speedup
	return a
}

func (a *Aircraft) SetParamSource(s ParamSource) { a.params = s }
func (a *Aircraft) SetTerrain(t TerrainSource)   { a.terrain = t }
func (a *Aircraft) SetGeomag(f FieldSource)      { a.geomag = f }
func (a *Aircraft) SetTelemetry(t Telemetry)     { a.telemetry = t }
func (a *Aircraft) AttachPayload(p Payload)      { a.payloads = append(a.payloads, p) }
func (a *Aircraft) SetBeacon(b Beacon)           { a.beacon = b }

// SetGroundBehavior sets the vehicle's own ground handling, used when the
// parameter source leaves it unset.
func (a *Aircraft) SetGroundBehavior(g GroundBehavior) { a.groundBehavior = g }

// SetFrameHeight sets the height of the body origin above the contact
// points, metres.
func (a *Aircraft) SetFrameHeight(h float64) { a.frameHeight = h }

// SetMass sets the dry vehicle mass in kg.
func (a *Aircraft) SetMass(m float64) { a.mass = m }

// SetSeed reseeds the noise and turbulence random stream.
func (a *Aircraft) SetSeed(seed int64) { a.noise = newNoiseSource(seed) }

// SetRealTime enables the pacing sleep that holds the simulation to
// wall-clock speed. Off by default so batch runs go as fast as they can.
func (a *Aircraft) SetRealTime(enabled bool) { a.realTime = enabled }

// Accessors for force models.

func (a *Aircraft) Gyro() mathx.Vec3       { return a.gyro }
func (a *Aircraft) DCM() mathx.Mat3        { return a.dcm }
func (a *Aircraft) VelocityEF() mathx.Vec3 { return a.velocityEF }
func (a *Aircraft) WindEF() mathx.Vec3     { return a.windEF }
func (a *Aircraft) Airspeed() float64      { return a.airspeed }
func (a *Aircraft) OnGround() bool         { return a.onGround }
func (a *Aircraft) Mass() float64          { return a.mass + a.payloadMass }
func (a *Aircraft) TimeNowUS() uint64      { return a.timeNowUS }

// VelocityAirBody is the body-frame velocity relative to the air mass.
func (a *Aircraft) VelocityAirBody() mathx.Vec3 {
	return a.dcm.MulTransposeVec(a.velocityAirEF)
}

// HeightAGL is the height of the contact points above the local ground.
func (a *Aircraft) HeightAGL() float64 { return a.hagl() }

// Feedback setters for force models.

func (a *Aircraft) SetBattery(voltage, current float64) {
	a.batteryVoltage = voltage
	a.batteryCurrent = current
}

func (a *Aircraft) SetNumMotors(n int) {
	if n > MaxMotors {
		n = MaxMotors
	}
	a.numMotors = n
}

func (a *Aircraft) SetMotorRPM(idx int, rpm float64) {
	if idx >= 0 && idx < MaxMotors {
		a.rpm[idx] = rpm
	}
}

// FilteredServoAngle maps a servo command to [-1, 1] about the 1500 us
// trim, through the actuator low-pass filter if one is configured.
func (a *Aircraft) FilteredServoAngle(in Input, idx int) float64 {
	return a.filteredServo((in.Servos[idx]-1500)/500, idx)
}

// FilteredServoRange maps a servo command to [0, 1] from the 1000 us
// floor, through the actuator low-pass filter if one is configured.
func (a *Aircraft) FilteredServoRange(in Input, idx int) float64 {
	return a.filteredServo((in.Servos[idx]-1000)/1000, idx)
}

func (a *Aircraft) filteredServo(v float64, idx int) float64 {
	if a.curParams.ServoFilterHz <= 0 {
		return v
	}
	a.servoFilter[idx].SetCutoff(a.curParams.ServoFilterHz)
	return a.servoFilter[idx].Apply(v, a.clock.FrameTimeUS()*1e-6)
}

// Step advances the simulation by one tick and returns the published
// sensor frame.
func (a *Aircraft) Step(in Input) (Snapshot, error) {
	if a.params != nil {
		a.curParams = a.params.Snapshot()
	}
	if !a.homeIsSet {
		a.initHome()
	}
	if a.curParams.Speedup != a.lastSpeedup {
		a.clock.SetSpeedup(a.curParams.Speedup)
		a.lastSpeedup = a.curParams.Speedup
	}

	a.updateWind(in)

	accelBody, rotAccel := a.model.ComputeForces(a, in)
	a.accelBody = accelBody

	nowMS := a.timeNowUS / 1000
	if s := a.shove.Accel(nowMS); !s.IsZero() {
		a.accelBody = a.accelBody.Add(a.dcm.MulTransposeVec(s))
	}
	rotAccel = rotAccel.Add(a.twist.Accel(nowMS))

	a.updateDynamics(rotAccel)
	a.updatePosition()
	a.payloadMass = a.updatePayloads(in)

	throttle := 0.0
	if tr, ok := a.model.(ThrottleReporter); ok {
		throttle = tr.Throttle()
	}
	a.addNoise(throttle)
	a.updateMagField()

	a.clock.Adjust(mathx.Constrain(a.curParams.LoopRateHz,
		a.clock.RateHz()-1, a.clock.RateHz()+1))
	a.timeNowUS += uint64(a.clock.FrameTimeUS())
	if a.realTime {
		a.clock.Sync()
	}

	return a.fillSnapshot()
}

func (a *Aircraft) initHome() {
	p := a.curParams
	a.home = Location{
		LatDeg: p.OriginLatDeg,
		LngDeg: p.OriginLngDeg,
		AltCM:  int32(p.OriginAltM * 100),
	}
	a.location = a.home
	a.groundLevel = a.home.AltM()
	a.dcm = mathx.FromEuler(0, 0, mathx.Radians(p.OriginHeadingDeg))
	a.smoothing = smoothedState{}
	a.homeIsSet = true
}

// groundHeightDifference is the terrain height at the vehicle relative to
// the terrain height at home.
func (a *Aircraft) groundHeightDifference() float64 {
	if !a.curParams.TerrainEnabled || a.terrain == nil {
		return 0
	}
	h1, ok1 := a.terrain.HeightAMSL(a.home)
	h2, ok2 := a.terrain.HeightAMSL(a.location)
	if !ok1 || !ok2 {
		return 0
	}
	return h2 - h1
}

// hagl is the height of the contact points above the local ground.
func (a *Aircraft) hagl() float64 {
	return -a.position.Z + a.home.AltM() - a.groundLevel - a.frameHeight - a.groundHeightDifference()
}

// checkGround refreshes contact state with a 1 mm threshold so numerical
// jitter on the clamp does not toggle it.
func (a *Aircraft) checkGround() {
	a.onGround = a.hagl() <= 0.001
}

// effectiveGroundBehavior applies the parameter override when present.
func (a *Aircraft) effectiveGroundBehavior() GroundBehavior {
	if a.curParams.GroundBehavior != GroundBehaviorUnset {
		return a.curParams.GroundBehavior
	}
	return a.groundBehavior
}

// updateDynamics integrates the rigid body forward one tick and applies
// the ground constraints.
func (a *Aircraft) updateDynamics(rotAccel mathx.Vec3) {
	dt := a.clock.FrameTimeUS() * 1e-6

	gyroPrev := a.gyro
	a.gyro = a.gyro.Add(rotAccel.Scale(dt)).ClampAxes(mathx.Radians(2000))
	if dt > 0 {
		a.angAccel = mathx.Vec3{
			X: mathx.Degrees(a.gyro.X-gyroPrev.X) / dt,
			Y: mathx.Degrees(a.gyro.Y-gyroPrev.Y) / dt,
			Z: mathx.Degrees(a.gyro.Z-gyroPrev.Z) / dt,
		}
	}

	a.dcm.Rotate(a.gyro.Scale(dt))
	a.dcm.Normalize()

	accelEarth := a.dcm.MulVec(a.accelBody).Add(mathx.Vec3{Z: GravityMSS})

	// the ground pushes back: no downward-through-ground acceleration
	a.checkGround()
	if a.onGround && accelEarth.Z > 0 {
		accelEarth.Z = 0
	}

	// what the accelerometers see is the kinematic accel plus gravity
	a.accelBody = a.dcm.MulTransposeVec(accelEarth.Add(mathx.Vec3{Z: -GravityMSS}))

	a.velocityEF = a.velocityEF.Add(accelEarth.Scale(dt))
	a.position = a.position.Add(a.velocityEF.Scale(dt))

	a.velocityAirEF = a.velocityEF.Sub(a.windEF)
	a.updateAirspeed()

	a.checkGround()
	if a.onGround {
		if !a.wasOnGround {
			nowMS := a.timeNowUS / 1000
			if nowMS-a.lastGroundMsgMS > 1000 {
				a.notice(fmt.Sprintf("hit ground at %.2f m/s", a.velocityEF.Z))
				a.lastGroundMsgMS = nowMS
			}
		}
		a.position.Z = -(a.groundLevel + a.frameHeight - a.home.AltM() + a.groundHeightDifference())
		a.applyGroundBehavior(accelEarth)
	}
	a.wasOnGround = a.onGround
}

// applyGroundBehavior constrains the state according to the vehicle's
// ground handling while it is in contact.
func (a *Aircraft) applyGroundBehavior(accelEarth mathx.Vec3) {
	switch a.effectiveGroundBehavior() {
	case GroundBehaviorNone:

	case GroundBehaviorNoMovement:
		_, _, yaw := a.dcm.ToEuler()
		a.dcm = mathx.FromEuler(0, 0, yaw)
		a.velocityEF.X = 0
		a.velocityEF.Y = 0
		if a.velocityEF.Z > 0 {
			a.velocityEF.Z = 0
		}
		a.gyro = mathx.Vec3{}
		a.useSmoothing = true

	case GroundBehaviorForwardOnly:
		_, pitch, yaw := a.dcm.ToEuler()
		if a.velocityEF.Length() < 5 {
			// slow enough to be taxiing; keep the nose level
			pitch = 0
		} else if pitch < 0 {
			// at speed allow rotation for takeoff but never nose-into-ground
			pitch = 0
		}
		a.dcm = mathx.FromEuler(0, pitch, yaw)

		vBF := a.dcm.MulTransposeVec(a.velocityEF)
		vBF.Y = 0
		if vBF.X < 0 {
			vBF.X = 0
		}
		a.velocityEF = a.dcm.MulVec(vBF)
		if a.velocityEF.Z > 0 {
			a.velocityEF.Z = 0
		}
		a.gyro = mathx.Vec3{}
		a.useSmoothing = true

	case GroundBehaviorTailsitter:
		_, _, yaw := a.dcm.ToEuler()
		a.dcm = mathx.FromEuler(0, mathx.Radians(90), yaw)
		// stay parked unless thrust exceeds weight with 10% margin
		if accelEarth.Z > -1.1*GravityMSS {
			a.velocityEF = mathx.Vec3{}
		}
		a.gyro = mathx.Vec3{}
		a.useSmoothing = true
	}
}

// updatePosition refreshes the geodetic location and the downward range
// finder from the NED position.
func (a *Aircraft) updatePosition() {
	a.location = a.home
	a.location.Offset(a.position.X, a.position.Y)
	a.location.AltCM = a.home.AltCM - int32(a.position.Z*100)

	// range finder looks straight down the body z axis
	tilt := a.dcm.C.Z
	if tilt > 0.05 {
		a.rangeFinderM = mathx.Constrain(a.hagl()/tilt, 0, 100)
	} else {
		a.rangeFinderM = math.Inf(1)
	}
}

// ExtrapolateSensors projects the truth state forward by dt seconds
// without running the force model, for consumers sampling between ticks.
func (a *Aircraft) ExtrapolateSensors(dt float64) {
	accelEarth := a.dcm.MulVec(a.accelBody).Add(mathx.Vec3{Z: GravityMSS})

	a.dcm.Rotate(a.gyro.Scale(dt))
	a.dcm.Normalize()

	a.velocityEF = a.velocityEF.Add(accelEarth.Scale(dt))
	a.position = a.position.Add(a.velocityEF.Scale(dt))
	a.velocityAirEF = a.velocityEF.Sub(a.windEF)
	a.updatePosition()
}

func (a *Aircraft) notice(msg string) {
	if a.telemetry != nil {
		a.telemetry.Notice(msg)
	}
}
