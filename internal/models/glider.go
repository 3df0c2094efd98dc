package models

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
	"github.com/avosk/flightsim/internal/sim"
)

// Glider is a simple fixed-wing airframe with an optional motor. Servo
// channels: 0 aileron, 1 elevator, 2 throttle, 3 rudder.
type Glider struct {
	Mass      float64
	WingArea  float64
	MaxThrust float64
	Inertia   mathx.Vec3

	// lift curve and drag polar
	CL0      float64
	CLAlpha  float64
	CD0      float64
	KInduced float64

	// control surface authority, moment per unit deflection per Pa of
	// dynamic pressure
	AileronPower  float64
	ElevatorPower float64
	RudderPower   float64

	// static stability and rate damping
	PitchStability float64
	YawStability   float64
	RollDamping    float64
	PitchDamping   float64
	YawDamping     float64

	throttle float64
}

func NewGlider() *Glider {
	return &Glider{
		Mass:           2.0,
		WingArea:       0.45,
		MaxThrust:      8.0,
		Inertia:        mathx.Vec3{X: 0.1, Y: 0.15, Z: 0.2},
		CL0:            0.3,
		CLAlpha:        5.0,
		CD0:            0.03,
		KInduced:       0.05,
		AileronPower:   0.003,
		ElevatorPower:  0.004,
		RudderPower:    0.002,
		PitchStability: 0.008,
		YawStability:   0.006,
		RollDamping:    3.0,
		PitchDamping:   4.0,
		YawDamping:     2.0,
	}
}

func (g *Glider) Throttle() float64 { return g.throttle }

const airDensity = 1.225

func (g *Glider) ComputeForces(a *sim.Aircraft, in sim.Input) (mathx.Vec3, mathx.Vec3) {
	aileron := a.FilteredServoAngle(in, 0)
	elevator := a.FilteredServoAngle(in, 1)
	g.throttle = mathx.Constrain(a.FilteredServoRange(in, 2), 0, 1)
	rudder := a.FilteredServoAngle(in, 3)

	a.SetNumMotors(1)
	a.SetMotorRPM(0, 7000*g.throttle)
	a.SetBattery(11.1-0.5*g.throttle, 20*g.throttle)

	airBF := a.VelocityAirBody()
	speed := airBF.Length()
	q := 0.5 * airDensity * speed * speed

	// angle of attack and sideslip from the body airflow
	alpha := 0.0
	beta := 0.0
	if math.Abs(airBF.X) > 0.1 {
		alpha = math.Atan2(airBF.Z, airBF.X)
		beta = math.Atan2(airBF.Y, airBF.X)
	}

	cl := g.CL0 + g.CLAlpha*alpha
	cd := g.CD0 + g.KInduced*cl*cl
	lift := q * g.WingArea * cl
	drag := q * g.WingArea * cd

	mass := a.Mass()
	accel := mathx.Vec3{
		X: (g.MaxThrust*g.throttle - drag) / mass,
		Y: -q * g.WingArea * beta * 0.5 / mass,
		Z: -lift / mass,
	}

	gyro := a.Gyro()
	rotAccel := mathx.Vec3{
		X: (q*g.AileronPower*aileron - g.RollDamping*g.Inertia.X*gyro.X) / g.Inertia.X,
		Y: (q*(g.ElevatorPower*elevator-g.PitchStability*alpha) - g.PitchDamping*g.Inertia.Y*gyro.Y) / g.Inertia.Y,
		Z: (q*(g.RudderPower*rudder-g.YawStability*beta) - g.YawDamping*g.Inertia.Z*gyro.Z) / g.Inertia.Z,
	}

	return accel, rotAccel
}
