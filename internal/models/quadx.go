package models

import (
	"github.com/avosk/flightsim/internal/mathx"
	"github.com/avosk/flightsim/internal/sim"
)

// QuadX is an X-frame quadcopter. Motors sit on the first four servo
// channels; thrust rises with the square of commanded throttle so hover
// sits near mid-stick.
type QuadX struct {
	Mass       float64
	ArmLength  float64
	MaxThrust  float64 // newtons per motor
	YawTorque  float64 // yaw moment per newton of thrust
	Inertia    mathx.Vec3
	DragCoeff  float64
	RotDamping float64
	MaxRPM     float64
	HoverVolts float64
	MaxCurrent float64

	throttle float64
}

// Motor layout, top view, nose up the page. Spin direction alternates so
// yaw authority comes from differential torque.
//
//	2   0
//	 \ /
//	 / \
//	1   3
var quadXMotors = []struct {
	roll, pitch, yaw float64
}{
	{-1, +1, +1}, // front right, CCW
	{+1, -1, +1}, // back left, CCW
	{+1, +1, -1}, // front left, CW
	{-1, -1, -1}, // back right, CW
}

func NewQuadX() *QuadX {
	return &QuadX{
		Mass:       1.5,
		ArmLength:  0.25,
		MaxThrust:  9.0,
		YawTorque:  0.05,
		Inertia:    mathx.Vec3{X: 0.02, Y: 0.02, Z: 0.04},
		DragCoeff:  0.3,
		RotDamping: 0.8,
		MaxRPM:     9000,
		HoverVolts: 12.6,
		MaxCurrent: 40,
	}
}

func (q *QuadX) Throttle() float64 { return q.throttle }

func (q *QuadX) ComputeForces(a *sim.Aircraft, in sim.Input) (mathx.Vec3, mathx.Vec3) {
	var thrusts [4]float64
	total := 0.0
	for i := range quadXMotors {
		cmd := mathx.Constrain(a.FilteredServoRange(in, i), 0, 1)
		thrusts[i] = q.MaxThrust * cmd * cmd
		total += thrusts[i]
		a.SetMotorRPM(i, q.MaxRPM*cmd)
	}
	q.throttle = total / (4 * q.MaxThrust)
	a.SetNumMotors(4)

	var rollM, pitchM, yawM float64
	for i, m := range quadXMotors {
		rollM += m.roll * thrusts[i] * q.ArmLength
		pitchM += m.pitch * thrusts[i] * q.ArmLength
		yawM += m.yaw * thrusts[i] * q.YawTorque
	}

	mass := a.Mass()
	drag := a.VelocityAirBody().Scale(-q.DragCoeff / mass)
	accel := mathx.Vec3{Z: -total / mass}.Add(drag)

	rotAccel := mathx.Vec3{
		X: rollM / q.Inertia.X,
		Y: pitchM / q.Inertia.Y,
		Z: yawM / q.Inertia.Z,
	}
	rotAccel = rotAccel.Sub(a.Gyro().Scale(q.RotDamping))

	// battery sags with load
	current := q.MaxCurrent * q.throttle
	a.SetBattery(q.HoverVolts-0.05*current, current)

	return accel, rotAccel
}
