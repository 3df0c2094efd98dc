// Package pilot provides simple closed-loop pilots that turn sensor
// frames into actuator commands for the registered airframes.
package pilot

import (
	"github.com/avosk/flightsim/internal/mathx"
	"github.com/avosk/flightsim/internal/sim"
)

// Hover flies a quad to a target altitude and holds it level. Outputs go
// to motor channels 0..3 in the X-frame layout.
type Hover struct {
	TargetAltM float64

	alt   *PID
	roll  *PID
	pitch *PID
	yaw   *PID
}

func NewHover(targetAltM float64) *Hover {
	return &Hover{
		TargetAltM: targetAltM,
		alt:        NewPID(0.12, 0.02, 0.15),
		roll:       NewPID(0.02, 0, 0.004),
		pitch:      NewPID(0.02, 0, 0.004),
		yaw:        NewPID(0, 0, 0.002),
	}
}

// motor mixing signs matching the X-frame layout
var hoverMix = []struct {
	roll, pitch, yaw float64
}{
	{-1, +1, +1},
	{+1, -1, +1},
	{+1, +1, -1},
	{-1, -1, -1},
}

func (h *Hover) Compute(snap sim.Snapshot, dt float64) sim.Input {
	const hoverCmd = 0.64 // mid-stick for a 2:1 thrust-to-weight quad

	climb := h.alt.Update(h.TargetAltM-snap.AltitudeM, dt)
	climb -= 0.05 * -snap.SpeedD // damp vertical rate
	throttle := mathx.Constrain(hoverCmd+climb, 0, 1)

	rollOut := h.roll.Update(-snap.RollDeg, dt) - 0.001*snap.RollRate
	pitchOut := h.pitch.Update(-snap.PitchDeg, dt) - 0.001*snap.PitchRate
	yawOut := h.yaw.Update(0, dt) - 0.002*snap.YawRate

	var in sim.Input
	for i := range in.Servos {
		in.Servos[i] = 1000
	}
	for i, m := range hoverMix {
		cmd := throttle + m.roll*rollOut + m.pitch*pitchOut + m.yaw*yawOut
		in.Servos[i] = 1000 + 1000*mathx.Constrain(cmd, 0, 1)
	}
	return in
}

// Cruise holds a glider at a target airspeed with wings level. Channels:
// 0 aileron, 1 elevator, 2 throttle, 3 rudder.
type Cruise struct {
	TargetSpeedMS float64
	ThrottleCmd   float64

	roll  *PID
	speed *PID
}

func NewCruise(targetSpeedMS float64) *Cruise {
	return &Cruise{
		TargetSpeedMS: targetSpeedMS,
		ThrottleCmd:   0.6,
		roll:          NewPID(0.03, 0, 0.01),
		speed:         NewPID(0.02, 0.005, 0),
	}
}

func (c *Cruise) Compute(snap sim.Snapshot, dt float64) sim.Input {
	aileron := mathx.Constrain(c.roll.Update(-snap.RollDeg, dt), -1, 1)

	// too slow: push the nose down; too fast: pull up
	elevator := mathx.Constrain(c.speed.Update(snap.AirspeedMS-c.TargetSpeedMS, dt), -1, 1)

	var in sim.Input
	for i := range in.Servos {
		in.Servos[i] = 1500
	}
	in.Servos[0] = 1500 + 500*aileron
	in.Servos[1] = 1500 + 500*elevator
	in.Servos[2] = 1000 + 1000*mathx.Constrain(c.ThrottleCmd, 0, 1)
	return in
}

// Idle replays a fixed actuator frame forever.
type Idle struct {
	In sim.Input
}

func (p Idle) Compute(snap sim.Snapshot, dt float64) sim.Input { return p.In }

// ForAirframe returns a sensible default pilot for a registered airframe.
func ForAirframe(name string, targetAltM float64) sim.Pilot {
	switch name {
	case "glider":
		return NewCruise(15)
	case "quadx", "tailsitter":
		return NewHover(targetAltM)
	default:
		return Idle{}
	}
}
