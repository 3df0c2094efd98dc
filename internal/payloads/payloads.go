// Package payloads simulates external devices hung off the vehicle:
// liquid sprayers, cargo grippers, a parachute, a buzzer, and a precision
// landing beacon. Devices read their own servo channel from the actuator
// frame each tick.
package payloads

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
	"github.com/avosk/flightsim/internal/sim"
)

// Sprayer is a crop sprayer: a tank that drains while the pump channel is
// commanded open. The remaining liquid weighs on the vehicle.
type Sprayer struct {
	Channel    int
	TankKG     float64
	FlowKGPerS float64

	remaining float64
	primed    bool
	rate      float64
	tickSec   float64
}

func NewSprayer(channel int, tankKG, flowKGPerS, tickSec float64) *Sprayer {
	return &Sprayer{
		Channel:    channel,
		TankKG:     tankKG,
		FlowKGPerS: flowKGPerS,
		remaining:  tankKG,
		tickSec:    tickSec,
	}
}

func (s *Sprayer) Enabled() bool { return true }

func (s *Sprayer) Update(in sim.Input) {
	cmd := mathx.Constrain((in.Servos[s.Channel]-1000)/1000, 0, 1)
	s.rate = cmd * s.FlowKGPerS
	s.remaining = math.Max(0, s.remaining-s.rate*s.tickSec)
}

func (s *Sprayer) PayloadMass() float64 { return s.remaining }

// FlowRate is the current spray rate in kg/s.
func (s *Sprayer) FlowRate() float64 { return s.rate }

// GripperServo is a mechanical cargo gripper. Cargo mass rides along
// while the jaws are closed and drops on release.
type GripperServo struct {
	Channel int
	CargoKG float64

	holding bool
	loaded  bool
	altM    float64
}

func NewGripperServo(channel int, cargoKG float64) *GripperServo {
	return &GripperServo{Channel: channel, CargoKG: cargoKG, holding: true, loaded: true}
}

func (g *GripperServo) Enabled() bool { return true }

// SetAltitude receives the vehicle height above ground before each tick.
func (g *GripperServo) SetAltitude(hagl float64) { g.altM = hagl }

func (g *GripperServo) Update(in sim.Input) {
	open := in.Servos[g.Channel] >= 1700
	if open && g.holding {
		g.holding = false
		g.loaded = false
	}
	if !open {
		g.holding = true
	}
}

func (g *GripperServo) PayloadMass() float64 {
	if g.loaded {
		return g.CargoKG
	}
	return 0
}

// Holding reports whether the jaws are closed.
func (g *GripperServo) Holding() bool { return g.holding }

// DropAltitude is the height above ground last seen by the gripper.
func (g *GripperServo) DropAltitude() float64 { return g.altM }

// GripperEPM is an electropermanent magnet gripper. The magnet field
// ramps toward the commanded level; cargo drops when the field decays
// below the holding threshold.
type GripperEPM struct {
	Channel int
	CargoKG float64

	field  float64
	loaded bool
}

func NewGripperEPM(channel int, cargoKG float64) *GripperEPM {
	return &GripperEPM{Channel: channel, CargoKG: cargoKG, field: 1, loaded: true}
}

func (g *GripperEPM) Enabled() bool { return true }

func (g *GripperEPM) Update(in sim.Input) {
	target := mathx.Constrain((in.Servos[g.Channel]-1000)/1000, 0, 1)
	g.field += (target - g.field) * 0.2
	if g.loaded && g.field < 0.3 {
		g.loaded = false
	}
}

func (g *GripperEPM) PayloadMass() float64 {
	if g.loaded {
		return g.CargoKG
	}
	return 0
}

// Field is the current magnet strength in [0, 1].
func (g *GripperEPM) Field() float64 { return g.field }

// Parachute deploys once when its channel fires and stays out.
type Parachute struct {
	Channel int
	MassKG  float64

	deployed bool
}

func NewParachute(channel int) *Parachute {
	return &Parachute{Channel: channel, MassKG: 0.3}
}

func (p *Parachute) Enabled() bool { return true }

func (p *Parachute) Update(in sim.Input) {
	if in.Servos[p.Channel] >= 1800 {
		p.deployed = true
	}
}

func (p *Parachute) PayloadMass() float64 { return p.MassKG }

func (p *Parachute) Deployed() bool { return p.deployed }

// Buzzer tracks the on/off state of an alarm channel.
type Buzzer struct {
	Channel int

	on bool
}

func NewBuzzer(channel int) *Buzzer { return &Buzzer{Channel: channel} }

func (b *Buzzer) Enabled() bool { return true }

func (b *Buzzer) Update(in sim.Input) {
	b.on = in.Servos[b.Channel] >= 1500
}

func (b *Buzzer) PayloadMass() float64 { return 0 }

func (b *Buzzer) On() bool { return b.on }

// PrecLand is a ground beacon for precision landing. Each tick it records
// the range and bearing from the vehicle to the pad.
type PrecLand struct {
	Pad sim.Location

	active     bool
	rangeM     float64
	bearingDeg float64
}

func NewPrecLand(pad sim.Location) *PrecLand {
	return &PrecLand{Pad: pad, active: true}
}

func (p *PrecLand) Enabled() bool { return p.active }

func (p *PrecLand) Update(vehicle sim.Location, velocityEF mathx.Vec3) {
	const mPerDeg = 111318.845
	dn := (p.Pad.LatDeg - vehicle.LatDeg) * mPerDeg
	de := (p.Pad.LngDeg - vehicle.LngDeg) * mPerDeg *
		math.Cos(vehicle.LatDeg*math.Pi/180)
	dAlt := p.Pad.AltM() - vehicle.AltM()

	p.rangeM = math.Sqrt(dn*dn + de*de + dAlt*dAlt)
	p.bearingDeg = mathx.Wrap360(mathx.Degrees(math.Atan2(de, dn)))
}

// Range is the straight-line distance to the pad in metres.
func (p *PrecLand) Range() float64 { return p.rangeM }

// Bearing is the true bearing from the vehicle to the pad in degrees.
func (p *PrecLand) Bearing() float64 { return p.bearingDeg }
