package sim

import "github.com/avosk/flightsim/internal/mathx"

// Payload is an attached device updated every tick with the raw actuator
// frame. Enabled payloads contribute their mass to the vehicle.
type Payload interface {
	Enabled() bool
	Update(in Input)
	PayloadMass() float64
}

// AltitudeAware payloads are fed the vehicle's height above ground before
// each update, ahead of any other payload.
type AltitudeAware interface {
	SetAltitude(hagl float64)
}

// Beacon is a ground device tracked against the vehicle's absolute
// position rather than the actuator frame.
type Beacon interface {
	Enabled() bool
	Update(vehicle Location, velocityEF mathx.Vec3)
}

// updatePayloads drives attached devices and returns their combined mass.
// Altitude-aware devices see the current height above ground before their
// Update runs.
func (a *Aircraft) updatePayloads(in Input) float64 {
	mass := 0.0
	for _, p := range a.payloads {
		if !p.Enabled() {
			continue
		}
		if aa, ok := p.(AltitudeAware); ok {
			aa.SetAltitude(a.hagl())
		}
		p.Update(in)
		mass += p.PayloadMass()
	}
	if a.beacon != nil && a.beacon.Enabled() {
		a.beacon.Update(a.location, a.velocityEF)
	}
	return mass
}
