package sim

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
)

const (
	// GravityMSS is standard gravity in m/s^2.
	GravityMSS = 9.80665

	// ServoChannels is the width of the actuator command vector.
	ServoChannels = 16

	// MaxMotors bounds the per-motor RPM feedback in the snapshot.
	MaxMotors = 8

	// DefaultRateHz is the physics rate used until a parameter source
	// configures one.
	DefaultRateHz = 1200.0

	metersPerDegree = 111318.84502145034
)

// Input is the per-tick control frame handed to the core: raw actuator
// commands plus the commanded wind environment. The core never mutates it.
type Input struct {
	// Servos are PWM-style actuator commands in microseconds, trim 1500.
	Servos [ServoChannels]float64

	Wind WindInput
}

// WindInput is the commanded steady wind for one tick.
type WindInput struct {
	SpeedMS          float64
	DirectionDeg     float64 // direction the wind blows toward, from north
	VerticalAngleDeg float64 // elevation of the wind vector
	Turbulence       float64 // dimensionless gust intensity
}

// GroundBehavior selects how the ground contact state machine constrains
// the vehicle while it is touching down.
type GroundBehavior int

const (
	// GroundBehaviorUnset leaves the vehicle's own setting in place.
	GroundBehaviorUnset GroundBehavior = iota - 1

	// GroundBehaviorNone applies no constraint beyond the altitude clamp.
	GroundBehaviorNone

	// GroundBehaviorNoMovement pins the vehicle in place (rotorcraft).
	GroundBehaviorNoMovement

	// GroundBehaviorForwardOnly allows forward roll-out only (fixed wing).
	GroundBehaviorForwardOnly

	// GroundBehaviorTailsitter parks the vehicle nose-up on its tail.
	GroundBehaviorTailsitter
)

func (g GroundBehavior) String() string {
	switch g {
	case GroundBehaviorNone:
		return "none"
	case GroundBehaviorNoMovement:
		return "no-movement"
	case GroundBehaviorForwardOnly:
		return "forward-only"
	case GroundBehaviorTailsitter:
		return "tailsitter"
	default:
		return "unset"
	}
}

// Location is a geodetic position. Altitude is fixed-point centimetres
// above mean sea level so repeated offsetting cannot drift it.
type Location struct {
	LatDeg float64
	LngDeg float64
	AltCM  int32
}

// AltM returns the altitude in metres.
func (l Location) AltM() float64 { return float64(l.AltCM) * 0.01 }

// Offset shifts the location by north/east metres.
func (l *Location) Offset(northM, eastM float64) {
	l.LatDeg += northM / metersPerDegree
	scale := math.Cos(mathx.Radians(l.LatDeg))
	if scale < 0.01 {
		scale = 0.01
	}
	l.LngDeg += eastM / (metersPerDegree * scale)
}

// IsZero reports an unset location.
func (l Location) IsZero() bool {
	return l.LatDeg == 0 && l.LngDeg == 0 && l.AltCM == 0
}
