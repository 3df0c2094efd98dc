package pilot

import (
	"math"
	"testing"

	"github.com/avosk/flightsim/internal/sim"
)

func TestPIDProportional(t *testing.T) {
	p := NewPID(2, 0, 0)
	if got := p.Update(3, 0.01); got != 6 {
		t.Errorf("expected 6, got %v", got)
	}
}

func TestPIDIntegralWindupLimit(t *testing.T) {
	p := NewPID(0, 1, 0)
	p.Update(100, 0.01)
	for i := 0; i < 1000; i++ {
		p.Update(100, 0.01)
	}
	if got := p.Update(100, 0.01); math.Abs(got) > p.IntegralLimit+1e-9 {
		t.Errorf("integral term should saturate at %v, got %v", p.IntegralLimit, got)
	}
}

func TestPIDReset(t *testing.T) {
	p := NewPID(1, 1, 1)
	p.Update(5, 0.01)
	p.Update(3, 0.01)
	p.Reset()

	// first call after reset is proportional only
	if got := p.Update(2, 0.01); got != 2 {
		t.Errorf("expected pure proportional 2 after reset, got %v", got)
	}
}

func TestHoverRaisesThrottleBelowTarget(t *testing.T) {
	h := NewHover(100)

	low := sim.Snapshot{AltitudeM: 50}
	high := sim.Snapshot{AltitudeM: 150}

	inLow := h.Compute(low, 0.01)
	h2 := NewHover(100)
	inHigh := h2.Compute(high, 0.01)

	if inLow.Servos[0] <= inHigh.Servos[0] {
		t.Errorf("throttle below target (%v) should exceed throttle above it (%v)",
			inLow.Servos[0], inHigh.Servos[0])
	}
}

func TestHoverLevelsRoll(t *testing.T) {
	h := NewHover(100)
	snap := sim.Snapshot{AltitudeM: 100, RollDeg: 20}

	in := h.Compute(snap, 0.01)

	// right roll: raise the right-side motors (0, 3), drop the left (1, 2)
	if in.Servos[0] <= in.Servos[1] {
		t.Errorf("right roll should command right motors harder: %v vs %v",
			in.Servos[0], in.Servos[1])
	}
}

func TestCruiseCorrectsSpeed(t *testing.T) {
	c := NewCruise(15)

	slow := c.Compute(sim.Snapshot{AirspeedMS: 10}, 0.01)
	c2 := NewCruise(15)
	fast := c2.Compute(sim.Snapshot{AirspeedMS: 20}, 0.01)

	// slow pushes the nose down (elevator low), fast pulls up
	if slow.Servos[1] >= 1500 {
		t.Errorf("slow glider should push elevator down, got %v", slow.Servos[1])
	}
	if fast.Servos[1] <= 1500 {
		t.Errorf("fast glider should pull elevator up, got %v", fast.Servos[1])
	}
}

func TestForAirframe(t *testing.T) {
	if _, ok := ForAirframe("glider", 0).(*Cruise); !ok {
		t.Error("glider should fly with a cruise pilot")
	}
	if _, ok := ForAirframe("quadx", 50).(*Hover); !ok {
		t.Error("quadx should fly with a hover pilot")
	}
	if _, ok := ForAirframe("unknown", 0).(Idle); !ok {
		t.Error("unknown airframes idle")
	}
}
