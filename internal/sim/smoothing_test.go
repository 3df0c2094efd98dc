package sim

import (
	"math"
	"testing"

	"github.com/avosk/flightsim/internal/mathx"
)

func TestSmoothingSnapsOnFirstUse(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)

	a.position = mathx.Vec3{X: 3, Y: -2, Z: -50}
	a.velocityEF = mathx.Vec3{X: 1}
	a.smoothing = smoothedState{}
	a.timeNowUS += 1000

	a.smoothSensors()

	if !a.smoothing.enabled {
		t.Fatal("smoothing should enable on first pass")
	}
	if a.smoothing.position != a.position {
		t.Errorf("first pass should snap to truth, got %v", a.smoothing.position)
	}
	if a.smoothing.velocityEF != a.velocityEF {
		t.Errorf("first pass should snap velocity, got %v", a.smoothing.velocityEF)
	}
}

func TestSmoothingResetsOnLargeJump(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)
	a.smoothSensors()

	a.position = a.position.Add(mathx.Vec3{X: 50})
	a.timeNowUS += 1000
	a.smoothSensors()

	if a.smoothing.position != a.position {
		t.Errorf("divergence beyond the reset distance should snap, got %v want %v",
			a.smoothing.position, a.position)
	}
}

func TestSmoothingConvergesToTruth(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)

	// truth: stationary hover with the accelerometer reading -1g
	a.velocityEF = mathx.Vec3{}
	a.accelBody = mathx.Vec3{Z: -GravityMSS}
	a.gyro = mathx.Vec3{}
	a.smoothSensors()

	// offset the shadow within the reset distance
	a.smoothing.position = a.position.Add(mathx.Vec3{X: 2})
	start := 2.0

	for i := 0; i < 2000; i++ {
		a.timeNowUS += 1000 // 1 ms
		a.smoothSensors()
	}

	err := a.smoothing.position.Sub(a.position).Length()
	if err > start*0.05 {
		t.Errorf("shadow position error %v did not converge from %v", err, start)
	}
	if v := a.smoothing.velocityEF.Length(); v > 0.5 {
		t.Errorf("shadow velocity should settle, got %v", v)
	}
}

func TestSmoothingCarriesTruthRate(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)

	// steady 1 rad/s yaw rotation, attitudes aligned at the snap
	a.gyro = mathx.Vec3{Z: 1}
	a.smoothing = smoothedState{}
	a.smoothSensors()

	a.timeNowUS += 1000
	a.smoothSensors()

	if math.Abs(a.smoothing.gyro.Z-1) > 0.05 {
		t.Errorf("smoothed yaw rate %v should carry the 1 rad/s truth rate", a.smoothing.gyro.Z)
	}

	// with the truth rate carried, the shadow attitude tracks a rotating
	// truth instead of lagging it by rate times the time constant
	for i := 0; i < 500; i++ {
		a.dcm.Rotate(mathx.Vec3{Z: 0.001})
		a.dcm.Normalize()
		a.timeNowUS += 1000
		a.smoothSensors()
	}
	truth := mathx.QuatFromMatrix(a.dcm).Normalized()
	shadow := mathx.QuatFromMatrix(a.smoothing.rotation).Normalized()
	if lag := truth.Div(shadow).AxisAngle().Length(); lag > 0.02 {
		t.Errorf("shadow attitude lags rotating truth by %v rad", lag)
	}
}

func TestSmoothingSkipsStaleUpdates(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)
	a.smoothSensors()
	before := a.smoothing.position

	a.position = a.position.Add(mathx.Vec3{X: 1})
	a.timeNowUS += 500000 // half a second gap, beyond the usable window
	a.smoothSensors()

	if a.smoothing.position != before {
		t.Errorf("stale gap should only rebase the clock, position moved to %v", a.smoothing.position)
	}
}

func TestSmoothingAccelClamp(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	stepN(t, a, Input{}, 1)
	a.smoothSensors()

	// a violent but sub-reset divergence demands a huge corrective accel
	a.position = a.position.Add(mathx.Vec3{X: 9})
	a.velocityEF = mathx.Vec3{X: 300}
	a.timeNowUS += 1000
	a.smoothSensors()

	limit := 14*GravityMSS + GravityMSS + 1e-6
	g := a.smoothing.accelBody
	if math.Abs(g.X) > limit || math.Abs(g.Y) > limit || math.Abs(g.Z) > limit {
		t.Errorf("smoothed accel exceeds clamp: %v", g)
	}
}
