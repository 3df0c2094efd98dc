package sim

import (
	"context"
	"testing"
	"time"

	"github.com/avosk/flightsim/internal/mathx"
)

// constantPilot returns the same actuator frame every tick.
type constantPilot struct {
	in Input
}

func (p constantPilot) Compute(snap Snapshot, dt float64) Input { return p.in }

type maxAltMetric struct {
	max float64
}

func (m *maxAltMetric) Name() string { return "max_altitude" }
func (m *maxAltMetric) Observe(s Snapshot) {
	if s.AltitudeM > m.max {
		m.max = s.AltitudeM
	}
}
func (m *maxAltMetric) Value() float64 { return m.max }
func (m *maxAltMetric) Reset()         { m.max = 0 }

func TestRunnerCoversDuration(t *testing.T) {
	model := &testModel{accelBody: mathx.Vec3{Z: -2 * GravityMSS}}
	a := newTestAircraft(model, levelParams())
	r := NewRunner(a, constantPilot{})

	res, err := r.Run(context.Background(), RunConfig{
		Duration:    time.Second,
		FastForward: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Ticks < 1190 || res.Ticks > 1210 {
		t.Errorf("expected about 1200 ticks for 1 s at 1200 Hz, got %d", res.Ticks)
	}
	if len(res.Snapshots) != res.Ticks {
		t.Errorf("stride 1 should record every tick: %d vs %d", len(res.Snapshots), res.Ticks)
	}
	last := res.Times[len(res.Times)-1]
	if last < 0.99 || last > 1.01 {
		t.Errorf("final sample time %v, want about 1 s", last)
	}
}

func TestRunnerStride(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	a.SetGroundBehavior(GroundBehaviorNoMovement)
	r := NewRunner(a, constantPilot{})

	res, err := r.Run(context.Background(), RunConfig{
		Duration:    100 * time.Millisecond,
		FastForward: true,
		Stride:      10,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := res.Ticks / 10; len(res.Snapshots) != want {
		t.Errorf("stride 10 recorded %d of %d ticks", len(res.Snapshots), res.Ticks)
	}
}

func TestRunnerMetrics(t *testing.T) {
	model := &testModel{accelBody: mathx.Vec3{Z: -2 * GravityMSS}}
	a := newTestAircraft(model, levelParams())
	r := NewRunner(a, constantPilot{})
	r.AddMetric(&maxAltMetric{})

	res, err := r.Run(context.Background(), RunConfig{
		Duration:    time.Second,
		FastForward: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Metrics["max_altitude"] <= 584 {
		t.Errorf("climb should raise max altitude above home, got %v", res.Metrics["max_altitude"])
	}
}

func TestRunnerInvalidDuration(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	r := NewRunner(a, constantPilot{})

	if _, err := r.Run(context.Background(), RunConfig{}); err != ErrInvalidDuration {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestRunnerCancellation(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	r := NewRunner(a, constantPilot{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, RunConfig{Duration: time.Second, FastForward: true}); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerDisturbanceEvent(t *testing.T) {
	model := &testModel{accelBody: mathx.Vec3{Z: -2 * GravityMSS}}
	a := newTestAircraft(model, levelParams())
	r := NewRunner(a, constantPilot{})

	res, err := r.Run(context.Background(), RunConfig{
		Duration:    2 * time.Second,
		FastForward: true,
		Disturbances: []DisturbanceEvent{{
			At:         time.Second,
			Vec:        mathx.Vec3{Z: 2},
			Duration:   200 * time.Millisecond,
			Rotational: true,
		}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// yaw rate is zero before the event and spun up after it
	mid := res.Snapshots[len(res.Snapshots)/2-100]
	end := res.Snapshots[len(res.Snapshots)-1]
	if mid.YawRate != 0 {
		t.Errorf("yaw rate before event should be zero, got %v", mid.YawRate)
	}
	if end.YawRate <= 0 {
		t.Errorf("yaw rate after twist should be positive, got %v", end.YawRate)
	}
}
