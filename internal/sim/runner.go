package sim

import (
	"context"
	"time"

	"github.com/avosk/flightsim/internal/mathx"
)

// Pilot closes the loop: it turns the last sensor frame into the next
// actuator frame.
type Pilot interface {
	Compute(snap Snapshot, dt float64) Input
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(snap Snapshot)
	Value() float64
	Reset()
}

// Observer is notified after every recorded tick.
type Observer interface {
	OnTick(snap Snapshot)
}

// DisturbanceEvent schedules a shove or twist at a simulated time offset.
type DisturbanceEvent struct {
	At         time.Duration
	Vec        mathx.Vec3
	Duration   time.Duration
	Rotational bool
}

// RunConfig describes one closed-loop run.
type RunConfig struct {
	// Duration of simulated time to cover.
	Duration time.Duration

	// FastForward disables real-time pacing.
	FastForward bool

	// BaseInput supplies the wind environment and any fixed servo
	// channels the pilot does not drive.
	BaseInput Input

	Disturbances []DisturbanceEvent

	// Stride records every Nth snapshot; zero or one records all.
	Stride int
}

// Result is the recorded output of a run.
type Result struct {
	Snapshots []Snapshot
	Times     []float64 // seconds of simulated time per recorded snapshot
	Metrics   map[string]float64
	Ticks     int
}

// Runner drives an Aircraft, a Pilot, and any metrics and observers
// through a timed closed-loop run.
type Runner struct {
	aircraft  *Aircraft
	pilot     Pilot
	metrics   []Metric
	observers []Observer
}

func NewRunner(a *Aircraft, p Pilot) *Runner {
	return &Runner{aircraft: a, pilot: p}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes the closed loop until the simulated duration is covered or
// the context is cancelled. The first tick flies the base input; the
// pilot takes over from the first snapshot on.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	stride := cfg.Stride
	if stride < 1 {
		stride = 1
	}
	r.aircraft.SetRealTime(!cfg.FastForward)
	for _, m := range r.metrics {
		m.Reset()
	}

	pending := append([]DisturbanceEvent(nil), cfg.Disturbances...)
	in := cfg.BaseInput
	res := &Result{Metrics: make(map[string]float64)}
	startUS := r.aircraft.TimeNowUS()

	var elapsed time.Duration
	for elapsed < cfg.Duration {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for len(pending) > 0 && elapsed >= pending[0].At {
			ev := pending[0]
			pending = pending[1:]
			durMS := uint64(ev.Duration / time.Millisecond)
			if ev.Rotational {
				r.aircraft.Twist(ev.Vec, durMS)
			} else {
				r.aircraft.Shove(ev.Vec, durMS)
			}
		}

		snap, err := r.aircraft.Step(in)
		if err != nil {
			return nil, err
		}
		res.Ticks++

		dt := r.aircraft.clock.FrameTimeUS() * 1e-6
		next := r.pilot.Compute(snap, dt)
		next.Wind = cfg.BaseInput.Wind
		in = next

		if res.Ticks%stride == 0 {
			res.Snapshots = append(res.Snapshots, snap)
			res.Times = append(res.Times, float64(snap.TimestampUS-startUS)*1e-6)
			for _, o := range r.observers {
				o.OnTick(snap)
			}
		}
		for _, m := range r.metrics {
			m.Observe(snap)
		}

		elapsed = time.Duration(snap.TimestampUS-startUS) * time.Microsecond
	}

	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
