package sim

import (
	"testing"
	"time"
)

// fakeTime drives a FrameClock deterministically.
type fakeTime struct {
	nowUS uint64
	slept []time.Duration
}

func (f *fakeTime) now() uint64 { return f.nowUS }

func (f *fakeTime) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.nowUS += uint64(d.Microseconds())
}

func newFakeClock(rateHz float64) (*FrameClock, *fakeTime) {
	ft := &fakeTime{nowUS: 1}
	c := NewFrameClock(rateHz)
	c.nowFn = ft.now
	c.sleepFn = ft.sleep
	return c, ft
}

func TestFrameClockRates(t *testing.T) {
	c := NewFrameClock(400)
	if c.RateHz() != 400 {
		t.Errorf("rate %v", c.RateHz())
	}
	if c.FrameTimeUS() != 2500 {
		t.Errorf("frame time %v", c.FrameTimeUS())
	}

	c.SetSpeedup(10)
	if c.scaledFrameTimeUS != 250 {
		t.Errorf("scaled frame time %v", c.scaledFrameTimeUS)
	}
}

func TestFrameClockAdjustKeepsTuning(t *testing.T) {
	c, _ := newFakeClock(1200)
	c.scaledFrameTimeUS = 700

	c.Adjust(1200)
	if c.scaledFrameTimeUS != 700 {
		t.Error("unchanged rate should not reset the adapted budget")
	}

	c.Adjust(1000)
	if c.FrameTimeUS() != 1000 {
		t.Errorf("frame time after retune %v", c.FrameTimeUS())
	}
}

func TestFrameClockSleepsWhenAhead(t *testing.T) {
	c, ft := newFakeClock(1000)

	// prime the window origin
	c.Sync()

	// simulate ticks that each take only 100 us of wall time against a
	// 1000 us budget; the clock should sleep off the surplus
	for i := 0; i < 45; i++ {
		ft.nowUS += 100
		c.Sync()
	}
	if len(ft.slept) == 0 {
		t.Fatal("expected a pacing sleep when running ahead of wall time")
	}
}

func TestFrameClockNoSleepWhenBehind(t *testing.T) {
	c, ft := newFakeClock(1000)
	c.Sync()

	// each tick takes twice its budget; no sleep is ever due
	for i := 0; i < 200; i++ {
		ft.nowUS += 2000
		c.Sync()
	}
	if len(ft.slept) != 0 {
		t.Errorf("expected no sleeps while behind, got %d", len(ft.slept))
	}
	if c.AchievedRateHz() >= 1000 {
		t.Errorf("achieved rate should drop below target, got %v", c.AchievedRateHz())
	}
}

func TestFrameClockSmoothsAchievedRate(t *testing.T) {
	c, ft := newFakeClock(1000)
	c.Sync()

	// one 40-tick window measured at 500 Hz folds in at 1%
	for i := 0; i < 40; i++ {
		ft.nowUS += 2000
		c.Sync()
	}
	want := 0.99*1000 + 0.01*500
	if diff := c.AchievedRateHz() - want; diff > 1 || diff < -1 {
		t.Errorf("achieved rate %v, want about %v", c.AchievedRateHz(), want)
	}
}
