package sim

import (
	"runtime"
	"time"
)

// minSleep returns the shortest pause worth handing to the OS scheduler.
// Windows timer granularity is too coarse for the 5 ms floor used
// elsewhere.
func minSleep() time.Duration {
	if runtime.GOOS == "windows" {
		return 20 * time.Millisecond
	}
	return 5 * time.Millisecond
}

// FrameClock paces simulation ticks against wall-clock time. It measures
// the achieved rate over 40-tick windows and nudges a scaled per-tick
// sleep budget until the achieved rate matches the target times the
// speedup. The time sources are injectable for tests.
type FrameClock struct {
	rateHz            float64
	speedup           float64
	frameTimeUS       float64
	scaledFrameTimeUS float64
	achievedRateHz    float64

	frameCounter   int
	lastWallTimeUS uint64
	minSleepUS     float64

	nowFn   func() uint64
	sleepFn func(time.Duration)
}

// NewFrameClock returns a clock paced for the given physics rate at
// real-time speed.
func NewFrameClock(rateHz float64) *FrameClock {
	c := &FrameClock{
		speedup:    1,
		minSleepUS: float64(minSleep().Microseconds()),
		nowFn:      wallTimeUS,
		sleepFn:    time.Sleep,
	}
	c.SetRate(rateHz)
	c.achievedRateHz = rateHz
	return c
}

func wallTimeUS() uint64 {
	return uint64(time.Now().UnixMicro())
}

// SetRate retunes the clock to a new physics rate.
func (c *FrameClock) SetRate(rateHz float64) {
	if rateHz <= 0 {
		rateHz = DefaultRateHz
	}
	c.rateHz = rateHz
	c.frameTimeUS = 1e6 / rateHz
	c.scaledFrameTimeUS = c.frameTimeUS / c.speedup
}

// Adjust retunes the rate only when it changed, preserving the adapted
// sleep budget otherwise.
func (c *FrameClock) Adjust(rateHz float64) {
	if rateHz != c.rateHz {
		c.SetRate(rateHz)
	}
}

// SetSpeedup changes the target ratio of simulated to wall-clock time.
func (c *FrameClock) SetSpeedup(speedup float64) {
	if speedup <= 0 {
		speedup = 1
	}
	c.speedup = speedup
	c.scaledFrameTimeUS = c.frameTimeUS / c.speedup
}

// RateHz returns the current physics rate.
func (c *FrameClock) RateHz() float64 { return c.rateHz }

// Speedup returns the current target speedup.
func (c *FrameClock) Speedup() float64 { return c.speedup }

// FrameTimeUS returns the simulated duration of one tick in microseconds.
func (c *FrameClock) FrameTimeUS() float64 { return c.frameTimeUS }

// AchievedRateHz returns the smoothed measured tick rate.
func (c *FrameClock) AchievedRateHz() float64 { return c.achievedRateHz }

// Sync is called once per tick. Every 40 ticks it folds the measured rate
// into the smoothed estimate (1% per window), nudges the scaled sleep
// budget by a factor of 0.999 toward the target, and sleeps off any
// surplus above the minimum worthwhile pause.
func (c *FrameClock) Sync() {
	c.frameCounter++
	now := c.nowFn()
	if c.lastWallTimeUS == 0 {
		c.lastWallTimeUS = now
		c.frameCounter = 0
		return
	}
	if c.frameCounter < 40 || now <= c.lastWallTimeUS {
		return
	}

	elapsedUS := float64(now - c.lastWallTimeUS)
	measured := float64(c.frameCounter) * 1e6 / elapsedUS
	c.achievedRateHz = 0.99*c.achievedRateHz + 0.01*measured

	if c.achievedRateHz < c.rateHz*c.speedup {
		c.scaledFrameTimeUS *= 0.999
	} else {
		c.scaledFrameTimeUS /= 0.999
	}

	budgetUS := c.scaledFrameTimeUS * float64(c.frameCounter)
	if budgetUS > elapsedUS+c.minSleepUS {
		c.sleepFn(time.Duration(budgetUS-elapsedUS) * time.Microsecond)
	}

	c.lastWallTimeUS = c.nowFn()
	c.frameCounter = 0
}
