package sim

import "github.com/avosk/flightsim/internal/mathx"

// disturbance is a timed external kick: a constant acceleration applied
// while armed and inside its wall-clock window. Zero duration means inert.
type disturbance struct {
	vec     mathx.Vec3
	startMS uint64
	durMS   uint64
}

// Arm schedules the disturbance starting now for the given duration in
// milliseconds. A non-positive duration disarms it.
func (d *disturbance) Arm(nowMS uint64, vec mathx.Vec3, durMS uint64) {
	if durMS == 0 {
		d.Clear()
		return
	}
	d.vec = vec
	d.startMS = nowMS
	d.durMS = durMS
}

// Accel returns the active disturbance vector, self-clearing on expiry.
func (d *disturbance) Accel(nowMS uint64) mathx.Vec3 {
	if d.durMS == 0 {
		return mathx.Vec3{}
	}
	if nowMS >= d.startMS+d.durMS {
		d.Clear()
		return mathx.Vec3{}
	}
	return d.vec
}

func (d *disturbance) Clear() {
	*d = disturbance{}
}

// Shove applies a constant earth-frame linear acceleration (m/s^2) for
// the given duration of simulated time.
func (a *Aircraft) Shove(accelEF mathx.Vec3, durMS uint64) {
	a.shove.Arm(a.timeNowUS/1000, accelEF, durMS)
}

// Twist applies a constant body-frame angular acceleration (rad/s^2) for
// the given duration of simulated time.
func (a *Aircraft) Twist(rotAccelBF mathx.Vec3, durMS uint64) {
	a.twist.Arm(a.timeNowUS/1000, rotAccelBF, durMS)
}
