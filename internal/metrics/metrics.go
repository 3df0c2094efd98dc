// Package metrics accumulates scalar summaries over a simulation run.
package metrics

import (
	"math"

	"github.com/avosk/flightsim/internal/sim"
)

// MaxAltitude tracks the highest altitude reached.
type MaxAltitude struct {
	name string
	max  float64
	seen bool
}

func NewMaxAltitude() *MaxAltitude {
	return &MaxAltitude{name: "max_altitude"}
}

func (m *MaxAltitude) Name() string { return m.name }

func (m *MaxAltitude) Observe(s sim.Snapshot) {
	if !m.seen || s.AltitudeM > m.max {
		m.max = s.AltitudeM
		m.seen = true
	}
}

func (m *MaxAltitude) Value() float64 {
	return m.max
}

func (m *MaxAltitude) Reset() {
	m.max = 0
	m.seen = false
}

// GroundTrack integrates horizontal distance covered, in metres.
type GroundTrack struct {
	name    string
	total   float64
	lastLat float64
	lastLng float64
	started bool
}

func NewGroundTrack() *GroundTrack {
	return &GroundTrack{name: "ground_track"}
}

func (g *GroundTrack) Name() string { return g.name }

func (g *GroundTrack) Observe(s sim.Snapshot) {
	if g.started {
		const mPerDeg = 111318.845
		dn := (s.Latitude - g.lastLat) * mPerDeg
		de := (s.Longitude - g.lastLng) * mPerDeg * math.Cos(s.Latitude*math.Pi/180)
		g.total += math.Sqrt(dn*dn + de*de)
	}
	g.lastLat = s.Latitude
	g.lastLng = s.Longitude
	g.started = true
}

func (g *GroundTrack) Value() float64 {
	return g.total
}

func (g *GroundTrack) Reset() {
	g.total = 0
	g.started = false
}

// PeakLoad tracks the largest accelerometer magnitude seen, in g.
type PeakLoad struct {
	name string
	peak float64
}

func NewPeakLoad() *PeakLoad {
	return &PeakLoad{name: "peak_load"}
}

func (p *PeakLoad) Name() string { return p.name }

func (p *PeakLoad) Observe(s sim.Snapshot) {
	load := math.Sqrt(s.AccelX*s.AccelX+s.AccelY*s.AccelY+s.AccelZ*s.AccelZ) / sim.GravityMSS
	if load > p.peak {
		p.peak = load
	}
}

func (p *PeakLoad) Value() float64 {
	return p.peak
}

func (p *PeakLoad) Reset() {
	p.peak = 0
}

// RateActivity averages the body rate magnitude over the run, deg/s. A
// twitchy pilot shows up as a high value.
type RateActivity struct {
	name    string
	sum     float64
	samples int
}

func NewRateActivity() *RateActivity {
	return &RateActivity{name: "rate_activity"}
}

func (r *RateActivity) Name() string { return r.name }

func (r *RateActivity) Observe(s sim.Snapshot) {
	r.sum += math.Sqrt(s.RollRate*s.RollRate + s.PitchRate*s.PitchRate + s.YawRate*s.YawRate)
	r.samples++
}

func (r *RateActivity) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *RateActivity) Reset() {
	r.sum = 0
	r.samples = 0
}

// Default is the standard metric set attached to every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewMaxAltitude(),
		NewGroundTrack(),
		NewPeakLoad(),
		NewRateActivity(),
	}
}
