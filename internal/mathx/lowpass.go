package mathx

import "math"

// LowPassFilter is a single-pole RC low-pass over irregularly spaced samples.
type LowPassFilter struct {
	cutoffHz float64
	output   float64
	primed   bool
}

func (f *LowPassFilter) SetCutoff(hz float64) {
	f.cutoffHz = hz
}

// Apply filters one sample taken dt seconds after the previous one. A
// non-positive cutoff or dt passes the sample through unchanged.
func (f *LowPassFilter) Apply(sample, dt float64) float64 {
	if f.cutoffHz <= 0 || dt <= 0 {
		f.output = sample
		f.primed = true
		return sample
	}
	if !f.primed {
		f.output = sample
		f.primed = true
		return sample
	}
	rc := 1 / (2 * math.Pi * f.cutoffHz)
	alpha := Constrain(dt/(dt+rc), 0, 1)
	f.output += (sample - f.output) * alpha
	return f.output
}

func (f *LowPassFilter) Reset(value float64) {
	f.output = value
	f.primed = true
}

func (f *LowPassFilter) Output() float64 { return f.output }
