package analysis

import (
	"math"
	"testing"
)

func TestFFTImpulse(t *testing.T) {
	data := make([]float64, 8)
	data[0] = 1
	fft := FFT(data)

	// an impulse is flat across all bins
	for i, c := range fft {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d: %v, want 1", i, c)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	const (
		dt   = 0.01
		freq = 5.0
	)
	data := make([]float64, 512)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}

	got := DominantFrequency(data, dt)
	if math.Abs(got-freq) > 0.3 {
		t.Errorf("expected about %v Hz, got %v", freq, got)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := make([]float64, 128)
	for i := range data {
		data[i] = 42
	}
	if got := DominantFrequency(data, 0.01); got != 0 {
		t.Errorf("flat signal has no dominant frequency, got %v", got)
	}
}

func TestPowerSpectrumArbitraryLength(t *testing.T) {
	// a non-power-of-two length is padded rather than rejected
	data := make([]float64, 300)
	for i := range data {
		data[i] = math.Sin(float64(i) * 0.3)
	}
	ps := PowerSpectrum(data)
	if len(ps) != 256 {
		t.Errorf("300 samples pad to 512, spectrum half is 256, got %d", len(ps))
	}
}
