// Package terrain provides height sources for the ground model.
package terrain

import (
	"math"

	"github.com/avosk/flightsim/internal/sim"
)

// Flat is a constant-elevation plain.
type Flat struct {
	ElevationM float64
}

func (f Flat) HeightAMSL(loc sim.Location) (float64, bool) {
	return f.ElevationM, true
}

// Rolling is a field of sinusoidal hills laid out on the lat/lng grid.
type Rolling struct {
	BaseM      float64
	AmplitudeM float64
	// WavelengthM is the hill spacing; zero picks a 500 m default.
	WavelengthM float64
}

func (r Rolling) HeightAMSL(loc sim.Location) (float64, bool) {
	wl := r.WavelengthM
	if wl <= 0 {
		wl = 500
	}
	// close enough at simulation scales
	const mPerDeg = 111318.845
	north := loc.LatDeg * mPerDeg
	east := loc.LngDeg * mPerDeg * math.Cos(loc.LatDeg*math.Pi/180)

	h := r.BaseM + r.AmplitudeM*
		math.Sin(2*math.Pi*north/wl)*
		math.Cos(2*math.Pi*east/wl)
	return h, true
}

// New maps a terrain name from configuration to a source. Unknown names
// report false.
func New(name string) (sim.TerrainSource, bool) {
	switch name {
	case "flat":
		return Flat{ElevationM: 584}, true
	case "rolling":
		return Rolling{BaseM: 584, AmplitudeM: 15}, true
	default:
		return nil, false
	}
}
