// Package geomag approximates the earth's magnetic field with a tilted
// dipole centred on the geomagnetic north pole. Good to a few degrees of
// declination and inclination, which is plenty for sensor simulation.
package geomag

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
)

const (
	// geomagnetic north pole, 2020 epoch
	poleLatDeg = 80.65
	poleLngDeg = -72.68

	// surface field at the geomagnetic equator, gauss
	equatorGauss = 0.312
)

// Dipole implements the field lookup for the sensor pipeline.
type Dipole struct{}

func NewDipole() Dipole { return Dipole{} }

// Field returns intensity in gauss plus declination and inclination in
// degrees for the given location.
func (Dipole) Field(latDeg, lngDeg float64) (float64, float64, float64, bool) {
	lat := mathx.Radians(latDeg)
	poleLat := mathx.Radians(poleLatDeg)
	dLng := mathx.Radians(lngDeg - poleLngDeg)

	// magnetic latitude from the angular distance to the pole
	cosColat := math.Sin(poleLat)*math.Sin(lat) +
		math.Cos(poleLat)*math.Cos(lat)*math.Cos(dLng)
	cosColat = mathx.Constrain(cosColat, -1, 1)
	magLat := math.Pi/2 - math.Acos(cosColat)

	sinM := math.Sin(magLat)
	intensity := equatorGauss * math.Sqrt(1+3*sinM*sinM)
	inclination := math.Atan2(2*sinM, math.Cos(magLat))

	// declination is the bearing toward the geomagnetic pole
	declination := math.Atan2(
		math.Sin(-dLng)*math.Cos(poleLat),
		math.Cos(lat)*math.Sin(poleLat)-math.Sin(lat)*math.Cos(poleLat)*math.Cos(dLng),
	)

	return intensity, mathx.Degrees(declination), mathx.Degrees(inclination), true
}
