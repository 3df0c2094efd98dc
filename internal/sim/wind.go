package sim

import (
	"math"

	"github.com/avosk/flightsim/internal/mathx"
)

// thermalCell is a gaussian updraft column: peak strength in m/s and a
// characteristic radius in metres.
type thermalCell struct {
	strength float64
	radius   float64
	north    float64
	east     float64
}

// Fixed scenarios for soaring tests. Each places one thermal south-west
// of the origin; the cell drifts downwind with altitude.
var thermalScenarios = map[int][]thermalCell{
	1: {{strength: 2, radius: 80, north: -180, east: -260}},
	2: {{strength: 4, radius: 30, north: -180, east: -260}},
	3: {{strength: 2, radius: 30, north: -180, east: -260}},
}

// localUpdraft returns the vertical air speed (up positive) at the
// vehicle's position under the configured thermal scenario.
func (a *Aircraft) localUpdraft(in Input) float64 {
	cells, ok := thermalScenarios[a.curParams.ThermalScenario]
	if !ok {
		return 0
	}

	dir := mathx.Radians(in.Wind.DirectionDeg)
	driftN := in.Wind.SpeedMS * (a.position.Z + 100) * math.Cos(dir)
	driftE := in.Wind.SpeedMS * (a.position.Z + 100) * math.Sin(dir)

	w := 0.0
	for _, c := range cells {
		if c.radius <= 0 {
			continue
		}
		dn := a.position.X - (c.north + driftN/c.strength)
		de := a.position.Y - (c.east + driftE/c.strength)
		r2 := dn*dn + de*de
		w += c.strength * math.Exp(-r2/(c.radius*c.radius))
	}
	return w
}

// updateWind refreshes the earth-frame wind vector from the commanded
// steady wind, the thermal updraft, and a first-order gust model that is
// frozen while the vehicle is on the ground.
func (a *Aircraft) updateWind(in Input) {
	dir := mathx.Radians(in.Wind.DirectionDeg)
	elev := mathx.Radians(in.Wind.VerticalAngleDeg)
	a.windEF = mathx.Vec3{
		X: math.Cos(dir) * math.Cos(elev),
		Y: math.Sin(dir) * math.Cos(elev),
		Z: math.Sin(elev),
	}.Scale(in.Wind.SpeedMS)

	// updrafts push air up, which is negative z in NED
	a.windEF.Z -= a.localUpdraft(in)

	turb := in.Wind.Turbulence * 10
	if turb > 0 && !a.onGround {
		a.turbAzimuthDeg = mathx.Wrap360(a.turbAzimuthDeg + 2*float64(a.noise.rng.Int31()))
		a.turbHorizSpeed = a.turbHorizSpeed*0.98 + turb*a.noise.normal(0, 1)*0.02
		a.turbVertSpeed = a.turbVertSpeed*0.98 + turb*a.noise.normal(0, 1)*0.02

		az := mathx.Radians(a.turbAzimuthDeg)
		a.windEF = a.windEF.Add(mathx.Vec3{
			X: math.Cos(az) * a.turbHorizSpeed,
			Y: math.Sin(az) * a.turbHorizSpeed,
			Z: a.turbVertSpeed,
		})
	}
}
