package sim

import (
	"math"
	"math/rand"

	"github.com/avosk/flightsim/internal/mathx"
)

// noiseSource draws unit gaussians with the polar Box-Muller transform,
// caching the second sample of each pair.
type noiseSource struct {
	rng       *rand.Rand
	cached    float64
	hasCached bool
}

func newNoiseSource(seed int64) *noiseSource {
	return &noiseSource{rng: rand.New(rand.NewSource(seed))}
}

func (n *noiseSource) normal(mean, stddev float64) float64 {
	if n.hasCached {
		n.hasCached = false
		return n.cached*stddev + mean
	}
	var x, y, r float64
	for {
		x = 2*n.rng.Float64() - 1
		y = 2*n.rng.Float64() - 1
		r = x*x + y*y
		if r != 0 && r <= 1 {
			break
		}
	}
	d := math.Sqrt(-2 * math.Log(r) / r)
	n.cached = y * d
	n.hasCached = true
	return x*d*stddev + mean
}

func (n *noiseSource) vec() mathx.Vec3 {
	return mathx.Vec3{X: n.normal(0, 1), Y: n.normal(0, 1), Z: n.normal(0, 1)}
}

// addNoise perturbs the gyro and body accelerometer in proportion to
// throttle demand, modeling vibration that grows with motor load.
func (a *Aircraft) addNoise(throttle float64) {
	t := math.Abs(throttle)
	a.gyro = a.gyro.Add(a.noise.vec().Scale(a.curParams.GyroNoise * t))
	a.accelBody = a.accelBody.Add(a.noise.vec().Scale(a.curParams.AccelNoise * t))
}

// updateMagField derives the body-frame magnetometer sample: the local
// earth field from the field source (or a neutral north-aligned default),
// an optional ground anomaly decaying with the inverse cube of height,
// and motor interference proportional to battery current.
func (a *Aircraft) updateMagField() {
	intensity, decl, incl := 0.45, 0.0, 0.0
	if a.geomag != nil {
		if i, d, n, ok := a.geomag.Field(a.location.LatDeg, a.location.LngDeg); ok {
			intensity, decl, incl = i, d, n
		}
	}

	// milligauss, earth frame
	magEF := mathx.Vec3{X: intensity * 1000}
	rot := mathx.FromEuler(0, -mathx.Radians(incl), mathx.Radians(decl))
	magEF = rot.MulVec(magEF)

	if h := a.curParams.MagAnomalyHeight; h > 0 {
		agl := math.Max(-a.position.Z+a.home.AltM()-a.groundLevel, 0)
		scaler := math.Pow(h/(agl+h), 3)
		magEF = magEF.Add(a.curParams.MagAnomalyNED.Scale(scaler))
	}

	a.magBody = a.dcm.MulTransposeVec(magEF)
	a.magBody = a.magBody.Add(a.curParams.MagMotorInterference.Scale(a.batteryCurrent))
}

// updateAirspeed derives the pitot reading from the body-frame airflow,
// bounded to the instrument's physical range.
func (a *Aircraft) updateAirspeed() {
	airBF := a.dcm.MulTransposeVec(a.velocityAirEF)
	a.airspeedPitot = mathx.Constrain(airBF.X, 0, 120)
	a.airspeed = a.velocityAirEF.Length()
}
