package sim

import (
	"math"
	"testing"

	"github.com/avosk/flightsim/internal/mathx"
)

func TestNormalDrawStatistics(t *testing.T) {
	n := newNoiseSource(42)
	const samples = 20000
	var sum, sumSq float64
	for i := 0; i < samples; i++ {
		v := n.normal(0, 1)
		sum += v
		sumSq += v * v
	}
	mean := sum / samples
	std := math.Sqrt(sumSq/samples - mean*mean)
	if math.Abs(mean) > 0.05 {
		t.Errorf("mean %v too far from 0", mean)
	}
	if math.Abs(std-1) > 0.05 {
		t.Errorf("stddev %v too far from 1", std)
	}
}

func TestNoiseScalesWithThrottle(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	a.curParams = levelParams()
	a.gyro = mathx.Vec3{}
	a.accelBody = mathx.Vec3{}

	a.addNoise(0)
	if !a.gyro.IsZero() || !a.accelBody.IsZero() {
		t.Error("zero throttle should add no noise")
	}

	a.addNoise(1)
	if a.gyro.IsZero() && a.accelBody.IsZero() {
		t.Error("full throttle should add noise")
	}
}

func TestNeutralMagField(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	a.curParams = levelParams()
	a.dcm = mathx.Identity()

	a.updateMagField()

	// neutral field: 0.45 gauss pointing true north
	if math.Abs(a.magBody.X-450) > 1e-6 || math.Abs(a.magBody.Y) > 1e-6 || math.Abs(a.magBody.Z) > 1e-6 {
		t.Errorf("neutral field should be (450,0,0) mgauss, got %v", a.magBody)
	}
}

type dipLookup struct{}

func (dipLookup) Field(lat, lng float64) (float64, float64, float64, bool) {
	return 0.5, 10, -60, true
}

func TestMagFieldSourceApplied(t *testing.T) {
	a := newTestAircraft(&testModel{}, levelParams())
	a.curParams = levelParams()
	a.SetGeomag(dipLookup{})
	a.dcm = mathx.Identity()

	a.updateMagField()

	if math.Abs(a.magBody.Length()-500) > 1e-6 {
		t.Errorf("field intensity should be 500 mgauss, got %v", a.magBody.Length())
	}
	// negative inclination tilts the field upward (negative z in NED)
	if a.magBody.Z >= 0 {
		t.Errorf("expected upward field component, got %v", a.magBody.Z)
	}
	if a.magBody.Y <= 0 {
		t.Errorf("positive declination should rotate field east, got %v", a.magBody.Y)
	}
}

func TestMagAnomalyDecaysWithHeight(t *testing.T) {
	p := levelParams()
	p.MagAnomalyHeight = 5
	p.MagAnomalyNED = mathx.Vec3{X: 100}
	a := newTestAircraft(&testModel{}, p)
	a.curParams = p
	a.home = Location{LatDeg: p.OriginLatDeg, LngDeg: p.OriginLngDeg, AltCM: int32(p.OriginAltM * 100)}
	a.groundLevel = a.home.AltM()

	a.position.Z = 0
	a.updateMagField()
	ground := a.magBody.X

	a.position.Z = -50
	a.updateMagField()
	aloft := a.magBody.X

	if ground <= aloft {
		t.Errorf("anomaly should decay with height: ground %v, aloft %v", ground, aloft)
	}
	if ground-450 < 90 {
		t.Errorf("on the ground the full anomaly applies, got %v extra", ground-450)
	}
	if aloft-450 > 1 {
		t.Errorf("at 50 m the anomaly should be nearly gone, got %v extra", aloft-450)
	}
}

func TestMotorInterference(t *testing.T) {
	p := levelParams()
	p.MagMotorInterference = mathx.Vec3{X: 1, Y: -2}
	a := newTestAircraft(&testModel{}, p)
	a.curParams = p
	a.batteryCurrent = 10

	a.updateMagField()

	if math.Abs(a.magBody.X-460) > 1e-6 {
		t.Errorf("expected 10 mgauss of x interference, got %v", a.magBody.X-450)
	}
	if math.Abs(a.magBody.Y+20) > 1e-6 {
		t.Errorf("expected -20 mgauss of y interference, got %v", a.magBody.Y)
	}
}
