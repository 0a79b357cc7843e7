package sprocket

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
)

func TestPitchRadius(t *testing.T) {
	r, err := PitchRadius(32, 0.5*mech.Inch)
	if err != nil {
		t.Fatal(err)
	}
	const want = 64.78458745735234
	if math.Abs(r-want) > 1e-12 {
		t.Errorf("PitchRadius(32, 12.7) = %.14f, want %.14f", r, want)
	}

	c, err := PitchCircumference(32, 0.5*mech.Inch)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c-2*math.Pi*r) > 1e-12 {
		t.Errorf("PitchCircumference = %.14f, want 2*pi*r = %.14f", c, 2*math.Pi*r)
	}
}

func TestPitchRadiusErrors(t *testing.T) {
	if _, err := PitchRadius(2, 12.7); !errors.Is(err, mech.ErrInvalidParameter) {
		t.Errorf("2 teeth: got %v, want ErrInvalidParameter", err)
	}
	if _, err := PitchRadius(32, 0); !errors.Is(err, mech.ErrInvalidParameter) {
		t.Errorf("zero pitch: got %v, want ErrInvalidParameter", err)
	}
}

func TestBicycleSprocketFlatTips(t *testing.T) {
	s, err := New(Parms{NumTeeth: 32})
	if err != nil {
		t.Fatal(err)
	}
	if !s.FlatTeeth() {
		t.Error("32T bicycle sprocket should have flat chamfered tips")
	}
	const wantOuter = 66.76896245735234
	if math.Abs(s.OuterRadius()-wantOuter) > 1e-12 {
		t.Errorf("OuterRadius = %.14f, want %.14f", s.OuterRadius(), wantOuter)
	}
}

func TestSpikyTips(t *testing.T) {
	// oversized rollers leave no room for a flat tip
	s, err := New(Parms{NumTeeth: 10, ChainPitch: 12.7, RollerDiameter: 11})
	if err != nil {
		t.Fatal(err)
	}
	if s.FlatTeeth() {
		t.Error("oversized rollers should force spiky tips")
	}
	if s.OuterRadius() >= s.PitchRadius()+s.RollerDiameter/4 {
		t.Errorf("spiky outer radius %g should sit below the flat-top circle", s.OuterRadius())
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		k    Parms
	}{
		{"too few teeth", Parms{NumTeeth: 2}},
		{"roller over pitch", Parms{NumTeeth: 16, ChainPitch: 12.7, RollerDiameter: 12.7}},
		{"negative clearance", Parms{NumTeeth: 16, Clearance: -0.1}},
		{"negative thickness", Parms{NumTeeth: 16, Thickness: -1}},
	}
	for _, tc := range cases {
		if _, err := New(tc.k); !errors.Is(err, mech.ErrInvalidParameter) {
			t.Errorf("%s: got %v, want ErrInvalidParameter", tc.name, err)
		}
	}
}

func TestProfile(t *testing.T) {
	s, err := New(Parms{NumTeeth: 16})
	if err != nil {
		t.Fatal(err)
	}
	p := s.Profile()
	halfTooth := math.Pi / 16

	// center is solid
	if d := p.Evaluate(r2.Vec{}); d >= 0 {
		t.Errorf("center not inside profile (%g)", d)
	}
	// tooth tips sit on the +x axis
	tip := r2.Vec{X: s.OuterRadius() - 0.01}
	if d := p.Evaluate(tip); d >= 0 {
		t.Errorf("tooth tip %v not inside profile (%g)", tip, d)
	}
	// roller seats are cut out between teeth
	sin, cos := math.Sincos(halfTooth)
	seat := r2.Vec{X: s.PitchRadius() * cos, Y: s.PitchRadius() * sin}
	if d := p.Evaluate(seat); d <= 0 {
		t.Errorf("roller seat %v not cut from profile (%g)", seat, d)
	}
	// nothing beyond the outer radius
	if d := p.Evaluate(r2.Vec{X: s.OuterRadius() + 1}); d <= 0 {
		t.Errorf("profile extends past outer radius (%g)", d)
	}
}

func TestThreeToothProfile(t *testing.T) {
	// minimum valid tooth count still yields a sound profile
	s, err := New(Parms{NumTeeth: 3})
	if err != nil {
		t.Fatal(err)
	}
	p := s.Profile()
	if d := p.Evaluate(r2.Vec{}); d >= 0 {
		t.Errorf("center not inside profile (%g)", d)
	}
	for i := 0; i < 3; i++ {
		angle := float64(i) * 2 * math.Pi / 3
		sin, cos := math.Sincos(angle)
		tip := r2.Vec{X: (s.OuterRadius() - 0.01) * cos, Y: (s.OuterRadius() - 0.01) * sin}
		if d := p.Evaluate(tip); d >= 0 {
			t.Errorf("tooth %d tip not inside profile (%g)", i, d)
		}
	}
}

func TestBoreAndBoltHoles(t *testing.T) {
	s, err := New(Parms{
		NumTeeth:           32,
		BoreDiameter:       20,
		BoltCircleDiameter: 80,
		NumMountBolts:      4,
		MountBoltDiameter:  8,
	})
	if err != nil {
		t.Fatal(err)
	}
	p := s.Profile()
	if d := p.Evaluate(r2.Vec{}); d <= 0 {
		t.Errorf("bore not cut (%g)", d)
	}
	if d := p.Evaluate(r2.Vec{X: 40}); d <= 0 {
		t.Errorf("bolt hole not cut (%g)", d)
	}
	// between bolt holes the web is solid
	sin, cos := math.Sincos(math.Pi / 4)
	if d := p.Evaluate(r2.Vec{X: 40 * cos, Y: 40 * sin}); d >= 0 {
		t.Errorf("web between bolt holes not solid (%g)", d)
	}
}

func TestSolidThickness(t *testing.T) {
	s, err := New(Parms{NumTeeth: 16, Thickness: 3})
	if err != nil {
		t.Fatal(err)
	}
	bb := s.Solid().Bounds()
	if h := bb.Max.Z - bb.Min.Z; math.Abs(h-3) > 1e-9 {
		t.Errorf("solid thickness %g, want 3", h)
	}
	if d := s.Solid().Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("solid center not inside (%g)", d)
	}
}
