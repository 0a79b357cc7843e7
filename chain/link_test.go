package chain

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
)

func bicycleLink(inner bool) LinkParms {
	return LinkParms{
		ChainPitch:     0.5 * mech.Inch,
		PlateThickness: 1,
		Inner:          inner,
		RollerLength:   3.0 / 32.0 * mech.Inch,
		RollerDiameter: 5.0 / 16.0 * mech.Inch,
	}
}

func TestLinkValidation(t *testing.T) {
	bad := []LinkParms{
		{},
		{ChainPitch: 12.7, PlateThickness: 1, RollerLength: 2.38},
		{ChainPitch: 12.7, PlateThickness: 1, RollerLength: 2.38, RollerDiameter: 12.7},
	}
	for i, k := range bad {
		if _, err := Link(k); !errors.Is(err, mech.ErrInvalidParameter) {
			t.Errorf("case %d: got %v, want ErrInvalidParameter", i, err)
		}
	}
}

func TestLinkCacheHit(t *testing.T) {
	a, err := Link(bicycleLink(true))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Link(bicycleLink(true))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("identical parameters should return the cached solid")
	}
	if c, err := Link(bicycleLink(false)); err != nil || c == a {
		t.Errorf("outer link should be a distinct solid (err %v)", err)
	}
}

func TestLinkCachePreservesGeometry(t *testing.T) {
	// a cache hit must evaluate identically to a fresh build
	k := bicycleLink(true)
	cached, err := Link(k)
	if err != nil {
		t.Fatal(err)
	}
	fresh := makeLink(k)
	probes := []r3.Vec{
		{},
		{X: k.ChainPitch},
		{X: k.ChainPitch / 2, Z: 2},
		{X: -10, Y: 5, Z: 1},
	}
	for _, p := range probes {
		if got, want := cached.Evaluate(p), fresh.Evaluate(p); math.Abs(got-want) > 1e-12 {
			t.Errorf("Evaluate(%v): cached %g, fresh %g", p, got, want)
		}
	}
}

func TestLinkSpansPitch(t *testing.T) {
	s, err := Link(bicycleLink(true))
	if err != nil {
		t.Fatal(err)
	}
	// roller centers at the origin and one pitch along +x
	for _, p := range []r3.Vec{{}, {X: 12.7}} {
		if d := s.Evaluate(p); d >= 0 {
			t.Errorf("roller center %v not inside link (%g)", p, d)
		}
	}
	bb := s.Bounds()
	if bb.Min.X >= 0 || bb.Max.X <= 12.7 {
		t.Errorf("link bounds %v should cover both eyes", bb)
	}
}
