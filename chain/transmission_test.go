package chain

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
	"github.com/partforge/mech/sprocket"
)

func TestLinkAssembly(t *testing.T) {
	c := bigLoop(t)
	a, err := c.LinkAssembly()
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != c.NumRollers() {
		t.Errorf("got %d links, want one per roller (%d)", a.Len(), c.NumRollers())
	}
}

func TestTransmission(t *testing.T) {
	c := bigLoop(t)
	spkts := make([]sprocket.Sprocket, 2)
	for i := range spkts {
		s, err := sprocket.New(sprocket.Parms{NumTeeth: 32})
		if err != nil {
			t.Fatal(err)
		}
		spkts[i] = s
	}
	a, err := c.Transmission(spkts)
	if err != nil {
		t.Fatal(err)
	}
	if want := c.NumRollers() + 2; a.Len() != want {
		t.Errorf("got %d parts, want %d", a.Len(), want)
	}

	// sprocket bodies sit at the sprocket centers
	s, err := a.Solid()
	if err != nil {
		t.Fatal(err)
	}
	for _, center := range []r3.Vec{{X: -300}, {X: 300}} {
		if d := s.Evaluate(center); d >= 0 {
			t.Errorf("no solid at sprocket center %v (%g)", center, d)
		}
	}
}

func TestTransmissionCountMismatch(t *testing.T) {
	c := bigLoop(t)
	s, err := sprocket.New(sprocket.Parms{NumTeeth: 32})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Transmission([]sprocket.Sprocket{s}); !errors.Is(err, mech.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestTransmissionRoundTrip(t *testing.T) {
	// rotating and translating the assembly, then undoing both,
	// restores every part
	c := bigLoop(t)
	a, err := c.LinkAssembly()
	if err != nil {
		t.Fatal(err)
	}
	orig, err := a.Solid()
	if err != nil {
		t.Fatal(err)
	}
	shift := r3.Vec{X: 17, Y: -4, Z: 9}
	back, err := a.RotateZ(37).Translate(shift).Translate(r3.Scale(-1, shift)).RotateZ(-37).Solid()
	if err != nil {
		t.Fatal(err)
	}
	probes := []r3.Vec{
		{X: -300, Y: 64.78},
		{X: 0, Y: -64.78},
		{X: 300, Y: 70},
		{X: 123, Y: 45, Z: 6},
	}
	for _, p := range probes {
		if got, want := back.Evaluate(p), orig.Evaluate(p); math.Abs(got-want) > 1e-9 {
			t.Errorf("Evaluate(%v): round-trip %g, original %g", p, got, want)
		}
	}
}
