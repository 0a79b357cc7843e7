package chain

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
	"github.com/partforge/mech/sprocket"
)

// two 32T sprockets 600mm apart, both positive wrap
func bigLoop(t *testing.T) *Chain {
	t.Helper()
	c, err := New(Parms{
		SpktTeeth:         []int{32, 32},
		SpktLocations:     []r3.Vec{{X: -300}, {X: 300}},
		PositiveChainWrap: []bool{true, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		k    Parms
		want error
	}{
		{
			"length mismatch",
			Parms{SpktTeeth: []int{32, 32}, SpktLocations: []r3.Vec{{X: -300}, {X: 300}}, PositiveChainWrap: []bool{true}},
			mech.ErrInvalidParameter,
		},
		{
			"one sprocket",
			Parms{SpktTeeth: []int{32}, SpktLocations: []r3.Vec{{}}, PositiveChainWrap: []bool{true}},
			mech.ErrInvalidParameter,
		},
		{
			"coincident sprockets",
			Parms{SpktTeeth: []int{32, 32}, SpktLocations: []r3.Vec{{X: 5}, {X: 5}}, PositiveChainWrap: []bool{true, true}},
			mech.ErrInvalidParameter,
		},
		{
			"roller over pitch",
			Parms{SpktTeeth: []int{32, 32}, SpktLocations: []r3.Vec{{X: -300}, {X: 300}},
				PositiveChainWrap: []bool{true, true}, ChainPitch: 12.7, RollerDiameter: 12.7},
			mech.ErrInvalidParameter,
		},
		{
			"bad tooth count",
			Parms{SpktTeeth: []int{32, 2}, SpktLocations: []r3.Vec{{X: -300}, {X: 300}}, PositiveChainWrap: []bool{true, true}},
			mech.ErrInvalidParameter,
		},
	}
	for _, tc := range cases {
		if _, err := New(tc.k); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestTwoSprocketAngles(t *testing.T) {
	c := bigLoop(t)
	got := c.ChainAngles()
	want := [][2]float64{{0, 180}, {180, 0}}
	for s := range want {
		for i := range want[s] {
			if math.Abs(got[s][i]-want[s][i]) > 1e-9 {
				t.Errorf("ChainAngles[%d][%d] = %g, want %g", s, i, got[s][i], want[s][i])
			}
		}
	}
}

func TestTwoSprocketPathLength(t *testing.T) {
	// equal radii, same wrap: two straight spans the length of the
	// center distance plus two half circle wraps
	c := bigLoop(t)
	pr, err := sprocket.PitchRadius(32, 0.5*mech.Inch)
	if err != nil {
		t.Fatal(err)
	}
	want := (2*600 + 2*math.Pi*pr) / (0.5 * mech.Inch)
	if math.Abs(c.Links()-want) > 1e-9 {
		t.Errorf("Links = %.12f, want %.12f", c.Links(), want)
	}
	if c.NumRollers() != int(math.Floor(want)) {
		t.Errorf("NumRollers = %d, want %d", c.NumRollers(), int(math.Floor(want)))
	}
	if math.Abs(c.Gap()-math.Abs(c.Links()-math.Round(c.Links()))) > 1e-12 {
		t.Errorf("Gap = %g inconsistent with Links = %g", c.Gap(), c.Links())
	}
}

func TestInitialRotation(t *testing.T) {
	c := bigLoop(t)
	got := c.SpktInitialRotation()
	want := []float64{5.625, 193.82627377380086}
	if len(got) != len(want) {
		t.Fatalf("got %d rotations, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("SpktInitialRotation[%d] = %.14f, want %.14f", i, got[i], want[i])
		}
	}
}

func TestFirstRollerAtEntry(t *testing.T) {
	c := bigLoop(t)
	pr := c.PitchRadii()[0]
	first := c.Rollers()[0].Loc
	want := r3.Vec{X: -300, Y: pr}
	if d := r3.Norm(r3.Sub(first, want)); d > 1e-9 {
		t.Errorf("first roller at %v, want %v (off by %g)", first, want, d)
	}
}

func TestNearPerfectFit(t *testing.T) {
	// the commonly cited tight-fit configuration: 32/32 at 254mm
	c, err := New(Parms{
		SpktTeeth:         []int{32, 32},
		SpktLocations:     []r3.Vec{{X: -127}, {X: 127}},
		PositiveChainWrap: []bool{true, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if gap := c.Gap(); gap > 0.06 {
		t.Errorf("Links = %g: gap %g from a whole link, want a near-perfect fit", c.Links(), gap)
	}
}

func TestDeterminism(t *testing.T) {
	k := Parms{
		SpktTeeth:         []int{32, 16, 10},
		SpktLocations:     []r3.Vec{{X: -300}, {X: 300}, {X: 0, Y: 150}},
		PositiveChainWrap: []bool{true, true, false},
	}
	a, err := New(k)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(k)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Rollers(), b.Rollers()); diff != "" {
		t.Errorf("roller layout not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.ChainAngles(), b.ChainAngles()); diff != "" {
		t.Errorf("chain angles not deterministic:\n%s", diff)
	}
}

func TestDegenerateTangent(t *testing.T) {
	// centers closer than the pitch radius difference
	_, err := New(Parms{
		SpktTeeth:         []int{32, 10},
		SpktLocations:     []r3.Vec{{}, {X: 10}},
		PositiveChainWrap: []bool{true, true},
	})
	if !errors.Is(err, mech.ErrDegenerateGeometry) {
		t.Errorf("overlapping same-wrap: got %v, want ErrDegenerateGeometry", err)
	}

	// crossed tangent needs sep >= ra+rb
	_, err = New(Parms{
		SpktTeeth:         []int{16, 16},
		SpktLocations:     []r3.Vec{{}, {X: 50}},
		PositiveChainWrap: []bool{true, false},
	})
	if !errors.Is(err, mech.ErrDegenerateGeometry) {
		t.Errorf("tight crossed wrap: got %v, want ErrDegenerateGeometry", err)
	}
}

func TestCrossedWrap(t *testing.T) {
	c, err := New(Parms{
		SpktTeeth:         []int{16, 16},
		SpktLocations:     []r3.Vec{{}, {X: 200}},
		PositiveChainWrap: []bool{true, false},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Links() <= 0 || c.NumRollers() <= 0 {
		t.Errorf("Links = %g, NumRollers = %d", c.Links(), c.NumRollers())
	}
	// a crossed chain is longer than the same loop with equal wrap
	same, err := New(Parms{
		SpktTeeth:         []int{16, 16},
		SpktLocations:     []r3.Vec{{}, {X: 200}},
		PositiveChainWrap: []bool{true, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Links() <= same.Links() {
		t.Errorf("crossed %g links, same-wrap %g links", c.Links(), same.Links())
	}
}

func TestOffsetPlane(t *testing.T) {
	// the layout plane passes through the sprockets, not the origin
	c, err := New(Parms{
		SpktTeeth:         []int{32, 32},
		SpktLocations:     []r3.Vec{{X: -300, Z: 10}, {X: 300, Z: 10}},
		PositiveChainWrap: []bool{true, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range c.Rollers() {
		if math.Abs(r.Loc.Z-10) > 1e-9 {
			t.Fatalf("roller %d at z=%g, want 10", i, r.Loc.Z)
		}
	}
}

func TestOutOfPlane(t *testing.T) {
	_, err := New(Parms{
		SpktTeeth:         []int{16, 16, 16, 16},
		SpktLocations:     []r3.Vec{{}, {X: 200}, {X: 100, Y: 160}, {X: 100, Y: 80, Z: 30}},
		PositiveChainWrap: []bool{true, true, true, true},
	})
	if !errors.Is(err, mech.ErrUnsupportedConfiguration) {
		t.Errorf("got %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestMixedWrapArcs(t *testing.T) {
	// three sprockets with alternating wrap directions; the crossed
	// tangents force wrap arcs well past a half turn
	c, err := New(Parms{
		SpktTeeth:         []int{29, 21, 20},
		SpktLocations:     []r3.Vec{{X: -33.2, Y: 80.1}, {X: -200.2, Y: 113.4}, {X: 74.1, Y: 251.5}},
		PositiveChainWrap: []bool{false, true, false},
	})
	if err != nil {
		t.Fatal(err)
	}

	for s, a := range c.arcAngles {
		if a < 0 || a >= 360 {
			t.Errorf("sprocket %d: arc sweep %g outside [0,360)", s, a)
		}
	}
	for s, pair := range c.chainAngles {
		for i, a := range pair {
			if a < 0 || a >= 360 {
				t.Errorf("sprocket %d contact angle %d: %g outside [0,360)", s, i, a)
			}
		}
	}

	// rollers on each wrap arc must progress around the sprocket center
	// in the declared wrap direction
	arcRollers := make([][]float64, len(c.spktLocs))
	for i := 0; i < c.numRollers; i++ {
		dist := math.Mod(float64(i)*c.ChainPitch, c.chainLength)
		seg := findSegment(dist, c.segmentSums)
		if seg%2 != 0 {
			continue
		}
		s := seg / 2
		d := r2.Sub(r2.Vec{X: c.rollers[i].Loc.X, Y: c.rollers[i].Loc.Y}, c.spktLocs[s])
		arcRollers[s] = append(arcRollers[s], mech.RtoD(math.Atan2(-d.X, d.Y)))
	}
	for s, angles := range arcRollers {
		for i := 1; i < len(angles); i++ {
			delta := math.Mod(angles[i]-angles[i-1]+540, 360) - 180
			if c.PositiveChainWrap[s] && delta <= 0 {
				t.Errorf("sprocket %d: roller steps %g degrees against positive wrap", s, delta)
			}
			if !c.PositiveChainWrap[s] && delta >= 0 {
				t.Errorf("sprocket %d: roller steps %g degrees against negative wrap", s, delta)
			}
		}
	}
}

func TestParmsCopied(t *testing.T) {
	teeth := []int{32, 32}
	locs := []r3.Vec{{X: -300}, {X: 300}}
	wrap := []bool{true, true}
	c, err := New(Parms{SpktTeeth: teeth, SpktLocations: locs, PositiveChainWrap: wrap})
	if err != nil {
		t.Fatal(err)
	}
	before := c.Rollers()

	teeth[0] = 90
	locs[1] = r3.Vec{Y: 999}
	wrap[0] = false

	if c.SpktTeeth[0] != 32 || c.SpktLocations[1] != (r3.Vec{X: 300}) || !c.PositiveChainWrap[0] {
		t.Errorf("chain parameters follow caller mutations: teeth %v, locs %v, wrap %v",
			c.SpktTeeth, c.SpktLocations, c.PositiveChainWrap)
	}
	if diff := cmp.Diff(before, c.Rollers()); diff != "" {
		t.Errorf("roller layout changed after input mutation:\n%s", diff)
	}
}

func TestCollinearFallback(t *testing.T) {
	// three collinear sprockets cannot define the plane; the declared
	// normal takes over and the middle sprocket gets a zero arc
	c, err := New(Parms{
		SpktTeeth:         []int{16, 16, 16},
		SpktLocations:     []r3.Vec{{}, {X: 200}, {X: 400}},
		PositiveChainWrap: []bool{true, true, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	pr := c.PitchRadii()[0]
	want := (2*400 + 2*math.Pi*pr) / (0.5 * mech.Inch)
	if math.Abs(c.Links()-want) > 1e-9 {
		t.Errorf("Links = %g, want %g", c.Links(), want)
	}
	for i, r := range c.Rollers() {
		if math.Abs(r.Loc.Z) > 1e-9 {
			t.Fatalf("roller %d at z=%g, want 0", i, r.Loc.Z)
		}
	}
}
