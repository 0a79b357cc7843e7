// Package bearing generates single row deep groove ball bearings from
// standard designations.
package bearing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
)

// raceGap is the radial clearance between each race and the ball
// pitch circle, as a fraction of ball diameter.
const raceGap = 0.2

// Bearing is a single row deep groove ball bearing. Dimensions are in
// millimeters.
type Bearing struct {
	// Designation is the standard bearing number, e.g. "608", or a
	// "bore-od-width" size string for non-tabulated bearings.
	Designation string

	// Capped adds shield caps flush with both faces, covering the
	// gap between the races (the "ZZ" variant).
	Capped bool

	bore   float64
	outerD float64
	width  float64
}

// New looks up a standard bearing designation.
func New(designation string) (Bearing, error) {
	dims, ok := sizes[designation]
	if !ok {
		return Bearing{}, fmt.Errorf("%w: unknown bearing designation %q", mech.ErrInvalidParameter, designation)
	}
	return Bearing{Designation: designation, bore: dims[0], outerD: dims[1], width: dims[2]}, nil
}

// NewFromSize builds a bearing from a "bore-od-width" size string,
// e.g. "8-22-7".
func NewFromSize(size string) (Bearing, error) {
	parts := strings.Split(size, "-")
	if len(parts) != 3 {
		return Bearing{}, fmt.Errorf("%w: bearing size %q is not bore-od-width", mech.ErrInvalidParameter, size)
	}
	var dims [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 {
			return Bearing{}, fmt.Errorf("%w: bearing size %q", mech.ErrInvalidParameter, size)
		}
		dims[i] = v
	}
	b := Bearing{Designation: size, bore: dims[0], outerD: dims[1], width: dims[2]}
	if b.outerD <= b.bore {
		return Bearing{}, fmt.Errorf("%w: outer diameter %g not larger than bore %g", mech.ErrInvalidParameter, b.outerD, b.bore)
	}
	return b, nil
}

// Designations returns the tabulated bearing numbers.
func Designations() []string {
	out := make([]string, 0, len(sizes))
	for d := range sizes {
		out = append(out, d)
	}
	sortDesignations(out)
	return out
}

// Bore returns the inner diameter.
func (b Bearing) Bore() float64 { return b.bore }

// OuterDiameter returns the outside diameter.
func (b Bearing) OuterDiameter() float64 { return b.outerD }

// Width returns the axial width.
func (b Bearing) Width() float64 { return b.width }

// BallDiameter returns the rolling element diameter.
func (b Bearing) BallDiameter() float64 {
	return 0.6 * (b.outerD - b.bore) / 2
}

// PitchRadius returns the radius of the ball center circle.
func (b Bearing) PitchRadius() float64 {
	return (b.outerD + b.bore) / 4
}

// BallCount returns the number of rolling elements.
func (b Bearing) BallCount() int {
	n := int(2 * math.Pi * b.PitchRadius() / (1.5 * b.BallDiameter()))
	if n < 3 {
		n = 3
	}
	return n
}

// Solid returns the assembled bearing centered on the origin with its
// axis along z: both races with the ball groove cut, plus the ball
// ring.
func (b Bearing) Solid() (sdf.SDF3, error) {
	inner, err := b.InnerRace()
	if err != nil {
		return nil, err
	}
	outer, err := b.OuterRace()
	if err != nil {
		return nil, err
	}
	balls := b.ballRing()
	s := sdf.Union3D(inner, outer, balls)
	if b.Capped {
		s = sdf.Union3D(s, b.caps())
	}
	return s, nil
}

// caps returns the two shield discs spanning the race gap, recessed
// flush with the bearing faces.
func (b Bearing) caps() sdf.SDF3 {
	innerR := b.PitchRadius() - raceGap*b.BallDiameter()
	outerR := b.PitchRadius() + raceGap*b.BallDiameter()
	t := 0.1 * b.width
	disc := must3.Cylinder(t, outerR, 0)
	hole := must3.Cylinder(2*t, innerR, 0)
	shield := sdf.Difference3D(disc, hole)
	top := sdf.Transform3D(shield, sdf.Translate3D(r3.Vec{Z: (b.width - t) / 2}))
	bottom := sdf.Transform3D(shield, sdf.Translate3D(r3.Vec{Z: -(b.width - t) / 2}))
	return sdf.Union3D(top, bottom)
}

// InnerRace returns the inner ring with the groove cut.
func (b Bearing) InnerRace() (sdf.SDF3, error) {
	outerR := b.PitchRadius() - raceGap*b.BallDiameter()
	return b.race(b.bore/2, outerR)
}

// OuterRace returns the outer ring with the groove cut.
func (b Bearing) OuterRace() (sdf.SDF3, error) {
	innerR := b.PitchRadius() + raceGap*b.BallDiameter()
	return b.race(innerR, b.outerD/2)
}

// race builds a ring between two radii and subtracts the ball groove
// torus.
func (b Bearing) race(innerR, outerR float64) (sdf.SDF3, error) {
	if outerR <= innerR {
		return nil, fmt.Errorf("%w: bearing %s race wall collapsed (%g >= %g)",
			mech.ErrDegenerateGeometry, b.Designation, innerR, outerR)
	}
	round := 0.05 * b.width
	ring := must3.Cylinder(b.width, outerR, round)
	hole := must3.Cylinder(2*b.width, innerR, 0)
	return sdf.Difference3D(sdf.Difference3D(ring, hole), b.groove()), nil
}

// groove is the torus swept by the balls, slightly oversized for
// clearance.
func (b Bearing) groove() sdf.SDF3 {
	var section sdf.SDF2 = must2.Circle(1.05 * b.BallDiameter() / 2)
	section = sdf.Transform2D(section, sdf.Translate2D(r2.Vec{X: b.PitchRadius()}))
	return sdf.Revolve3D(section, 2*math.Pi)
}

// ballRing returns the full complement of balls on the pitch circle.
func (b Bearing) ballRing() sdf.SDF3 {
	var ball sdf.SDF3 = must3.Sphere(b.BallDiameter() / 2)
	ball = sdf.Transform3D(ball, sdf.Translate3D(r3.Vec{X: b.PitchRadius()}))
	return sdf.RotateCopy3D(ball, b.BallCount())
}

// sizes maps designation to {bore, outer diameter, width}.
var sizes = map[string][3]float64{
	"608":  {8, 22, 7},
	"625":  {5, 16, 5},
	"6000": {10, 26, 8},
	"6001": {12, 28, 8},
	"6002": {15, 32, 9},
	"6003": {17, 35, 10},
	"6004": {20, 42, 12},
	"6200": {10, 30, 9},
	"6201": {12, 32, 10},
	"6202": {15, 35, 11},
}

// sortDesignations orders numeric designations by value, shorter
// first.
func sortDesignations(ds []string) {
	sort.Slice(ds, func(i, j int) bool {
		if len(ds[i]) != len(ds[j]) {
			return len(ds[i]) < len(ds[j])
		}
		return ds[i] < ds[j]
	})
}
