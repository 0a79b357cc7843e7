package fastener

import (
	"fmt"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"

	"github.com/partforge/mech"
)

// Washer is a standard plain washer.
type Washer struct {
	// Size is the nominal thread designation of the mating screw.
	Size string
	// Family is the washer standard. Only PlainWasher is currently
	// tabulated.
	Family Family

	innerD    float64
	outerD    float64
	thickness float64
}

// NewWasher looks up size in the family table.
func NewWasher(size string, family Family) (Washer, error) {
	if family != PlainWasher {
		return Washer{}, fmt.Errorf("%w: family %q is not a washer standard", mech.ErrInvalidParameter, family)
	}
	dims, err := Lookup(family, size)
	if err != nil {
		return Washer{}, err
	}
	return Washer{
		Size:      size,
		Family:    family,
		innerD:    dims["inner_diameter"],
		outerD:    dims["outer_diameter"],
		thickness: dims["thickness"],
	}, nil
}

// InnerDiameter returns the clearance hole diameter.
func (w Washer) InnerDiameter() float64 { return w.innerD }

// OuterDiameter returns the outside diameter.
func (w Washer) OuterDiameter() float64 { return w.outerD }

// Thickness returns the washer thickness.
func (w Washer) Thickness() float64 { return w.thickness }

// Solid returns the washer centered on the origin with its axis along
// z.
func (w Washer) Solid() (sdf.SDF3, error) {
	ring := must3.Cylinder(w.thickness, w.outerD/2, 0.1*w.thickness)
	hole := must3.Cylinder(2*w.thickness, w.innerD/2, 0)
	return sdf.Difference3D(ring, hole), nil
}
