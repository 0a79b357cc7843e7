package fastener

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/obj3/thread"

	"github.com/partforge/mech"
)

// Nut is a standard threaded nut sized from its family table.
type Nut struct {
	// Size is the nominal thread designation, e.g. "M6".
	Size string
	// Family is the standard the dimensions come from. Only HexNut
	// is currently tabulated.
	Family Family

	threadD float64
	pitch   float64
	widthAF float64
	height  float64
}

// NewNut looks up size in the family table.
func NewNut(size string, family Family) (Nut, error) {
	if family != HexNut {
		return Nut{}, fmt.Errorf("%w: family %q is not a nut standard", mech.ErrInvalidParameter, family)
	}
	dims, err := Lookup(family, size)
	if err != nil {
		return Nut{}, err
	}
	d, err := nominalDiameter(size)
	if err != nil {
		return Nut{}, err
	}
	return Nut{
		Size:    size,
		Family:  family,
		threadD: d,
		pitch:   dims["pitch"],
		widthAF: dims["width_af"],
		height:  dims["thickness"],
	}, nil
}

// ThreadDiameter returns the nominal thread major diameter.
func (n Nut) ThreadDiameter() float64 { return n.threadD }

// Pitch returns the coarse thread pitch.
func (n Nut) Pitch() float64 { return n.pitch }

// WidthAcrossFlats returns the wrench size.
func (n Nut) WidthAcrossFlats() float64 { return n.widthAF }

// Height returns the nut thickness.
func (n Nut) Height() float64 { return n.height }

// Solid returns the nut body with the internal thread cut, centered on
// the origin with the thread axis along z.
func (n Nut) Solid() (sdf.SDF3, error) {
	hexRadius := n.widthAF / (2 * math.Cos(30*math.Pi/180))
	body, err := thread.HexHead(hexRadius, n.height, "tb")
	if err != nil {
		return nil, fmt.Errorf("%w: nut %s body: %v", mech.ErrDegenerateGeometry, n.Size, err)
	}
	bore, err := thread.Screw(n.height, thread.ISO{D: n.threadD, P: n.pitch})
	if err != nil {
		return nil, fmt.Errorf("%w: nut %s thread: %v", mech.ErrDegenerateGeometry, n.Size, err)
	}
	return sdf.Difference3D(body, bore), nil
}
