// Package drafting generates 3D dimension annotations: arrow-tipped
// dimension lines with measurement labels, and extension lines that
// stand a dimension off the measured geometry.
package drafting

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
	"github.com/partforge/mech/assembly"
)

// Unit selects the measurement label unit.
type Unit int

const (
	// Millimeter labels read like "254.00mm".
	Millimeter Unit = iota
	// Inch labels read like "10.00in".
	Inch
)

// Draft holds the annotation style shared by a set of dimensions.
type Draft struct {
	// ArrowDiameter is the arrow head base diameter.
	ArrowDiameter float64
	// ArrowLength is the arrow head length along the line.
	ArrowLength float64
	// LineDiameter is the shaft and extension line diameter.
	LineDiameter float64
	// ExtensionGap is the clearance between measured geometry and
	// the start of an extension line.
	ExtensionGap float64
	// Unit selects millimeter or inch labels.
	Unit Unit
	// Decimals is the number of label decimal places.
	Decimals int
}

// NewDraft returns a style with defaults sized for small mechanical
// parts.
func NewDraft() Draft {
	return Draft{
		ArrowDiameter: 1.5,
		ArrowLength:   4,
		LineDiameter:  0.5,
		ExtensionGap:  2,
		Unit:          Millimeter,
		Decimals:      2,
	}
}

// Dimension is one rendered annotation: the label text and the solids
// that draw it.
type Dimension struct {
	// Label is the measurement text, e.g. "25.40mm".
	Label string
	// Solids holds the annotation geometry.
	Solids *assembly.Assembly
}

// DimensionLine draws a double-headed arrow from p0 to p1 and returns
// it with the distance label. Measurements shorter than two arrow
// heads cannot be drawn and return ErrDegenerateGeometry.
func (d Draft) DimensionLine(p0, p1 r3.Vec) (Dimension, error) {
	if err := d.validate(); err != nil {
		return Dimension{}, err
	}
	span := r3.Sub(p1, p0)
	length := r3.Norm(span)
	if length <= 2*d.ArrowLength {
		return Dimension{}, fmt.Errorf("%w: measurement %g too short for two %g arrow heads",
			mech.ErrDegenerateGeometry, length, d.ArrowLength)
	}
	u := r3.Scale(1/length, span)

	a := assembly.New()
	a.Add("arrow0", d.arrow(p0, r3.Scale(-1, u)))
	a.Add("arrow1", d.arrow(p1, u))
	shaft0 := r3.Add(p0, r3.Scale(d.ArrowLength, u))
	shaft1 := r3.Add(p1, r3.Scale(-d.ArrowLength, u))
	a.Add("shaft", d.rod(shaft0, shaft1))
	return Dimension{Label: d.label(length), Solids: a}, nil
}

// ExtensionLine measures p0 to p1 with the dimension line stood off by
// offset along dir, connected back to the measured points by extension
// lines.
func (d Draft) ExtensionLine(p0, p1, dir r3.Vec, offset float64) (Dimension, error) {
	n := r3.Norm(dir)
	if n == 0 || offset == 0 {
		return Dimension{}, fmt.Errorf("%w: extension line needs a nonzero offset direction",
			mech.ErrDegenerateGeometry)
	}
	step := r3.Scale(offset/n, dir)
	dim, err := d.DimensionLine(r3.Add(p0, step), r3.Add(p1, step))
	if err != nil {
		return Dimension{}, err
	}
	// extension lines run from just clear of the measured point to a
	// little past the dimension line
	overrun := r3.Scale(1+d.ExtensionGap/math.Abs(offset), step)
	gap := r3.Scale(d.ExtensionGap/math.Abs(offset), step)
	dim.Solids.Add("extension0", d.rod(r3.Add(p0, gap), r3.Add(p0, overrun)))
	dim.Solids.Add("extension1", d.rod(r3.Add(p1, gap), r3.Add(p1, overrun)))
	return dim, nil
}

// arrow returns an arrow head with its tip at p, pointing along tip.
func (d Draft) arrow(p, tip r3.Vec) sdf.SDF3 {
	u := r3.Unit(tip)
	cone := must3.Cone(d.ArrowLength, d.ArrowDiameter/2, 0, 0)
	x := mech.Perpendicular(u)
	y := r3.Cross(u, x)
	at := r3.Add(p, r3.Scale(-d.ArrowLength/2, u))
	return mech.Orient(cone, x, y, u, at)
}

// rod returns a thin cylinder between two points.
func (d Draft) rod(a, b r3.Vec) sdf.SDF3 {
	span := r3.Sub(b, a)
	length := r3.Norm(span)
	u := r3.Scale(1/length, span)
	cyl := must3.Cylinder(length, d.LineDiameter/2, 0)
	x := mech.Perpendicular(u)
	y := r3.Cross(u, x)
	mid := r3.Add(a, r3.Scale(length/2, u))
	return mech.Orient(cyl, x, y, u, mid)
}

func (d Draft) label(length float64) string {
	switch d.Unit {
	case Inch:
		return fmt.Sprintf("%.*fin", d.Decimals, length/mech.Inch)
	default:
		return fmt.Sprintf("%.*fmm", d.Decimals, length)
	}
}

func (d Draft) validate() error {
	switch {
	case d.ArrowLength <= 0, d.ArrowDiameter <= 0:
		return fmt.Errorf("%w: arrow %gx%g must be positive",
			mech.ErrInvalidParameter, d.ArrowDiameter, d.ArrowLength)
	case d.LineDiameter <= 0:
		return fmt.Errorf("%w: line diameter %g must be positive",
			mech.ErrInvalidParameter, d.LineDiameter)
	case d.ExtensionGap < 0:
		return fmt.Errorf("%w: extension gap %g must not be negative",
			mech.ErrInvalidParameter, d.ExtensionGap)
	}
	return nil
}
