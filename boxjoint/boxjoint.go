// Package boxjoint generates finger-jointed box panels: six interlocking
// plates cut from sheet stock, with alternating tab/notch fingers along
// every mating edge.
package boxjoint

import (
	"fmt"
	"math"
	"strings"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
	"github.com/partforge/mech/assembly"
)

// Face identifies one of the six box panels.
type Face int

const (
	Bottom Face = iota
	Top
	Front
	Back
	Left
	Right
)

func (f Face) String() string {
	switch f {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Front:
		return "front"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Faces lists all six panels in assembly order.
var Faces = []Face{Bottom, Top, Front, Back, Left, Right}

// Parms defines a finger-jointed box. All dimensions are outer
// dimensions.
type Parms struct {
	// Length, Width, Height are the outer box dimensions along x, y
	// and z.
	Length, Width, Height float64
	// Thickness is the sheet stock thickness.
	Thickness float64
	// FingerWidth is the target finger width. The actual width is
	// adjusted per edge so each edge carries an odd finger count.
	FingerWidth float64
}

// Box precomputes the per-axis finger segmentation for a box.
type Box struct {
	Parms

	// fingers and width per axis, shared by every edge along that
	// axis so mating edges always match
	nx, ny, nz int
	fx, fy, fz float64
}

// New validates the parameters and computes the finger layout.
func New(k Parms) (*Box, error) {
	switch {
	case k.Length <= 0, k.Width <= 0, k.Height <= 0:
		return nil, fmt.Errorf("%w: box dimensions %gx%gx%g must be positive",
			mech.ErrInvalidParameter, k.Length, k.Width, k.Height)
	case k.Thickness <= 0:
		return nil, fmt.Errorf("%w: thickness %g must be positive", mech.ErrInvalidParameter, k.Thickness)
	case k.FingerWidth <= 0:
		return nil, fmt.Errorf("%w: finger width %g must be positive", mech.ErrInvalidParameter, k.FingerWidth)
	}
	min := 2 * k.Thickness
	if k.Length <= min || k.Width <= min || k.Height <= min {
		return nil, fmt.Errorf("%w: %g stock leaves no interior in a %gx%gx%g box",
			mech.ErrDegenerateGeometry, k.Thickness, k.Length, k.Width, k.Height)
	}
	b := &Box{Parms: k}
	b.nx, b.fx = Fingers(k.Length, k.FingerWidth)
	b.ny, b.fy = Fingers(k.Width, k.FingerWidth)
	b.nz, b.fz = Fingers(k.Height, k.FingerWidth)
	return b, nil
}

// Fingers segments an edge into an odd number of fingers near the
// target width, never fewer than three, and returns the count and the
// actual finger width.
func Fingers(edge, target float64) (n int, width float64) {
	n = int(math.Floor(edge / target))
	if n%2 == 0 {
		n--
	}
	if n < 3 {
		n = 3
	}
	return n, edge / float64(n)
}

// male edges carry tabs at both ends, female edges carry the
// complement, so any male/female pair interlocks.
func pattern(n int, male bool) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if (i%2 == 0) == male {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// facePlan describes one panel: its 2D size and, per edge, the finger
// axis and polarity. Horizontal edges run along local x, vertical
// edges along local y.
type facePlan struct {
	a, b         float64 // panel width, height
	nh, nv       int     // finger count, horizontal / vertical edges
	fh, fv       float64 // finger width, horizontal / vertical edges
	maleH, maleV bool
}

// plan returns the layout for a face. Bottom and top are male on every
// edge, left and right female on every edge, front and back mixed, so
// each of the twelve box edges pairs one male and one female panel.
func (b *Box) plan(f Face) facePlan {
	switch f {
	case Bottom, Top:
		return facePlan{a: b.Length, b: b.Width, nh: b.nx, fh: b.fx, nv: b.ny, fv: b.fy, maleH: true, maleV: true}
	case Front, Back:
		return facePlan{a: b.Length, b: b.Height, nh: b.nx, fh: b.fx, nv: b.nz, fv: b.fz, maleH: false, maleV: true}
	default:
		return facePlan{a: b.Width, b: b.Height, nh: b.ny, fh: b.fy, nv: b.nz, fv: b.fz, maleH: false, maleV: false}
	}
}

// Profile returns the 2D cutting profile of a panel, centered on the
// origin. The profile is the panel core plus finger tabs reaching into
// the border strip claimed by the mating panels.
func (b *Box) Profile(f Face) sdf.SDF2 {
	p := b.plan(f)
	t := b.Thickness
	parts := []sdf.SDF2{must2.Box(r2.Vec{X: p.a - 2*t, Y: p.b - 2*t}, 0)}

	// horizontal edges
	tab := must2.Box(r2.Vec{X: p.fh, Y: t}, 0)
	for _, yc := range []float64{-(p.b - t) / 2, (p.b - t) / 2} {
		p0 := r2.Vec{X: -p.a/2 + p.fh/2, Y: yc}
		p1 := r2.Vec{X: -p.a/2 + p.fh/2 + float64(p.nh)*p.fh, Y: yc}
		parts = append(parts, sdf.LineOf2D(tab, p0, p1, pattern(p.nh, p.maleH)))
	}
	// vertical edges
	tab = must2.Box(r2.Vec{X: t, Y: p.fv}, 0)
	for _, xc := range []float64{-(p.a - t) / 2, (p.a - t) / 2} {
		p0 := r2.Vec{X: xc, Y: -p.b/2 + p.fv/2}
		p1 := r2.Vec{X: xc, Y: -p.b/2 + p.fv/2 + float64(p.nv)*p.fv}
		parts = append(parts, sdf.LineOf2D(tab, p0, p1, pattern(p.nv, p.maleV)))
	}
	return sdf.Union2D(parts...)
}

// Panel returns the extruded panel solid, centered on the origin in
// its own plane.
func (b *Box) Panel(f Face) sdf.SDF3 {
	return sdf.Extrude3D(b.Profile(f), b.Thickness)
}

// Assemble returns all six panels oriented into the closed box,
// centered on the origin.
func (b *Box) Assemble() *assembly.Assembly {
	t := b.Thickness
	a := assembly.New()
	place := func(f Face, x, y, z, at r3.Vec) {
		a.Add(f.String(), mech.Orient(b.Panel(f), x, y, z, at))
	}
	ex := r3.Vec{X: 1}
	ey := r3.Vec{Y: 1}
	ez := r3.Vec{Z: 1}
	neg := func(v r3.Vec) r3.Vec { return r3.Scale(-1, v) }

	place(Bottom, ex, ey, ez, r3.Vec{Z: -(b.Height - t) / 2})
	place(Top, ex, neg(ey), neg(ez), r3.Vec{Z: (b.Height - t) / 2})
	place(Front, ex, ez, neg(ey), r3.Vec{Y: -(b.Width - t) / 2})
	place(Back, neg(ex), ez, ey, r3.Vec{Y: (b.Width - t) / 2})
	place(Left, ey, ez, ex, r3.Vec{X: -(b.Length - t) / 2})
	place(Right, neg(ey), ez, neg(ex), r3.Vec{X: (b.Length - t) / 2})
	return a
}
