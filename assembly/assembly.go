// Package assembly composes placed kernel solids into a named scene
// graph. An Assembly owns no geometry of its own: every part is an
// sdf.SDF3 already expressed in assembly coordinates, and rigid
// reorientation wraps every part in the same kernel transform so all
// relative positions are preserved.
package assembly

import (
	"fmt"

	"github.com/partforge/mech"
	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Part is a named, placed solid.
type Part struct {
	Name  string
	Solid sdf.SDF3
}

// Assembly is an ordered collection of placed parts. The zero value is
// an empty assembly ready for use. Transform methods return new
// assemblies; an Assembly is never mutated after it escapes to a caller.
type Assembly struct {
	parts []Part
}

// New returns an empty assembly.
func New() *Assembly {
	return &Assembly{}
}

// Add appends a named solid to the assembly.
func (a *Assembly) Add(name string, s sdf.SDF3) {
	a.parts = append(a.parts, Part{Name: name, Solid: s})
}

// Merge appends every part of sub under the given name prefix.
func (a *Assembly) Merge(prefix string, sub *Assembly) {
	for _, p := range sub.parts {
		a.parts = append(a.parts, Part{Name: prefix + "/" + p.Name, Solid: p.Solid})
	}
}

// Parts returns the placed parts in insertion order.
func (a *Assembly) Parts() []Part {
	out := make([]Part, len(a.parts))
	copy(out, a.parts)
	return out
}

// Len returns the number of parts.
func (a *Assembly) Len() int { return len(a.parts) }

// Solid returns the union of every part for rendering or export.
func (a *Assembly) Solid() (sdf.SDF3, error) {
	if len(a.parts) == 0 {
		return nil, fmt.Errorf("%w: empty assembly", mech.ErrInvalidParameter)
	}
	solids := make([]sdf.SDF3, len(a.parts))
	for i, p := range a.parts {
		solids[i] = p.Solid
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	return sdf.Union3D(solids...), nil
}

// Translate returns a new assembly with every part moved by v.
func (a *Assembly) Translate(v r3.Vec) *Assembly {
	return a.transform(func(s sdf.SDF3) sdf.SDF3 {
		return sdf.Transform3D(s, sdf.Translate3D(v))
	})
}

// RotateX returns a new assembly rotated about the x axis by angle degrees.
func (a *Assembly) RotateX(angle float64) *Assembly {
	return a.transform(func(s sdf.SDF3) sdf.SDF3 {
		return sdf.Transform3D(s, sdf.RotateX(mech.DtoR(angle)))
	})
}

// RotateY returns a new assembly rotated about the y axis by angle degrees.
func (a *Assembly) RotateY(angle float64) *Assembly {
	return a.transform(func(s sdf.SDF3) sdf.SDF3 {
		return sdf.Transform3D(s, sdf.RotateY(mech.DtoR(angle)))
	})
}

// RotateZ returns a new assembly rotated about the z axis by angle degrees.
func (a *Assembly) RotateZ(angle float64) *Assembly {
	return a.transform(func(s sdf.SDF3) sdf.SDF3 {
		return sdf.Transform3D(s, sdf.RotateZ(mech.DtoR(angle)))
	})
}

func (a *Assembly) transform(f func(sdf.SDF3) sdf.SDF3) *Assembly {
	out := &Assembly{parts: make([]Part, len(a.parts))}
	for i, p := range a.parts {
		out.parts[i] = Part{Name: p.Name, Solid: f(p.Solid)}
	}
	return out
}
