package chain

import (
	"fmt"
	"sync"

	"github.com/partforge/mech"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	form3 "github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// LinkParms defines a single link pair. Inner links carry the rollers;
// outer links carry the pins that pass through them. Along a chain the
// two kinds alternate.
type LinkParms struct {
	ChainPitch     float64
	PlateThickness float64
	Inner          bool
	RollerLength   float64
	RollerDiameter float64
}

// linkCache memoizes link solids by their exact parameter tuple.
// Geometrically identical requests are common (every second link of a
// chain is the same solid) and link construction is the most expensive
// part of assembling a transmission. A hit returns the identical-by-
// construction solid, so caching cannot change results; sync.Map keeps
// it safe under concurrent chain builds.
var linkCache sync.Map // LinkParms -> sdf.SDF3

// Link returns a single inner or outer link pair spanning from the
// origin to (ChainPitch, 0, 0).
func Link(k LinkParms) (sdf.SDF3, error) {
	if k.ChainPitch <= 0 || k.PlateThickness <= 0 || k.RollerLength <= 0 ||
		k.RollerDiameter <= 0 || k.RollerDiameter >= k.ChainPitch {
		return nil, fmt.Errorf("%w: link parameters %+v", mech.ErrInvalidParameter, k)
	}
	if s, ok := linkCache.Load(k); ok {
		return s.(sdf.SDF3), nil
	}
	s := makeLink(k)
	linkCache.Store(k, s)
	return s, nil
}

// makeLink builds the link solid. Proportions follow a standard bicycle
// chain scaled by the pitch.
func makeLink(k LinkParms) sdf.SDF3 {
	scale := k.ChainPitch / (0.5 * mech.Inch)
	plateR := scale * 8.5 * mech.MM / 2
	neckR := scale * 4.5 * mech.MM / 2

	// Dog-boned plate: two eyes blended with a polynomial min so the
	// waist necks down between the pins.
	eye := must2.Circle(plateR)
	eyes := sdf.Union2D(
		eye,
		sdf.Transform2D(eye, sdf.Translate2D(r2.Vec{X: k.ChainPitch})),
	)
	eyes.SetMin(sdf.MinPoly(2, plateR-neckR))
	plate := sdf.Extrude3D(eyes, k.PlateThickness)

	roller := form3.Cylinder(k.RollerLength, k.RollerDiameter/2, 0)

	var parts []sdf.SDF3
	if k.Inner {
		zOfs := (k.RollerLength + k.PlateThickness) / 2
		parts = []sdf.SDF3{
			sdf.Transform3D(plate, sdf.Translate3D(r3.Vec{Z: zOfs})),
			sdf.Transform3D(plate, sdf.Translate3D(r3.Vec{Z: -zOfs})),
			roller,
			sdf.Transform3D(roller, sdf.Translate3D(r3.Vec{X: k.ChainPitch})),
		}
	} else {
		zOfs := (k.RollerLength + 3*k.PlateThickness) / 2
		pin := form3.Cylinder(k.RollerLength+4*k.PlateThickness, plateR/4, 0)
		parts = []sdf.SDF3{
			sdf.Transform3D(plate, sdf.Translate3D(r3.Vec{Z: zOfs})),
			sdf.Transform3D(plate, sdf.Translate3D(r3.Vec{Z: -zOfs})),
			pin,
			sdf.Transform3D(pin, sdf.Translate3D(r3.Vec{X: k.ChainPitch})),
		}
	}
	return sdf.Union3D(parts...)
}

// link returns the cached link solid for station i of this chain.
func (c *Chain) link(i int) (sdf.SDF3, error) {
	return Link(LinkParms{
		ChainPitch:     c.ChainPitch,
		PlateThickness: c.LinkPlateThickness,
		Inner:          i%2 == 0,
		RollerLength:   c.RollerLength,
		RollerDiameter: c.RollerDiameter,
	})
}
