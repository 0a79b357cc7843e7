package chain

import (
	"fmt"

	"github.com/partforge/mech"
	"github.com/partforge/mech/assembly"
	"github.com/partforge/mech/sprocket"
	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// Assembly composer.
//
// Chain links and sprockets are built on the XY plane and mapped into
// world coordinates through the layout plane in one uniform transform,
// so the whole transmission can afterwards be reoriented rigidly with
// the assembly transforms without disturbing any relative position.

// LinkAssembly places one link solid per roller station, alternating
// inner and outer link geometry along the chain.
func (c *Chain) LinkAssembly() (*assembly.Assembly, error) {
	a := assembly.New()
	for i, roller := range c.rollers {
		link, err := c.link(i)
		if err != nil {
			return nil, err
		}
		placed := sdf.Transform3D(link,
			sdf.Translate3D(roller.Loc).Mul(sdf.RotateZ(mech.DtoR(roller.Angle))))
		a.Add(fmt.Sprintf("link%d", i), c.toWorld(placed))
	}
	return a, nil
}

// Transmission builds the sprocket-and-chain assembly: every sprocket
// placed at its center with its initial rotation, plus one link per
// roller. The sprocket list must match the chain's sprocket count; tooth
// counts are taken from the sprockets themselves, so a deliberate
// mismatch with the layout's tooth counts is the caller's choice.
func (c *Chain) Transmission(spkts []sprocket.Sprocket) (*assembly.Assembly, error) {
	if len(spkts) != len(c.SpktTeeth) {
		return nil, fmt.Errorf("%w: %d sprockets for a %d sprocket chain",
			mech.ErrInvalidParameter, len(spkts), len(c.SpktTeeth))
	}
	a := assembly.New()
	for i, spkt := range spkts {
		placed := sdf.Transform3D(spkt.Solid(),
			sdf.Translate3D(r3.Vec{X: c.spktLocs[i].X, Y: c.spktLocs[i].Y}).
				Mul(sdf.RotateZ(mech.DtoR(c.initialRot[i]))))
		a.Add(fmt.Sprintf("spkt%d", i), c.toWorld(placed))
	}
	links, err := c.LinkAssembly()
	if err != nil {
		return nil, err
	}
	a.Merge("chain", links)
	return a, nil
}

// toWorld maps a solid built in layout plane coordinates into world
// coordinates.
func (c *Chain) toWorld(s sdf.SDF3) sdf.SDF3 {
	p := c.plane
	return mech.Orient(s, p.xDir, p.yDir, p.zDir, p.origin)
}
