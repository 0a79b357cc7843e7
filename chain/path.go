package chain

import (
	"fmt"
	"math"

	"github.com/partforge/mech"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Path discretizer.
//
// The closed path alternates wrap arcs and free spans in sprocket list
// order. Walking it at a fixed step of one chain pitch yields the roller
// stations: a roller on a wrap arc lies exactly on that sprocket's pitch
// circle, a roller on a free span lies exactly on the tangent segment.
// The walk stops after floor(chainLinks) rollers; the leftover fraction
// is the closure error surfaced by Links and Gap.

// placeRollers walks the path, emitting one roller per chain pitch, and
// derives each sprocket's initial rotation from its first roller contact.
func (c *Chain) placeRollers() error {
	n := len(c.spktLocs)

	// where the chain enters and exits each pitch circle
	entryLoc := make([]r2.Vec, n)
	exitLoc := make([]r2.Vec, n)
	for s := 0; s < n; s++ {
		up := r2.Vec{Y: c.pitchRadii[s]}
		entryLoc[s] = r2.Add(c.spktLocs[s], rotate2d(up, c.chainAngles[s][entry]))
		exitLoc[s] = r2.Add(c.spktLocs[s], rotate2d(up, c.chainAngles[s][exit]))
	}

	c.rollers = make([]Roller, 0, c.numRollers)
	firstContact := make([]float64, n)
	haveContact := make([]bool, n)

	locs := make([]r2.Vec, c.numRollers)
	for i := 0; i < c.numRollers; i++ {
		dist := math.Mod(float64(i)*c.ChainPitch, c.chainLength)
		seg := findSegment(dist, c.segmentSums)
		if seg < 0 {
			return fmt.Errorf("%w: roller %d at distance %g falls outside the chain path",
				mech.ErrUnsupportedConfiguration, i, dist)
		}
		spkt := seg / 2
		along := 1 - (c.segmentSums[seg]-dist)/c.segmentLens[seg]

		if seg%2 == 0 {
			// on a sprocket wrap arc
			var angle float64
			if c.PositiveChainWrap[spkt] {
				angle = c.chainAngles[spkt][entry] + c.arcAngles[spkt]*along
			} else {
				angle = c.chainAngles[spkt][entry] - c.arcAngles[spkt]*along
			}
			locs[i] = r2.Add(c.spktLocs[spkt], rotate2d(r2.Vec{Y: c.pitchRadii[spkt]}, angle))
			if !haveContact[spkt] {
				firstContact[spkt] = angle
				haveContact[spkt] = true
			}
		} else {
			// on a free span between two sprockets
			span := r2.Sub(entryLoc[(spkt+1)%n], exitLoc[spkt])
			locs[i] = r2.Add(exitLoc[spkt], r2.Scale(along, span))
		}
	}

	for i := 0; i < c.numRollers; i++ {
		next := locs[(i+1)%c.numRollers]
		d := r2.Sub(next, locs[i])
		c.rollers = append(c.rollers, Roller{
			Loc:   r3.Vec{X: locs[i].X, Y: locs[i].Y},
			Angle: mech.RtoD(math.Atan2(d.Y, d.X)),
		})
	}

	// Rotate each sprocket so a tooth gap, not a tooth, faces its first
	// roller contact point.
	c.initialRot = make([]float64, n)
	for s := 0; s < n; s++ {
		contact := c.chainAngles[s][entry]
		if haveContact[s] {
			contact = firstContact[s]
		}
		c.initialRot[s] = contact + 180/float64(c.SpktTeeth[s])
	}
	return nil
}

// findSegment returns the index of the first segment whose running total
// exceeds dist, or -1 when dist lies beyond the path.
func findSegment(dist float64, sums []float64) int {
	for i, sum := range sums {
		if dist < sum {
			return i
		}
	}
	return -1
}
