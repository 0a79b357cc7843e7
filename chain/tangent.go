package chain

import (
	"fmt"
	"math"

	"github.com/partforge/mech"
	"gonum.org/v1/gonum/spatial/r2"
)

// Tangent/wrap solver.
//
// For each adjacent sprocket pair the chain leaves one pitch circle and
// meets the next along a straight segment tangent to both. Which of the
// four tangent configurations applies is decided by the wrap direction
// pair: equal wrap directions take an outer tangent, opposite directions
// a crossed (inner) tangent. The exit angle at a sprocket follows from
// the angle between the centers plus the tangent tilt asin((ra∓rb)/sep);
// the entry angle of the next sprocket is the exit angle of the previous
// one, flipped by 180 degrees when the wrap direction changes.

// separations returns the center-to-center distance from each sprocket
// to the next (wrapping around to the first).
func (c *Chain) separations() []float64 {
	n := len(c.spktLocs)
	sep := make([]float64, n)
	for s := 0; s < n; s++ {
		d := r2.Sub(c.spktLocs[(s+1)%n], c.spktLocs[s])
		sep[s] = math.Hypot(d.X, d.Y)
	}
	return sep
}

// solveWrap computes the entry and exit contact angles for every
// sprocket, in degrees from the layout plane x axis.
func (c *Chain) solveWrap() error {
	n := len(c.spktLocs)
	sep := c.separations()

	// angle of the next sprocket as seen from sprocket s, plus 90
	base := make([]float64, n)
	for s := 0; s < n; s++ {
		d := r2.Sub(c.spktLocs[s], c.spktLocs[(s+1)%n])
		base[s] = 90 + mech.RtoD(math.Atan2(d.Y, d.X))
	}

	exitA := make([]float64, n)
	for s := 0; s < n; s++ {
		next := (s + 1) % n
		ra, rb := c.pitchRadii[s], c.pitchRadii[next]
		wa, wb := c.PositiveChainWrap[s], c.PositiveChainWrap[next]

		var radiusTerm float64
		if wa == wb {
			radiusTerm = ra - rb
		} else {
			radiusTerm = ra + rb
		}
		sine := radiusTerm / sep[s]
		if math.Abs(sine) > 1 {
			return fmt.Errorf("%w: no tangent between sprockets %d and %d (separation %g, pitch radii %g, %g)",
				mech.ErrDegenerateGeometry, s, next, sep[s], ra, rb)
		}
		tilt := mech.RtoD(math.Asin(sine))
		if wa {
			exitA[s] = normDeg(base[s] - 90 + tilt)
		} else {
			exitA[s] = normDeg(base[s] + 90 - tilt)
		}
	}

	c.chainAngles = make([][2]float64, n)
	for s := 0; s < n; s++ {
		prev := (s - 1 + n) % n
		entryA := exitA[prev]
		if c.PositiveChainWrap[s] != c.PositiveChainWrap[prev] {
			entryA = normDeg(entryA + 180)
		}
		c.chainAngles[s] = [2]float64{entryA, exitA[s]}
	}
	return nil
}

// normDeg normalizes an angle in degrees to [0, 360).
func normDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// measurePath computes the interleaved [arc, span, ...] segment lengths,
// the total path length and the chain length in links.
func (c *Chain) measurePath() {
	n := len(c.spktLocs)
	sep := c.separations()

	spanLens := make([]float64, n)
	for s := 0; s < n; s++ {
		next := (s + 1) % n
		var radiusTerm float64
		if c.PositiveChainWrap[s] == c.PositiveChainWrap[next] {
			radiusTerm = c.pitchRadii[s] - c.pitchRadii[next]
		} else {
			radiusTerm = c.pitchRadii[s] + c.pitchRadii[next]
		}
		// the asin domain check in solveWrap guarantees a non-negative
		// radicand here
		spanLens[s] = math.Sqrt(sep[s]*sep[s] - radiusTerm*radiusTerm)
	}

	c.arcAngles = make([]float64, n)
	arcLens := make([]float64, n)
	for s := 0; s < n; s++ {
		if c.PositiveChainWrap[s] {
			c.arcAngles[s] = normDeg(c.chainAngles[s][exit] - c.chainAngles[s][entry])
		} else {
			c.arcAngles[s] = normDeg(c.chainAngles[s][entry] - c.chainAngles[s][exit])
		}
		arcLens[s] = c.arcAngles[s] * 2 * math.Pi * c.pitchRadii[s] / 360
	}

	c.segmentLens = interleave(arcLens, spanLens)
	c.segmentSums = mixSums(arcLens, spanLens)
	c.chainLength = c.segmentSums[len(c.segmentSums)-1]
	c.chainLinks = c.chainLength / c.ChainPitch
	c.numRollers = int(math.Floor(c.chainLinks))
}

// interleave merges two equal-length lists as [a0, b0, a1, b1, ...].
func interleave(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	for i := range a {
		out = append(out, a[i], b[i])
	}
	return out
}

// mixSums returns the running totals of the interleaved lists.
func mixSums(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	total := 0.0
	for i := range a {
		total += a[i]
		out = append(out, total)
		total += b[i]
		out = append(out, total)
	}
	return out
}
