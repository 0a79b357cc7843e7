// Package chain lays out a roller chain wrapped around a set of
// sprockets and assembles the resulting transmission.
//
// Given tooth counts, center locations and wrap directions, the layout
// engine computes the tangent spans between adjacent pitch circles, the
// contact arcs on each sprocket, the location of every chain roller
// along the closed path and the rotation each sprocket needs so its
// teeth fall between the rollers.
//
// The chain is laid out perfectly tight. As it closes back onto the
// first roller it will in general overlap or gap; the real-valued length
// in links is surfaced through Links so the caller can judge the fit and
// reposition the sprockets. It is never auto-corrected.
package chain

import (
	"fmt"
	"math"

	"github.com/partforge/mech"
	"github.com/partforge/mech/sprocket"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// indices into the per-sprocket contact angle pair.
const (
	entry = 0
	exit  = 1
)

// Parms defines a chain. Zero-valued chain dimensions default to a
// standard bicycle chain: 1/2" pitch, 5/16" rollers, 3/32" roller
// length, 1mm link plates.
type Parms struct {
	// SpktTeeth is the number of teeth on each sprocket the chain wraps.
	SpktTeeth []int
	// SpktLocations are the sprocket center locations.
	SpktLocations []r3.Vec
	// PositiveChainWrap selects, per sprocket, whether the chain wraps
	// counter-clockwise (true) or clockwise (false) viewed from the
	// positive side of the layout plane.
	PositiveChainWrap  []bool
	ChainPitch         float64
	RollerDiameter     float64
	RollerLength       float64
	LinkPlateThickness float64
	// SpktNormal is the direction of the sprocket axes. Only consulted
	// for two-sprocket configurations; with three or more sprockets the
	// normal comes from the sprocket locations themselves.
	SpktNormal r3.Vec
}

// Chain is a fully laid out roller chain. It is immutable once built;
// construction performs all validation and layout so every accessor is a
// cheap read of precomputed state.
type Chain struct {
	Parms

	plane      plane
	spktLocs   []r2.Vec // sprocket centers in layout plane coordinates
	pitchRadii []float64

	chainAngles [][2]float64 // per sprocket entry/exit contact angle (degrees)
	arcAngles   []float64    // per sprocket wrap arc sweep (degrees)
	segmentLens []float64    // interleaved [arc, span, arc, span, ...]
	segmentSums []float64    // running totals of segmentLens
	chainLength float64
	chainLinks  float64
	numRollers  int
	rollers     []Roller // layout plane coordinates
	initialRot  []float64
}

// Roller is one chain roller station on the path.
type Roller struct {
	// Loc is the roller center.
	Loc r3.Vec
	// Angle is the in-plane direction, in degrees, from this roller to
	// the next one; the link at this station is oriented along it.
	Angle float64
}

// New validates k, solves the wrap geometry and discretizes the path.
func New(k Parms) (*Chain, error) {
	if k.ChainPitch == 0 {
		k.ChainPitch = 0.5 * mech.Inch
	}
	if k.RollerDiameter == 0 {
		k.RollerDiameter = 5.0 / 16.0 * mech.Inch
	}
	if k.RollerLength == 0 {
		k.RollerLength = 3.0 / 32.0 * mech.Inch
	}
	if k.LinkPlateThickness == 0 {
		k.LinkPlateThickness = 1.0 * mech.MM
	}
	if k.SpktNormal == (r3.Vec{}) {
		k.SpktNormal = r3.Vec{Z: 1}
	}
	if err := validate(k); err != nil {
		return nil, err
	}

	c := &Chain{Parms: k}
	// the caller keeps ownership of its slices; the chain is immutable
	// once built
	c.SpktTeeth = append([]int(nil), k.SpktTeeth...)
	c.SpktLocations = append([]r3.Vec(nil), k.SpktLocations...)
	c.PositiveChainWrap = append([]bool(nil), k.PositiveChainWrap...)
	c.pitchRadii = make([]float64, len(k.SpktTeeth))
	for i, n := range k.SpktTeeth {
		r, err := sprocket.PitchRadius(n, k.ChainPitch)
		if err != nil {
			return nil, fmt.Errorf("sprocket %d: %w", i, err)
		}
		c.pitchRadii[i] = r
	}

	if err := c.buildPlane(); err != nil {
		return nil, err
	}
	if err := c.solveWrap(); err != nil {
		return nil, err
	}
	c.measurePath()
	if err := c.placeRollers(); err != nil {
		return nil, err
	}
	return c, nil
}

func validate(k Parms) error {
	n := len(k.SpktTeeth)
	if n != len(k.SpktLocations) || n != len(k.PositiveChainWrap) {
		return fmt.Errorf("%w: spkt_teeth (%d), spkt_locations (%d) and positive_chain_wrap (%d) lengths differ",
			mech.ErrInvalidParameter, n, len(k.SpktLocations), len(k.PositiveChainWrap))
	}
	if n < 2 {
		return fmt.Errorf("%w: at least two sprockets are required, got %d", mech.ErrInvalidParameter, n)
	}
	if k.ChainPitch <= 0 {
		return fmt.Errorf("%w: chain_pitch %g <= 0", mech.ErrInvalidParameter, k.ChainPitch)
	}
	if k.RollerDiameter <= 0 || k.RollerDiameter >= k.ChainPitch {
		return fmt.Errorf("%w: roller_diameter %g does not fit chain_pitch %g",
			mech.ErrInvalidParameter, k.RollerDiameter, k.ChainPitch)
	}
	if k.RollerLength <= 0 || k.LinkPlateThickness <= 0 {
		return fmt.Errorf("%w: roller_length %g, link_plate_thickness %g",
			mech.ErrInvalidParameter, k.RollerLength, k.LinkPlateThickness)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if k.SpktLocations[i] == k.SpktLocations[j] {
				return fmt.Errorf("%w: sprockets %d and %d are in the same location",
					mech.ErrInvalidParameter, i, j)
			}
		}
	}
	return nil
}

// buildPlane derives the layout plane from the sprocket locations and
// projects the centers into it. With three or more sprockets the plane
// normal comes from the first three centers; all remaining centers must
// lie in that plane.
func (c *Chain) buildPlane() error {
	xDir := r3.Unit(r3.Sub(c.SpktLocations[1], c.SpktLocations[0]))
	normal := c.SpktNormal
	if len(c.SpktLocations) > 2 {
		normal = r3.Cross(xDir, r3.Unit(r3.Sub(c.SpktLocations[2], c.SpktLocations[0])))
		if r3.Norm(normal) < 1e-9 {
			// first three centers are collinear; fall back to the
			// declared sprocket normal
			normal = c.SpktNormal
		}
	}
	c.plane = newPlane(c.SpktLocations[0], xDir, normal)

	c.spktLocs = make([]r2.Vec, len(c.SpktLocations))
	for i, loc := range c.SpktLocations {
		l := c.plane.toLocal(loc)
		if math.Abs(l.Z) > 1e-6 {
			return fmt.Errorf("%w: sprocket %d is out of the layout plane by %g",
				mech.ErrUnsupportedConfiguration, i, l.Z)
		}
		c.spktLocs[i] = r2.Vec{X: l.X, Y: l.Y}
	}
	return nil
}

// PitchRadii returns the pitch radius of each sprocket.
func (c *Chain) PitchRadii() []float64 {
	out := make([]float64, len(c.pitchRadii))
	copy(out, c.pitchRadii)
	return out
}

// Links returns the chain length in links: total path length divided by
// the chain pitch. A tight chain has a near-integer value; the
// fractional part is the closure overlap or gap and is reported, never
// corrected.
func (c *Chain) Links() float64 { return c.chainLinks }

// Gap returns the distance from the chain-link count to the nearest
// whole link, a direct measure of the closure fit.
func (c *Chain) Gap() float64 {
	return math.Abs(c.chainLinks - math.Round(c.chainLinks))
}

// NumRollers returns the number of whole rollers placed on the path.
func (c *Chain) NumRollers() int { return c.numRollers }

// ChainAngles returns the {entry, exit} contact angle pair, in degrees,
// for each sprocket.
func (c *Chain) ChainAngles() [][2]float64 {
	out := make([][2]float64, len(c.chainAngles))
	copy(out, c.chainAngles)
	return out
}

// Rollers returns every roller station in world coordinates.
func (c *Chain) Rollers() []Roller {
	out := make([]Roller, len(c.rollers))
	for i, r := range c.rollers {
		out[i] = Roller{Loc: c.plane.fromLocal(r.Loc), Angle: r.Angle}
	}
	return out
}

// SpktInitialRotation returns, per sprocket, the angle in degrees to
// rotate the sprocket about the layout normal so its tooth gaps align
// with the chain rollers.
func (c *Chain) SpktInitialRotation() []float64 {
	out := make([]float64, len(c.initialRot))
	copy(out, c.initialRot)
	return out
}

// plane is the layout plane: an origin plus a right-handed orthonormal
// basis with zDir along the sprocket axes.
type plane struct {
	origin           r3.Vec
	xDir, yDir, zDir r3.Vec
}

func newPlane(origin, xDir, normal r3.Vec) plane {
	z := r3.Unit(normal)
	x := r3.Unit(xDir)
	return plane{origin: origin, xDir: x, yDir: r3.Cross(z, x), zDir: z}
}

func (p plane) toLocal(v r3.Vec) r3.Vec {
	d := r3.Sub(v, p.origin)
	return r3.Vec{X: r3.Dot(d, p.xDir), Y: r3.Dot(d, p.yDir), Z: r3.Dot(d, p.zDir)}
}

func (p plane) fromLocal(v r3.Vec) r3.Vec {
	out := p.origin
	out = r3.Add(out, r3.Scale(v.X, p.xDir))
	out = r3.Add(out, r3.Scale(v.Y, p.yDir))
	out = r3.Add(out, r3.Scale(v.Z, p.zDir))
	return out
}

// rotate2d rotates v by angle degrees about the origin.
func rotate2d(v r2.Vec, angleDeg float64) r2.Vec {
	sin, cos := math.Sincos(mech.DtoR(angleDeg))
	return r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
