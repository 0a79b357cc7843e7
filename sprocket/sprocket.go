// Package sprocket generates roller-chain sprockets.
//
// A sprocket is defined by its tooth count and the chain it meshes with.
// The derived pitch radius places the center of each chain roller; the
// tooth tips are either flat-and-chamfered or pointed ("spiky") depending
// on how large the rollers are relative to the chain pitch.
package sprocket

import (
	"fmt"
	"math"

	"github.com/partforge/mech"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	form3 "github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
)

// PitchRadius returns the radius of the circle formed by the centers of
// the chain rollers seated on a sprocket with numTeeth teeth.
func PitchRadius(numTeeth int, chainPitch float64) (float64, error) {
	if numTeeth < 3 {
		return 0, fmt.Errorf("%w: num_teeth %d < 3", mech.ErrInvalidParameter, numTeeth)
	}
	if chainPitch <= 0 {
		return 0, fmt.Errorf("%w: chain_pitch %g <= 0", mech.ErrInvalidParameter, chainPitch)
	}
	return chainPitch / (2 * math.Sin(math.Pi/float64(numTeeth))), nil
}

// PitchCircumference returns the circumference of the sprocket at the
// pitch radius.
func PitchCircumference(numTeeth int, chainPitch float64) (float64, error) {
	r, err := PitchRadius(numTeeth, chainPitch)
	if err != nil {
		return 0, err
	}
	return 2 * math.Pi * r, nil
}

// Parms defines a sprocket. The zero value of the chain dimensions is
// replaced by standard bicycle chain dimensions (1/2" pitch, 5/16"
// rollers, 0.084" plate thickness).
type Parms struct {
	NumTeeth           int
	ChainPitch         float64
	RollerDiameter     float64
	Clearance          float64 // gap between roller and tooth seat
	Thickness          float64
	BoltCircleDiameter float64 // 0 for no mounting bolt holes
	NumMountBolts      int
	MountBoltDiameter  float64
	BoreDiameter       float64 // 0 for no central bore
}

// Sprocket is an immutable, validated sprocket specification. Derived
// radii are computed once at construction.
type Sprocket struct {
	Parms
	pitchRadius float64
	outerRadius float64
	flatTeeth   bool
}

// New validates k and returns the sprocket with its derived geometry.
func New(k Parms) (Sprocket, error) {
	if k.ChainPitch == 0 {
		k.ChainPitch = 0.5 * mech.Inch
	}
	if k.RollerDiameter == 0 {
		k.RollerDiameter = 5.0 / 16.0 * mech.Inch
	}
	if k.Thickness == 0 {
		k.Thickness = 0.084 * mech.Inch
	}
	pr, err := PitchRadius(k.NumTeeth, k.ChainPitch)
	if err != nil {
		return Sprocket{}, err
	}
	if k.RollerDiameter <= 0 || k.RollerDiameter >= k.ChainPitch {
		return Sprocket{}, fmt.Errorf("%w: roller_diameter %g does not fit chain_pitch %g",
			mech.ErrInvalidParameter, k.RollerDiameter, k.ChainPitch)
	}
	if k.Clearance < 0 || k.Thickness <= 0 {
		return Sprocket{}, fmt.Errorf("%w: clearance %g, thickness %g",
			mech.ErrInvalidParameter, k.Clearance, k.Thickness)
	}
	s := Sprocket{Parms: k, pitchRadius: pr}
	s.flatTeeth, s.outerRadius = tipProfile(k.NumTeeth, k.ChainPitch, k.RollerDiameter, pr)
	return s, nil
}

// tipProfile selects the tooth-tip shape. The tooth flanks are arcs of
// radius chainPitch-rollerRadius tangent to the adjacent roller seats;
// extended far enough they meet at the spike point. The tip is flat (and
// chamfered) when the flat-top outer circle sits below the spike point,
// i.e. when that circle intersects the flank arcs before they meet.
func tipProfile(numTeeth int, chainPitch, rollerDiameter, pitchRadius float64) (flat bool, outerRadius float64) {
	flatR := pitchRadius + rollerDiameter/4
	halfPitch := chainPitch / 2
	spikeR := math.Sqrt(pitchRadius*pitchRadius-halfPitch*halfPitch) +
		math.Sqrt((chainPitch-rollerDiameter/2)*(chainPitch-rollerDiameter/2)-halfPitch*halfPitch)
	if flatR < spikeR {
		return true, flatR
	}
	return false, spikeR
}

// PitchRadius returns the derived pitch radius.
func (s Sprocket) PitchRadius() float64 { return s.pitchRadius }

// OuterRadius returns the distance from the center to the tooth tips.
func (s Sprocket) OuterRadius() float64 { return s.outerRadius }

// PitchCircumference returns the circumference at the pitch radius.
func (s Sprocket) PitchCircumference() float64 { return 2 * math.Pi * s.pitchRadius }

// FlatTeeth reports whether the tooth tips carry a flat chamfered span.
// Spiky profiles arise when the rollers are large enough that the two
// flank arcs of a tooth meet below the flat-top circle.
func (s Sprocket) FlatTeeth() bool { return s.flatTeeth }

// Profile returns the 2D sprocket outline on the XY plane. Tooth gaps
// (roller seats) sit at odd multiples of the half tooth angle so that
// rotating the sprocket by a chain roller's contact angle plus half a
// tooth angle meshes the teeth with the roller gaps.
func (s Sprocket) Profile() sdf.SDF2 {
	n := s.NumTeeth
	rollerRad := s.RollerDiameter/2 + s.Clearance
	halfTooth := math.Pi / float64(n)

	// One tooth centered on the +x axis, bounded by the two flank discs
	// tangent to the adjacent roller seats and by the outer circle.
	seatC := rotate2(r2.Vec{X: s.pitchRadius}, halfTooth)
	flankDir := rotate2(r2.Vec{Y: -1}, -halfTooth)
	flankC := r2.Add(seatC, r2.Scale(s.ChainPitch, flankDir))
	flankR := s.ChainPitch - rollerRad
	upper := sdf.Transform2D(must2.Circle(flankR), sdf.Translate2D(flankC))
	lower := sdf.Transform2D(must2.Circle(flankR), sdf.Translate2D(r2.Vec{X: flankC.X, Y: -flankC.Y}))
	tooth := sdf.Intersect2D(sdf.Intersect2D(upper, lower), must2.Circle(s.outerRadius))

	teeth := make([]sdf.SDF2, n)
	seats := make([]sdf.SDF2, n)
	seat := must2.Circle(rollerRad)
	for i := 0; i < n; i++ {
		toothAngle := float64(i) * 2 * halfTooth
		teeth[i] = sdf.Transform2D(tooth, sdf.Rotate2D(toothAngle))
		seatLoc := rotate2(r2.Vec{X: s.pitchRadius}, toothAngle+halfTooth)
		seats[i] = sdf.Transform2D(seat, sdf.Translate2D(seatLoc))
	}

	hub := must2.Circle(s.pitchRadius)
	body := sdf.Union2D(append(teeth, hub)...)
	outline := sdf.Difference2D(body, sdf.Union2D(seats...))

	if s.BoltCircleDiameter > 0 && s.NumMountBolts > 0 && s.MountBoltDiameter > 0 {
		holes := make([]sdf.SDF2, s.NumMountBolts)
		hole := must2.Circle(s.MountBoltDiameter / 2)
		for i := range holes {
			loc := rotate2(r2.Vec{X: s.BoltCircleDiameter / 2}, float64(i)*2*math.Pi/float64(s.NumMountBolts))
			holes[i] = sdf.Transform2D(hole, sdf.Translate2D(loc))
		}
		outline = sdf.Difference2D(outline, sdf.Union2D(holes...))
	}
	if s.BoreDiameter > 0 {
		outline = sdf.Difference2D(outline, must2.Circle(s.BoreDiameter/2))
	}
	return outline
}

// Solid returns the extruded sprocket centered on the origin with its
// rotation axis along z. Flat-tipped sprockets get their tooth rims
// chamfered on both faces.
func (s Sprocket) Solid() sdf.SDF3 {
	solid := sdf.Extrude3D(s.Profile(), s.Thickness)
	if s.flatTeeth {
		k := 0.25 * s.Thickness / s.outerRadius
		solid = form3.ChamferedCylinder(solid, k, k)
	}
	return solid
}

func rotate2(v r2.Vec, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
