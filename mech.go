// Package mech holds the shared plumbing for the parametric part
// generators: engineering units, the error taxonomy and the helpers for
// orienting kernel solids in space.
//
// All dimensions are millimeters and all angles are degrees unless a
// field documents otherwise.
package mech

import (
	"errors"
	"math"

	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// MM is the base unit of length.
	MM = 1.0
	// Inch is millimeters per inch.
	Inch = 25.4 * MM
)

// Error taxonomy. Generators wrap these sentinels with fmt.Errorf("%w: ...")
// naming the offending parameter or sprocket pair. All errors are raised at
// the point of detection and never retried: every operation in this module
// is a pure function of its validated inputs.
var (
	// ErrInvalidParameter reports malformed input caught at construction
	// time, before any geometry is attempted.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateGeometry reports valid-looking input with no geometric
	// solution, such as overlapping pitch circles in a chain layout.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrUnsupportedConfiguration reports a path topology or flag
	// combination the layout logic does not handle.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// RtoD converts radians to degrees.
func RtoD(radians float64) float64 {
	return (180 / math.Pi) * radians
}

// Orient returns s rotated so its local x/y/z axes align with the
// right-handed orthonormal basis (xDir, yDir, zDir) and translated to at.
// The basis vectors are normalized before use; orthogonality is the
// caller's responsibility.
//
// The rotation is applied as a Z-Y-Z Euler sequence so placement only
// needs the kernel's axis rotations.
func Orient(s sdf.SDF3, xDir, yDir, zDir, at r3.Vec) sdf.SDF3 {
	x := r3.Unit(xDir)
	y := r3.Unit(yDir)
	z := r3.Unit(zDir)
	alpha, beta, gamma := zyzAngles(x, y, z)
	m := sdf.Translate3D(at).
		Mul(sdf.RotateZ(alpha)).
		Mul(sdf.RotateY(beta)).
		Mul(sdf.RotateZ(gamma))
	return sdf.Transform3D(s, m)
}

// zyzAngles decomposes the rotation with columns (x, y, z) into Z-Y-Z
// Euler angles (radians) such that Rz(alpha)*Ry(beta)*Rz(gamma) maps the
// standard basis onto (x, y, z).
func zyzAngles(x, y, z r3.Vec) (alpha, beta, gamma float64) {
	const eps = 1e-12
	sinBeta := math.Hypot(z.X, z.Y)
	beta = math.Atan2(sinBeta, z.Z)
	if sinBeta > eps {
		alpha = math.Atan2(z.Y, z.X)
		// third row of the rotation matrix is (-sinB*cosG, sinB*sinG, cosB)
		gamma = math.Atan2(y.Z, -x.Z)
		return alpha, beta, gamma
	}
	if z.Z > 0 {
		// pure rotation about z
		return math.Atan2(x.Y, x.X), 0, 0
	}
	// flipped about y: R = Ry(pi)*Rz(gamma)
	return 0, math.Pi, math.Atan2(x.Y, -x.X)
}

// Perpendicular returns an arbitrary unit vector perpendicular to v.
func Perpendicular(v r3.Vec) r3.Vec {
	u := r3.Unit(v)
	axis := r3.Vec{X: 1}
	if math.Abs(u.X) > 0.9 {
		axis = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(u, axis))
}
