package fastener

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2"
	"github.com/soypat/sdf/form3/must3"
	"github.com/soypat/sdf/form3/obj3/thread"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partforge/mech"
)

// Screw is a standard threaded screw or bolt. The head shape follows
// the family; the thread is coarse ISO metric.
type Screw struct {
	// Size is the nominal thread designation, e.g. "M6".
	Size string
	// Family selects the head standard: HexBolt or
	// SocketHeadCapScrew.
	Family Family
	// Length is the threaded length below the head.
	Length float64

	threadD float64
	pitch   float64
	dims    map[string]float64
}

// NewScrew looks up size in the family table.
func NewScrew(size string, family Family, length float64) (Screw, error) {
	if family != HexBolt && family != SocketHeadCapScrew {
		return Screw{}, fmt.Errorf("%w: family %q is not a screw standard", mech.ErrInvalidParameter, family)
	}
	if length <= 0 {
		return Screw{}, fmt.Errorf("%w: screw length %g must be positive", mech.ErrInvalidParameter, length)
	}
	dims, err := Lookup(family, size)
	if err != nil {
		return Screw{}, err
	}
	d, err := nominalDiameter(size)
	if err != nil {
		return Screw{}, err
	}
	return Screw{
		Size:    size,
		Family:  family,
		Length:  length,
		threadD: d,
		pitch:   dims["pitch"],
		dims:    dims,
	}, nil
}

// ThreadDiameter returns the nominal thread major diameter.
func (s Screw) ThreadDiameter() float64 { return s.threadD }

// Pitch returns the coarse thread pitch.
func (s Screw) Pitch() float64 { return s.pitch }

// HeadHeight returns the head height from the family table.
func (s Screw) HeadHeight() float64 { return s.dims["head_height"] }

// HeadDiameter returns the head envelope diameter: across corners for
// hex heads, the cap diameter for socket heads.
func (s Screw) HeadDiameter() float64 {
	switch s.Family {
	case HexBolt:
		return s.dims["width_af"] / math.Cos(30*math.Pi/180)
	default:
		return s.dims["head_diameter"]
	}
}

// Solid returns the screw with the head centered on the origin and the
// thread extending along +z.
func (s Screw) Solid() (sdf.SDF3, error) {
	head, err := s.head()
	if err != nil {
		return nil, err
	}
	shaft, err := thread.Screw(s.Length, thread.ISO{D: s.threadD, P: s.pitch, Ext: true})
	if err != nil {
		return nil, fmt.Errorf("%w: screw %s thread: %v", mech.ErrDegenerateGeometry, s.Size, err)
	}
	// lead-in chamfer at the tip
	shaft = must3.ChamferedCylinder(shaft, 0, 0.5)
	shaft = sdf.Transform3D(shaft, sdf.Translate3D(r3.Vec{Z: s.Length/2 + s.HeadHeight()/2}))
	return sdf.Union3D(head, shaft), nil
}

func (s Screw) head() (sdf.SDF3, error) {
	hh := s.HeadHeight()
	switch s.Family {
	case HexBolt:
		hexRadius := s.dims["width_af"] / (2 * math.Cos(30*math.Pi/180))
		head, err := thread.HexHead(hexRadius, hh, "b")
		if err != nil {
			return nil, fmt.Errorf("%w: screw %s head: %v", mech.ErrDegenerateGeometry, s.Size, err)
		}
		return head, nil
	case SocketHeadCapScrew:
		cap := must3.Cylinder(hh, s.dims["head_diameter"]/2, 0.1*hh)
		socket, err := hexPrism(s.dims["socket_af"], hh)
		if err != nil {
			return nil, fmt.Errorf("%w: screw %s socket: %v", mech.ErrDegenerateGeometry, s.Size, err)
		}
		// socket reaches half way into the cap from the face away
		// from the thread
		socket = sdf.Transform3D(socket, sdf.Translate3D(r3.Vec{Z: -hh / 2}))
		return sdf.Difference3D(cap, socket), nil
	}
	return nil, fmt.Errorf("%w: no head shape for family %q", mech.ErrUnsupportedConfiguration, s.Family)
}

// hexPrism builds a hex key socket of the given width across flats,
// extruded to the given depth.
func hexPrism(widthAF, depth float64) (sdf.SDF3, error) {
	r := widthAF / (2 * math.Cos(30*math.Pi/180))
	nagon, err := form2.Nagon(6, r)
	if err != nil {
		return nil, err
	}
	hex2d, err := form2.Polygon(nagon)
	if err != nil {
		return nil, err
	}
	return sdf.Extrude3D(hex2d, depth), nil
}
