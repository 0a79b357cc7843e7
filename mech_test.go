package mech

import (
	"math"
	"testing"

	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngleConversions(t *testing.T) {
	if got := DtoR(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("DtoR(180) = %g, want pi", got)
	}
	if got := RtoD(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("RtoD(pi/2) = %g, want 90", got)
	}
	for _, deg := range []float64{-720, -33.3, 0, 5.625, 360} {
		if got := RtoD(DtoR(deg)); math.Abs(got-deg) > 1e-12 {
			t.Errorf("round trip %g -> %g", deg, got)
		}
	}
}

func TestPerpendicular(t *testing.T) {
	vecs := []r3.Vec{
		{X: 1},
		{Y: 2},
		{Z: -3},
		{X: 1, Y: 1, Z: 1},
		{X: -0.947, Y: 0.1, Z: 0.02},
	}
	for _, v := range vecs {
		p := Perpendicular(v)
		if math.Abs(r3.Norm(p)-1) > 1e-12 {
			t.Errorf("Perpendicular(%v) not unit length: %v", v, p)
		}
		if dot := r3.Dot(p, v); math.Abs(dot) > 1e-12 {
			t.Errorf("Perpendicular(%v) . v = %g, want 0", v, dot)
		}
	}
}

// orientCase pairs a right-handed basis with a sample of local points.
type orientCase struct {
	name        string
	x, y, z, at r3.Vec
}

func TestOrient(t *testing.T) {
	box := must3.Box(r3.Vec{X: 2, Y: 4, Z: 6}, 0)
	invSqrt2 := 1 / math.Sqrt2
	cases := []orientCase{
		{"identity", r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{}},
		{"translated", r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{X: 10, Y: -3, Z: 7}},
		{"cycled axes", r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{X: 1}, r3.Vec{X: 5}},
		{"flipped z", r3.Vec{X: 1}, r3.Vec{Y: -1}, r3.Vec{Z: -1}, r3.Vec{}},
		{"oblique", r3.Vec{X: invSqrt2, Y: invSqrt2}, r3.Vec{X: -invSqrt2, Y: invSqrt2}, r3.Vec{Z: 1}, r3.Vec{Y: 4}},
		{"tilted", r3.Vec{Z: 1}, r3.Vec{Y: 1}, r3.Vec{X: -1}, r3.Vec{Z: -2}},
	}
	locals := []r3.Vec{
		{},
		{X: 0.9, Y: 1.9, Z: 2.9},
		{X: -0.9, Y: -1.9, Z: -2.9},
		{X: 3, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			placed := Orient(box, tc.x, tc.y, tc.z, tc.at)
			for _, p := range locals {
				world := tc.at
				world = r3.Add(world, r3.Scale(p.X, tc.x))
				world = r3.Add(world, r3.Scale(p.Y, tc.y))
				world = r3.Add(world, r3.Scale(p.Z, tc.z))
				got := placed.Evaluate(world)
				want := box.Evaluate(p)
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("local %v -> world %v: got %g, want %g", p, world, got, want)
				}
			}
		})
	}
}
