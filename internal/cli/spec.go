package cli

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/partforge/mech/chain"
)

// chainSpec is the YAML description of a chain drive. Dimensions are
// millimeters; zero values take the library defaults (1/2" bicycle
// chain).
//
//	pitch: 12.7
//	roller_diameter: 7.9375
//	sprockets:
//	  - teeth: 32
//	    location: [-127, 0, 0]
//	    wrap: positive
//	  - teeth: 16
//	    location: [127, 0, 0]
//	    wrap: positive
type chainSpec struct {
	Pitch          float64       `yaml:"pitch"`
	RollerDiameter float64       `yaml:"roller_diameter"`
	RollerLength   float64       `yaml:"roller_length"`
	PlateThickness float64       `yaml:"plate_thickness"`
	Normal         []float64     `yaml:"normal"`
	Sprockets      []sprocketRef `yaml:"sprockets"`
}

// sprocketRef is one sprocket in a chain spec.
type sprocketRef struct {
	Teeth    int       `yaml:"teeth"`
	Location []float64 `yaml:"location"`
	Wrap     string    `yaml:"wrap"` // "positive" (default) or "negative"
}

// loadChainSpec reads and decodes a YAML chain spec.
func loadChainSpec(path string) (chainSpec, error) {
	var spec chainSpec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("reading spec: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("decoding %s: %w", path, err)
	}
	return spec, nil
}

// parms converts the spec to chain parameters.
func (s chainSpec) parms() (chain.Parms, error) {
	k := chain.Parms{
		ChainPitch:         s.Pitch,
		RollerDiameter:     s.RollerDiameter,
		RollerLength:       s.RollerLength,
		LinkPlateThickness: s.PlateThickness,
	}
	if s.Normal != nil {
		n, err := vec3(s.Normal)
		if err != nil {
			return k, fmt.Errorf("normal: %w", err)
		}
		k.SpktNormal = n
	}
	for i, ref := range s.Sprockets {
		loc, err := vec3(ref.Location)
		if err != nil {
			return k, fmt.Errorf("sprocket %d location: %w", i, err)
		}
		wrap, err := parseWrap(ref.Wrap)
		if err != nil {
			return k, fmt.Errorf("sprocket %d: %w", i, err)
		}
		k.SpktTeeth = append(k.SpktTeeth, ref.Teeth)
		k.SpktLocations = append(k.SpktLocations, loc)
		k.PositiveChainWrap = append(k.PositiveChainWrap, wrap)
	}
	return k, nil
}

func vec3(v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("want 3 coordinates, got %d", len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseWrap(s string) (bool, error) {
	switch s {
	case "", "positive":
		return true, nil
	case "negative":
		return false, nil
	}
	return false, fmt.Errorf("wrap %q must be positive or negative", s)
}
