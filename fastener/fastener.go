// Package fastener generates standard threaded fasteners and washers.
//
// Each category (nut, screw, washer) is one concrete record type tagged
// with a standard family. Dimension data comes from embedded CSV tables
// keyed by family and nominal size; behavior that varies between
// standards (head shapes, mostly) is dispatched through a static
// registry populated at package init, not through type hierarchies.
package fastener

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/partforge/mech"
)

// Family identifies a fastener standard.
type Family string

const (
	// HexNut is a metric hex nut, ISO 4032.
	HexNut Family = "iso4032"
	// HexBolt is a metric hex head bolt, ISO 4017.
	HexBolt Family = "iso4017"
	// SocketHeadCapScrew is a metric socket head cap screw, ISO 4762.
	SocketHeadCapScrew Family = "iso4762"
	// PlainWasher is a metric plain washer, ISO 7089.
	PlainWasher Family = "iso7089"
)

// Lookup returns the dimension table entry for a family and nominal
// size (e.g. "M6"), as a mapping from dimension name to value in
// millimeters.
func Lookup(family Family, size string) (map[string]float64, error) {
	t, ok := registry[family]
	if !ok {
		return nil, fmt.Errorf("%w: unknown fastener family %q", mech.ErrInvalidParameter, family)
	}
	dims, ok := t[size]
	if !ok {
		return nil, fmt.Errorf("%w: family %q has no size %q (have %s)",
			mech.ErrInvalidParameter, family, size, strings.Join(Sizes(family), ", "))
	}
	// copy so callers cannot poison the table
	out := make(map[string]float64, len(dims))
	for k, v := range dims {
		out[k] = v
	}
	return out, nil
}

// Families returns the registered standard families.
func Families() []Family {
	out := make([]Family, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sizes returns the nominal sizes available for a family, smallest
// first.
func Sizes(family Family) []string {
	t := registry[family]
	out := make([]string, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		di, _ := nominalDiameter(out[i])
		dj, _ := nominalDiameter(out[j])
		return di < dj
	})
	return out
}

// nominalDiameter parses the thread major diameter from a metric size
// designation like "M6".
func nominalDiameter(size string) (float64, error) {
	if !strings.HasPrefix(size, "M") {
		return 0, fmt.Errorf("%w: size %q is not a metric designation", mech.ErrInvalidParameter, size)
	}
	d, err := strconv.ParseFloat(size[1:], 64)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: size %q", mech.ErrInvalidParameter, size)
	}
	return d, nil
}
