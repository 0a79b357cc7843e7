package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partforge/mech/fastener"
)

// Fastener commands share a size/output flag set; the family defaults
// differ per command.

func newBoltCmd() *cobra.Command {
	var (
		output string
		cells  int
		size   string
		family string
		length float64
	)
	cmd := &cobra.Command{
		Use:   "bolt",
		Short: "Generate a threaded bolt or cap screw",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := fastener.NewScrew(size, fastener.Family(family), length)
			if err != nil {
				return err
			}
			l := loggerFromContext(cmd.Context())
			l.Infof("%s %s x %gmm, pitch %gmm", family, size, length, sc.Pitch())
			s, err := sc.Solid()
			if err != nil {
				return err
			}
			return writeSTL(cmd.Context(), s, output, cells)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "bolt.stl", "output STL path")
	f.IntVar(&cells, "cells", defaultCells, "octree mesh resolution")
	f.StringVarP(&size, "size", "s", "M6", "nominal thread size")
	f.StringVar(&family, "family", string(fastener.HexBolt),
		fmt.Sprintf("head standard (%s or %s)", fastener.HexBolt, fastener.SocketHeadCapScrew))
	f.Float64VarP(&length, "length", "l", 20, "threaded length in mm")
	return cmd
}

func newNutCmd() *cobra.Command {
	var (
		output string
		cells  int
		size   string
	)
	cmd := &cobra.Command{
		Use:   "nut",
		Short: "Generate a hex nut",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := fastener.NewNut(size, fastener.HexNut)
			if err != nil {
				return err
			}
			l := loggerFromContext(cmd.Context())
			l.Infof("%s nut, %gmm across flats", size, n.WidthAcrossFlats())
			s, err := n.Solid()
			if err != nil {
				return err
			}
			return writeSTL(cmd.Context(), s, output, cells)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "nut.stl", "output STL path")
	f.IntVar(&cells, "cells", defaultCells, "octree mesh resolution")
	f.StringVarP(&size, "size", "s", "M6", "nominal thread size")
	return cmd
}

func newWasherCmd() *cobra.Command {
	var (
		output string
		cells  int
		size   string
	)
	cmd := &cobra.Command{
		Use:   "washer",
		Short: "Generate a plain washer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := fastener.NewWasher(size, fastener.PlainWasher)
			if err != nil {
				return err
			}
			s, err := w.Solid()
			if err != nil {
				return err
			}
			return writeSTL(cmd.Context(), s, output, cells)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "washer.stl", "output STL path")
	f.IntVar(&cells, "cells", defaultCells, "octree mesh resolution")
	f.StringVarP(&size, "size", "s", "M6", "nominal thread size")
	return cmd
}
