package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/partforge/mech/bearing"
)

func newBearingCmd() *cobra.Command {
	var (
		output string
		cells  int
		capped bool
	)
	cmd := &cobra.Command{
		Use:   "bearing [designation]",
		Short: "Generate a deep groove ball bearing",
		Long: `Generate a single row deep groove ball bearing from a standard
designation (e.g. 608) or a bore-od-width size string (e.g. 8-22-7).

Known designations: ` + strings.Join(bearing.Designations(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBearing(args[0])
			if err != nil {
				return err
			}
			b.Capped = capped
			l := loggerFromContext(cmd.Context())
			l.Infof("bearing %s: bore %gmm, OD %gmm, %d balls",
				b.Designation, b.Bore(), b.OuterDiameter(), b.BallCount())
			s, err := b.Solid()
			if err != nil {
				return err
			}
			return writeSTL(cmd.Context(), s, output, cells)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "bearing.stl", "output STL path")
	f.IntVar(&cells, "cells", defaultCells, "octree mesh resolution")
	f.BoolVar(&capped, "capped", false, "add shield caps over the race gap")
	return cmd
}

func newBearing(designation string) (bearing.Bearing, error) {
	if strings.Contains(designation, "-") {
		return bearing.NewFromSize(designation)
	}
	return bearing.New(designation)
}
