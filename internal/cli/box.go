package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/partforge/mech/boxjoint"
)

// boxOpts holds the command-line flags for the box command.
type boxOpts struct {
	output    string
	cells     int
	length    float64
	width     float64
	height    float64
	thickness float64
	finger    float64
	panel     string // render a single flat panel instead of the box
}

func newBoxCmd() *cobra.Command {
	var opts boxOpts
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Generate a finger-jointed box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBox(cmd, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "box.stl", "output STL path")
	f.IntVar(&opts.cells, "cells", defaultCells, "octree mesh resolution")
	f.Float64VarP(&opts.length, "length", "l", 100, "outer length in mm")
	f.Float64VarP(&opts.width, "width", "w", 60, "outer width in mm")
	f.Float64Var(&opts.height, "height", 40, "outer height in mm")
	f.Float64VarP(&opts.thickness, "thickness", "t", 3, "sheet stock thickness in mm")
	f.Float64Var(&opts.finger, "finger", 10, "target finger width in mm")
	f.StringVar(&opts.panel, "panel", "", "render one flat panel (bottom|top|front|back|left|right)")
	return cmd
}

func runBox(cmd *cobra.Command, opts *boxOpts) error {
	ctx := cmd.Context()
	l := loggerFromContext(ctx)

	b, err := boxjoint.New(boxjoint.Parms{
		Length:      opts.length,
		Width:       opts.width,
		Height:      opts.height,
		Thickness:   opts.thickness,
		FingerWidth: opts.finger,
	})
	if err != nil {
		return err
	}

	if opts.panel != "" {
		face, err := parseFace(opts.panel)
		if err != nil {
			return err
		}
		l.Infof("rendering flat %s panel", face)
		return writeSTL(ctx, b.Panel(face), opts.output, opts.cells)
	}

	a := b.Assemble()
	l.Infof("assembled box %gx%gx%gmm from %d panels",
		opts.length, opts.width, opts.height, a.Len())
	s, err := a.Solid()
	if err != nil {
		return err
	}
	return writeSTL(ctx, s, opts.output, opts.cells)
}

func parseFace(name string) (boxjoint.Face, error) {
	for _, f := range boxjoint.Faces {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown panel %q", name)
}
