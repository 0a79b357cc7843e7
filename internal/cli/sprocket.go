package cli

import (
	"github.com/spf13/cobra"

	"github.com/partforge/mech"
	"github.com/partforge/mech/sprocket"
)

// sprocketOpts holds the command-line flags for the sprocket command.
type sprocketOpts struct {
	output     string
	cells      int
	teeth      int
	pitch      float64 // chain pitch [mm]
	roller     float64 // roller diameter [mm]
	clearance  float64
	thickness  float64
	boltCircle float64
	numBolts   int
	boltDia    float64
	bore       float64
}

func newSprocketCmd() *cobra.Command {
	var opts sprocketOpts
	cmd := &cobra.Command{
		Use:   "sprocket",
		Short: "Generate a chain sprocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSprocket(cmd, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "sprocket.stl", "output STL path")
	f.IntVar(&opts.cells, "cells", defaultCells, "octree mesh resolution")
	f.IntVarP(&opts.teeth, "teeth", "t", 32, "number of teeth")
	f.Float64Var(&opts.pitch, "pitch", 0.5*mech.Inch, "chain pitch in mm")
	f.Float64Var(&opts.roller, "roller-diameter", 5.0/16.0*mech.Inch, "chain roller diameter in mm")
	f.Float64Var(&opts.clearance, "clearance", 0, "roller seat clearance in mm")
	f.Float64Var(&opts.thickness, "thickness", 0.084*mech.Inch, "sprocket thickness in mm")
	f.Float64Var(&opts.boltCircle, "bolt-circle", 0, "mounting bolt circle diameter in mm (0 for none)")
	f.IntVar(&opts.numBolts, "bolts", 0, "number of mounting bolt holes")
	f.Float64Var(&opts.boltDia, "bolt-diameter", 0, "mounting bolt hole diameter in mm")
	f.Float64Var(&opts.bore, "bore", 0, "central bore diameter in mm (0 for none)")
	return cmd
}

func runSprocket(cmd *cobra.Command, opts *sprocketOpts) error {
	ctx := cmd.Context()
	l := loggerFromContext(ctx)

	s, err := sprocket.New(sprocket.Parms{
		NumTeeth:           opts.teeth,
		ChainPitch:         opts.pitch,
		RollerDiameter:     opts.roller,
		Clearance:          opts.clearance,
		Thickness:          opts.thickness,
		BoltCircleDiameter: opts.boltCircle,
		NumMountBolts:      opts.numBolts,
		MountBoltDiameter:  opts.boltDia,
		BoreDiameter:       opts.bore,
	})
	if err != nil {
		return err
	}
	tip := "spiky"
	if s.FlatTeeth() {
		tip = "flat"
	}
	l.Infof("%d teeth, pitch radius %.3fmm, %s tips", opts.teeth, s.PitchRadius(), tip)
	return writeSTL(ctx, s.Solid(), opts.output, opts.cells)
}
