package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/partforge/mech/assembly"
	"github.com/partforge/mech/chain"
	"github.com/partforge/mech/sprocket"
)

// chainOpts holds the command-line flags for the chain command.
type chainOpts struct {
	output    string
	cells     int
	linksOnly bool // render chain links without the sprockets
	thickness float64
}

func newChainCmd() *cobra.Command {
	var opts chainOpts
	cmd := &cobra.Command{
		Use:   "chain [spec.yaml]",
		Short: "Generate a roller chain drive from a YAML spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, args[0], &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "chain.stl", "output STL path")
	f.IntVar(&opts.cells, "cells", defaultCells, "octree mesh resolution")
	f.BoolVar(&opts.linksOnly, "links-only", false, "render the chain links without sprockets")
	f.Float64Var(&opts.thickness, "thickness", 0, "sprocket thickness in mm (0 for default)")
	return cmd
}

func runChain(cmd *cobra.Command, specPath string, opts *chainOpts) error {
	ctx := cmd.Context()
	l := loggerFromContext(ctx)

	spec, err := loadChainSpec(specPath)
	if err != nil {
		return err
	}
	k, err := spec.parms()
	if err != nil {
		return err
	}
	c, err := chain.New(k)
	if err != nil {
		return err
	}

	links := c.Links()
	l.Infof("chain closes in %.4f links, %d rollers", links, c.NumRollers())
	// a fractional remainder over half a link means the rounded-down
	// chain is visibly short of closing the loop
	if frac := links - math.Floor(links); frac > 0.5 {
		l.Warnf("chain needs %.4f links; rendering %d leaves a %.2f link gap — adjust sprocket spacing",
			links, int(links), frac)
	}

	var a *assembly.Assembly
	if opts.linksOnly {
		a, err = c.LinkAssembly()
		if err != nil {
			return err
		}
	} else {
		spkts := make([]sprocket.Sprocket, len(spec.Sprockets))
		for i, ref := range spec.Sprockets {
			spkts[i], err = sprocket.New(sprocket.Parms{
				NumTeeth:       ref.Teeth,
				ChainPitch:     k.ChainPitch,
				RollerDiameter: k.RollerDiameter,
				Thickness:      opts.thickness,
			})
			if err != nil {
				return err
			}
		}
		a, err = c.Transmission(spkts)
		if err != nil {
			return err
		}
	}
	l.Debugf("assembly has %d parts", a.Len())

	s, err := a.Solid()
	if err != nil {
		return err
	}
	return writeSTL(ctx, s, opts.output, opts.cells)
}
