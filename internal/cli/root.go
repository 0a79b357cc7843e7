package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the mech CLI and returns an error if any command
// fails. Logging defaults to info level on stderr; --verbose switches
// to debug. The logger is attached to the command context.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "mech",
		Short:        "mech generates parametric mechanical parts as STL",
		Long:         `mech is a CLI for generating parametric mechanical parts: sprockets, roller chains, threaded fasteners, ball bearings and finger-jointed boxes, rendered to STL.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("mech %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSprocketCmd())
	root.AddCommand(newChainCmd())
	root.AddCommand(newBoltCmd())
	root.AddCommand(newNutCmd())
	root.AddCommand(newWasherCmd())
	root.AddCommand(newBearingCmd())
	root.AddCommand(newBoxCmd())

	return root.ExecuteContext(context.Background())
}
