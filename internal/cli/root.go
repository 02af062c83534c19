package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var outputJSON bool

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themegen",
		Short: "Theme catalog generator for video metadata",
		Long: `themegen reads XMP sidecar markers exported alongside theme videos
and assembles them into a JSON theme catalog with clip entries and
poster images.`,
	}

	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPostersCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}
