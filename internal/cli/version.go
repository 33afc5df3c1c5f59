package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables
var (
	Version   = "dev"
	Commit    = "unknown"
	GoVersion = runtime.Version()
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sentiplot %s (commit: %s, go: %s, platform: %s/%s)\n",
				Version, Commit, GoVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}
