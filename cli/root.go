// Package cli holds the homechef command tree.
package cli

import (
	"fmt"
	"os"

	"homechef-api/handlers"

	"github.com/spf13/cobra"
)

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "homechef",
		Short:        "Home Chef marketplace API",
		Version:      version,
		SilenceUsage: true,
		// Running the bare binary starts the server.
		RunE: runServe,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(tokenCmd())
	return root
}

// Execute runs the command tree and exits non-zero on failure
func Execute(version string) {
	handlers.Version = version
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
