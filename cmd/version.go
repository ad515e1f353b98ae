package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the build provenance of the binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print codecity version and build details.",
	Long: `Display the codecity release version together with the git commit,
build timestamp, and Go runtime it was compiled with.

Include this output when reporting problems, so the exact build can be
reproduced.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("codecity CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
