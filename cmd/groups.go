package cmd

import (
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/outwriter"
	"github.com/spf13/cobra"
)

// groupsCmd runs the pipeline and prints correlation groups.
var groupsCmd = &cobra.Command{
	Use:   "groups [project-root]",
	Short: "Show correlated findings clustered by file proximity.",
	Long: `Run the correlation pipeline and print the correlation groups.

Findings from different tools that land within --correlation-window lines
of each other in the same file are clustered into one group. A group mixing
several analysis types (say, a security finding on top of a performance
one) usually marks code worth a closer look than any single finding.

With --function-boundaries, grouping follows enclosing function spans
scanned from the project sources instead of the fixed line window.

Examples:
  # Default line-window clustering
  codecity groups --reports reports.json

  # Widen the window
  codecity groups --reports reports.json --correlation-window 25

  # Cluster by enclosing function instead
  codecity groups --reports reports.json --function-boundaries`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, duration, err := runCorrelation(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := outwriter.NewOutWriter().WriteGroups(result.Groups, cfg, duration); err != nil {
			contract.LogFatal("Cannot write groups", err)
		}
	},
}
