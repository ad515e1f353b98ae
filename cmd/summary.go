package cmd

import (
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/outwriter"
	"github.com/spf13/cobra"
)

// summaryCmd runs the pipeline and prints run roll-up statistics.
var summaryCmd = &cobra.Command{
	Use:   "summary [project-root]",
	Short: "Show roll-up statistics for a correlation run.",
	Long: `Run the correlation pipeline and print the run summary.

The summary covers total issues and files, severity and analysis-type
distributions, tool coverage, deduplication statistics, and every finding
rejected during validation. A partial flag marks runs truncated by the
max-issues or max-files limits.

Examples:
  # Human-readable summary
  codecity summary --reports reports.json

  # Machine-readable, for CI annotations
  codecity summary --reports reports.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, _, err := runCorrelation(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := outwriter.NewOutWriter().WriteSummary(result.Summary(), cfg); err != nil {
			contract.LogFatal("Cannot write summary", err)
		}
	},
}
