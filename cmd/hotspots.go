package cmd

import (
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/outwriter"
	"github.com/spf13/cobra"
)

// hotspotsCmd runs the pipeline and prints detected hotspots.
var hotspotsCmd = &cobra.Command{
	Use:   "hotspots [project-root]",
	Short: "Show files and clusters whose risk score clears the threshold.",
	Long: `Run the correlation pipeline and rank the detected risk hotspots.

Two kinds of hotspots are reported:
- file: a path whose aggregated issue score clears --hotspot-min-score
- cluster: a correlation group whose combined risk clears the threshold

Each hotspot carries its severity distribution, tool coverage and a set of
recommended actions derived from the dominant analysis types.

Examples:
  # Top hotspots with the default threshold
  codecity hotspots --reports reports.json

  # Lower the bar to surface more candidates
  codecity hotspots --reports reports.json --hotspot-min-score 20

  # Export for tracking
  codecity hotspots --reports reports.json --output csv --output-file hotspots.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, duration, err := runCorrelation(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		if err := outwriter.NewOutWriter().WriteHotspots(result.Hotspots, cfg, duration); err != nil {
			contract.LogFatal("Cannot write hotspots", err)
		}
	},
}
