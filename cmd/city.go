package cmd

import (
	"github.com/codecity/codecity/core"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/outwriter"
	"github.com/spf13/cobra"
)

// cityCmd runs the pipeline and emits the city visualization payload.
var cityCmd = &cobra.Command{
	Use:   "city [project-root]",
	Short: "Emit the 3D city payload for visualization renderers.",
	Long: `Run the correlation pipeline and emit the city scene as JSON.

The scene maps analysis state onto a city:
- Every file becomes a building; height tracks issue count, color tracks
  the dominant severity, glow marks hotspot files
- Directories become districts laid out on the city grid
- Correlation groups become roads connecting their member buildings

The payload is renderer-agnostic JSON; any 3D frontend can consume it.
Output is always JSON regardless of --output.

Examples:
  # Print the scene to stdout
  codecity city --reports reports.json

  # Write the scene for a renderer to pick up
  codecity city --reports reports.json --output-file city.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, _, err := runCorrelation(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
		city := core.BuildCity(result)
		if err := outwriter.NewOutWriter().WriteCity(&city, cfg); err != nil {
			contract.LogFatal("Cannot write city", err)
		}
	},
}
