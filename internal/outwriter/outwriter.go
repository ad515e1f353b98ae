// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/codecity/codecity/core"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIssues prints the unified issue list using the configured output format.
func (ow *OutWriter) WriteIssues(result *core.UnifiedResult, cfg *contract.Config, duration time.Duration) error {
	return PrintIssues(result, cfg, duration)
}

// WriteHotspots prints detected hotspots using the configured output format.
func (ow *OutWriter) WriteHotspots(hotspots []schema.Hotspot, cfg *contract.Config, duration time.Duration) error {
	return PrintHotspots(hotspots, cfg, duration)
}

// WriteGroups prints correlation groups using the configured output format.
func (ow *OutWriter) WriteGroups(groups []schema.CorrelationGroup, cfg *contract.Config, duration time.Duration) error {
	return PrintGroups(groups, cfg, duration)
}

// WriteSummary prints the run summary using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.Summary, cfg *contract.Config) error {
	return PrintSummary(summary, cfg)
}

// WriteCity prints the city visualization payload. The city is a renderer
// contract, so it is always emitted as JSON regardless of the output format.
func (ow *OutWriter) WriteCity(city *schema.CityScape, cfg *contract.Config) error {
	return PrintCity(city, cfg)
}

// getMaxTablePathWidth calculates the maximum width for canonical paths in
// table output based on terminal width and table configuration.
func getMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, score, label, counts) with
	// borders, separators, and padding.
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}

// riskLabel picks the colored or plain label per the color toggle.
func riskLabel(level schema.RiskLevel, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(level)
	}
	return contract.GetPlainLabel(level)
}

// header prefixes a section title with an emoji when enabled.
func header(emoji, title string, cfg *contract.Config) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}
