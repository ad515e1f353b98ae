// Package cmd defines the command-line interface for codecity.
package cmd

import (
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(hotspotsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(cityCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringSliceP("input", "i", nil, "Report input spec: tool:category:format:path (repeatable)")
	rootCmd.PersistentFlags().String("reports", "", "Path to a JSON report manifest with embedded payloads")
	rootCmd.PersistentFlags().Bool("include-dev-deps", false, "Include findings on development-only dependencies")
	rootCmd.PersistentFlags().StringSlice("scan-paths", nil, "Canonical path prefixes to include (empty = everything)")
	rootCmd.PersistentFlags().StringSlice("exclude-paths", nil, "Path prefixes or patterns to ignore (e.g. vendor/,*.min.js)")
	rootCmd.PersistentFlags().StringSlice("file-extensions", nil, "File extensions to include (empty = every extension)")
	rootCmd.PersistentFlags().Int("max-issues", contract.DefaultMaxIssues, "Maximum issues ingested per run (0 = unlimited)")
	rootCmd.PersistentFlags().Int("max-files", contract.DefaultMaxFiles, "Maximum distinct files per run (0 = unlimited)")
	rootCmd.PersistentFlags().Int("dedup-line-threshold", contract.DefaultDedupLineThreshold, "Line distance within which same-path findings can deduplicate")
	rootCmd.PersistentFlags().Int("correlation-window", contract.DefaultCorrelationLineWindow, "Line window for clustering findings into correlation groups")
	rootCmd.PersistentFlags().Int("hotspot-min-score", contract.DefaultHotspotMinScore, "Minimum risk score (0-100) for hotspot detection")
	rootCmd.PersistentFlags().StringSlice("tool-priority", nil, "Tool ordering for dedup tie-breaks, highest priority first")
	rootCmd.PersistentFlags().Bool("function-boundaries", false, "Correlate by enclosing function spans instead of line windows")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
