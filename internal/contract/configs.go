package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/codecity/codecity/schema"
)

// Default values for configuration.
const (
	DefaultDedupLineThreshold    = 3
	DefaultCorrelationLineWindow = 10
	DefaultHotspotMinScore       = 50
	DefaultMaxIssues             = 50000
	DefaultMaxFiles              = 10000
	DefaultResultLimit           = 25
	MaxResultLimit               = 1000
	DefaultPrecision             = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DefaultToolPriority is the deterministic tie-break ordering used by the
// deduplication engine when severity and confidence are equal. Tools not
// listed here rank after the listed ones, alphabetically.
var DefaultToolPriority = []string{
	"cbmc",
	"sonarqube",
	"semgrep",
	"codacy",
	"eslint",
	"datadog",
	"newrelic",
}

// Config holds the runtime configuration for one analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectRoot            string
	IncludeDevDependencies bool
	ScanPaths              []string
	ExcludePaths           []string
	FileExtensions         []string

	MaxIssuesPerRepository int
	MaxFilesPerRepository  int

	DedupLineThreshold    int
	CorrelationLineWindow int
	HotspotMinScore       int

	// SeverityWeights is the final weight map, computed from defaults plus
	// any overrides from the config file.
	SeverityWeights map[schema.Severity]float64

	// ToolPriority is the dedup tie-break ordering, highest priority first.
	ToolPriority []string

	FunctionBoundaryMode bool

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	out := *c
	out.ScanPaths = append([]string(nil), c.ScanPaths...)
	out.ExcludePaths = append([]string(nil), c.ExcludePaths...)
	out.FileExtensions = append([]string(nil), c.FileExtensions...)
	out.ToolPriority = append([]string(nil), c.ToolPriority...)
	out.SeverityWeights = make(map[schema.Severity]float64, len(c.SeverityWeights))
	for k, v := range c.SeverityWeights {
		out.SeverityWeights[k] = v
	}
	return &out
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ProjectRootStr  string             `mapstructure:"project-root"`
	IncludeDevDeps  bool               `mapstructure:"include-dev-deps"`
	ScanPaths       []string           `mapstructure:"scan-paths"`
	ExcludePaths    []string           `mapstructure:"exclude-paths"`
	FileExtensions  []string           `mapstructure:"file-extensions"`
	MaxIssues       int                `mapstructure:"max-issues"`
	MaxFiles        int                `mapstructure:"max-files"`
	DedupThreshold  int                `mapstructure:"dedup-line-threshold"`
	CorrelationWin  int                `mapstructure:"correlation-window"`
	HotspotMinScore int                `mapstructure:"hotspot-min-score"`
	SeverityWeights map[string]float64 `mapstructure:"severity-weights"`
	ToolPriority    []string           `mapstructure:"tool-priority"`
	FunctionBounds  bool               `mapstructure:"function-boundaries"`
	ResultLimit     int                `mapstructure:"limit"`
	Precision       int                `mapstructure:"precision"`
	Output          string             `mapstructure:"output"`
	OutputFile      string             `mapstructure:"output-file"`
	Width           int                `mapstructure:"width"`
	StoreBackend    string             `mapstructure:"store-backend"`
	StoreDBConnect  string             `mapstructure:"store-db-connect"`
	Color           string             `mapstructure:"color"`
	Emoji           string             `mapstructure:"emoji"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Any violation on a recognized
// option wraps ErrConfiguration and aborts the run.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Project root ---
	if strings.TrimSpace(input.ProjectRootStr) == "" {
		return fmt.Errorf("%w: project root is required", ErrConfiguration)
	}
	abs, err := filepath.Abs(input.ProjectRootStr)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve project root %q: %v", ErrConfiguration, input.ProjectRootStr, err)
	}
	cfg.ProjectRoot = filepath.ToSlash(abs)

	// --- 2. Pipeline thresholds ---
	if input.DedupThreshold < 0 {
		return fmt.Errorf("%w: dedup-line-threshold must be >= 0 (received %d)", ErrConfiguration, input.DedupThreshold)
	}
	cfg.DedupLineThreshold = input.DedupThreshold

	if input.CorrelationWin <= 0 {
		return fmt.Errorf("%w: correlation-window must be > 0 (received %d)", ErrConfiguration, input.CorrelationWin)
	}
	cfg.CorrelationLineWindow = input.CorrelationWin

	if input.HotspotMinScore < 0 || input.HotspotMinScore > 100 {
		return fmt.Errorf("%w: hotspot-min-score must be between 0 and 100 (received %d)", ErrConfiguration, input.HotspotMinScore)
	}
	cfg.HotspotMinScore = input.HotspotMinScore

	// --- 3. Resource limits ---
	if input.MaxIssues < 0 || input.MaxFiles < 0 {
		return fmt.Errorf("%w: max-issues and max-files must be >= 0", ErrConfiguration)
	}
	cfg.MaxIssuesPerRepository = input.MaxIssues
	cfg.MaxFilesPerRepository = input.MaxFiles

	// --- 4. Severity weight overrides ---
	cfg.SeverityWeights = schema.DefaultSeverityWeights()
	for name, weight := range input.SeverityWeights {
		sev := schema.Severity(strings.ToLower(name))
		if _, ok := schema.ValidSeverities[sev]; !ok {
			return fmt.Errorf("%w: unknown severity %q in severity-weights", ErrConfiguration, name)
		}
		if weight < 0 {
			return fmt.Errorf("%w: severity weight for %q must be >= 0 (received %v)", ErrConfiguration, name, weight)
		}
		cfg.SeverityWeights[sev] = weight
	}

	// --- 5. Tool priority ---
	cfg.ToolPriority = DefaultToolPriority
	if len(input.ToolPriority) > 0 {
		cfg.ToolPriority = input.ToolPriority
	}

	// --- 6. Output surface ---
	if input.ResultLimit <= 0 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("%w: limit must be greater than 0 and cannot exceed %d (received %d)", ErrConfiguration, MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("%w: precision must be 1 or 2 (received %d)", ErrConfiguration, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output format %q. must be text, csv, json, parquet", ErrConfiguration, input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- 7. Store backend ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("%w: invalid store backend %q. must be sqlite, mysql, postgresql, or none", ErrConfiguration, input.StoreBackend)
	}
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, input.StoreDBConnect); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 8. Paths and toggles ---
	cfg.IncludeDevDependencies = input.IncludeDevDeps
	cfg.ScanPaths = input.ScanPaths
	cfg.ExcludePaths = input.ExcludePaths
	cfg.FileExtensions = input.FileExtensions
	cfg.FunctionBoundaryMode = input.FunctionBounds

	cfg.UseColors = parseToggle(input.Color, true)
	cfg.UseEmojis = parseToggle(input.Emoji, true)

	return nil
}

// ValidateDatabaseConnectionString performs basic validation of database
// connection strings for the configured store backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// parseToggle interprets yes/no style toggles from config or env.
func parseToggle(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1":
		return true
	case "no", "false", "off", "0":
		return false
	default:
		return fallback
	}
}
