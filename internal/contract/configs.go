package contract

import (
	"fmt"
	"strings"

	"github.com/miradorhq/mirador/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = 1
	DefaultQuarter    = "Q1 2025"
	DefaultConfidence = 0.95
	DefaultPeriods    = 4
	MaxListLimit      = 100
)

// Config holds the runtime configuration for a dashboard invocation.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectsFile string
	QualityFile  string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Quarter string

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext
	Record            bool

	Confidence float64

	TrendSource     string
	TrendTimeColumn string
	TrendMetric     string
	TrendPeriods    int
}

// Clone returns a copy of the config. Handlers that override fields per
// request should clone first so the base config stays untouched.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Projects          string `mapstructure:"projects"`
	Quality           string `mapstructure:"quality"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Quarter           string `mapstructure:"quarter"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`

	// --- Fields from kpiCmd.Flags() ---
	Record bool `mapstructure:"record"`

	// --- Fields from predictCmd.Flags() ---
	Confidence float64 `mapstructure:"confidence"`

	// --- Fields from trendCmd.Flags() ---
	TrendSource     string `mapstructure:"source"`
	TrendTimeColumn string `mapstructure:"time-column"`
	TrendMetric     string `mapstructure:"metric"`
	TrendPeriods    int    `mapstructure:"periods"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := validateTrendInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ProjectsFile = input.Projects
	cfg.QualityFile = input.Quality
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Record = input.Record

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. File Validation ---
	if cfg.ProjectsFile == "" {
		return fmt.Errorf("projects file path cannot be empty")
	}
	if cfg.QualityFile == "" {
		return fmt.Errorf("quality file path cannot be empty")
	}

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Quarter Validation ---
	cfg.Quarter = strings.TrimSpace(input.Quarter)
	if cfg.Quarter == "" {
		cfg.Quarter = DefaultQuarter
	}

	// --- 4. Confidence Validation ---
	cfg.Confidence = input.Confidence
	if cfg.Confidence == 0 {
		cfg.Confidence = DefaultConfidence
	}
	if cfg.Confidence < 0.5 || cfg.Confidence > 0.99 {
		return fmt.Errorf("confidence must be between 0.50 and 0.99 (received %.2f)", cfg.Confidence)
	}

	return nil
}

// validateBackendConfig validates the snapshot backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidSnapshotBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}
	if cfg.Record && cfg.SnapshotBackend == schema.NoneBackend {
		return fmt.Errorf("--record requires a snapshot backend other than none")
	}
	return nil
}

// validateTrendInputs handles the trend command parameters.
func validateTrendInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TrendSource = strings.TrimSpace(input.TrendSource)
	cfg.TrendTimeColumn = strings.TrimSpace(input.TrendTimeColumn)
	cfg.TrendMetric = strings.TrimSpace(input.TrendMetric)

	cfg.TrendPeriods = input.TrendPeriods
	if cfg.TrendPeriods == 0 {
		cfg.TrendPeriods = DefaultPeriods
	}
	if cfg.TrendPeriods < 1 {
		return fmt.Errorf("--periods must be at least 1 (received %d)", input.TrendPeriods)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
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
