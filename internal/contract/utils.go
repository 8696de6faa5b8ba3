package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/miradorhq/mirador/schema"
)

// Color variables for console output.
var (
	HealthyColor  = color.New(color.FgGreen)              // healthy / on-track signal.
	WarningColor  = color.New(color.FgYellow)             // standard caution, not bold.
	CriticalColor = color.New(color.FgRed, color.Bold)    // criticalColor represents standard danger.
	NeutralColor  = color.New(color.FgCyan)               // informational / no-data signal.
	RiskHighColor = color.New(color.FgMagenta, color.Bold) // strong, distinct warning for QA risk.
)

// StatusColorLabel returns a colored label for console output (table).
// It maps both KPI statuses and OKR statuses onto the shared palette.
func StatusColorLabel(status schema.Status) string {
	text := string(status)
	switch status {
	case schema.StatusHealthy, schema.StatusOnTrack:
		return HealthyColor.Sprint(text)
	case schema.StatusWarning, schema.StatusAtRisk:
		return WarningColor.Sprint(text)
	case schema.StatusCritical, schema.StatusOffTrack:
		return CriticalColor.Sprint(text)
	default: // "No data", "No OKRs"
		return NeutralColor.Sprint(text)
	}
}

// RiskColorLabel returns a colored label for QA risk levels.
func RiskColorLabel(level schema.RiskLevel) string {
	text := string(level)
	switch level {
	case schema.RiskLow:
		return HealthyColor.Sprint(text)
	case schema.RiskMedium:
		return WarningColor.Sprint(text)
	default:
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mirador_snapshots.db"
	}
	return filepath.Join(homeDir, ".mirador_snapshots.db")
}

// TruncateText truncates a text cell to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and
// at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
