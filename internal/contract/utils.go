package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Ownership label constants.
const (
	DominantValue  = "Dominant"  // Seller holds the buybox almost always
	StrongValue    = "Strong"    // Seller holds the buybox most days
	ContestedValue = "Contested" // Ownership flips between sellers
	MinorValue     = "Minor"     // Seller rarely holds the buybox
	NoDataValue    = "No data"   // Nothing sampled in the period
)

// Color variables for console output.
var (
	DominantColor  = color.New(color.FgGreen, color.Bold) // dominantColor signals a safely held buybox.
	StrongColor    = color.New(color.FgCyan)              // strongColor signals a mostly held buybox.
	ContestedColor = color.New(color.FgYellow)            // contestedColor signals active competition.
	MinorColor     = color.New(color.FgRed, color.Bold)   // minorColor signals a lost buybox.
)

// GetPlainShareLabel returns a plain text label for a day-based ownership
// share percentage. This is the core logic used for CSV, JSON, and table
// printing. A nil share means the period had no sampled days.
func GetPlainShareLabel(share *float64) string {
	if share == nil {
		return NoDataValue
	}
	switch {
	case *share >= 80:
		return DominantValue
	case *share >= 50:
		return StrongValue
	case *share >= 20:
		return ContestedValue
	default:
		return MinorValue
	}
}

// GetColorShareLabel returns a colored text label for console output (table).
// It uses GetPlainShareLabel to determine the string, and then applies the
// appropriate color.
func GetColorShareLabel(share *float64) string {
	text := GetPlainShareLabel(share)

	switch text {
	case DominantValue:
		return DominantColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ContestedValue:
		return ContestedColor.Sprint(text)
	case MinorValue:
		return MinorColor.Sprint(text)
	default: // "No data"
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path and format type. It falls back to os.Stdout on error.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for product
// response cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keepwatch_cache.db"
	}
	return filepath.Join(homeDir, ".keepwatch_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keepwatch_analysis.db"
	}
	return filepath.Join(homeDir, ".keepwatch_analysis.db")
}

// GetASINFilePath returns the path to the JSON file holding saved ASIN lists.
func GetASINFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keepwatch_asins.json"
	}
	return filepath.Join(homeDir, ".keepwatch_asins.json")
}

// TruncateTitle truncates a product title to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and
// at least one character of content.
func TruncateTitle(title string, maxWidth int) string {
	runes := []rune(title)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return title
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
