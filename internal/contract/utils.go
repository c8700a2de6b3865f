package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/slotpulse/schema"
)

// Color variables for console output.
var (
	LowColor    = color.New(color.FgRed, color.Bold) // LowColor flags overstaffed buckets.
	NormalColor = color.New(color.FgCyan)            // NormalColor is the informational default.
	HighColor   = color.New(color.FgGreen, color.Bold)
	EmptyColor  = color.New(color.Faint)
)

// GetColorBand returns a colored band label for console output (table).
func GetColorBand(band schema.Band) string {
	text := string(band)

	switch band {
	case schema.LowBand:
		return LowColor.Sprint(text)
	case schema.HighBand:
		return HighColor.Sprint(text)
	case schema.NormalBand:
		return NormalColor.Sprint(text)
	default:
		return EmptyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for the result cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".slotpulse_cache.db"
	}
	return filepath.Join(homeDir, ".slotpulse_cache.db")
}

// GetRecordsDBFilePath returns the path to the SQLite DB file for the record store.
func GetRecordsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".slotpulse_records.db"
	}
	return filepath.Join(homeDir, ".slotpulse_records.db")
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

// ParseList splits a comma-separated value, dropping blanks and repeats.
func ParseList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}
