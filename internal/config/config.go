// Package config holds runtime configuration: defaults, CLI flag and
// environment binding, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultSortThreshold is the candidate count above which parts are re-sorted
// by their numeric suffix. Glob order is lexicographic, which only stays
// correct while every suffix has the same width and there are at most ten
// parts.
const DefaultSortThreshold = 10

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then overlaid by [Load] before being passed (by pointer) to packages that
// need it.
type Config struct {
	// Positional arguments.
	Name        string // File or directory naming the app to install.
	Destination string // Install root; the app lands in Destination/<app>.

	// Environment.
	WorkingDir string // Optional; the run chdirs here before resolving Name.

	// Behavior flags.
	NoShortcut    bool // Skip Start Menu shortcut creation.
	NoFlatten     bool // Skip flattening of a redundant nested directory.
	NoInteraction bool // Answer every prompt with the choice that continues.
	SortThreshold int  // Default: DefaultSortThreshold.

	// External tools.
	SevenZip string // Default: "7z".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// ConfigFile is the optional YAML/TOML/JSON file read by Load.
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		SortThreshold: DefaultSortThreshold,
		SevenZip:      "7z",
		ColorMode:     ColorAuto,
	}
}

// ParseColorMode converts user input into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}

// Validate checks enum and numeric fields. When not in CheckOnly mode it also
// requires a name and a destination.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.SortThreshold < 1 {
		return fmt.Errorf("sort threshold must be at least 1 (got %d)", c.SortThreshold)
	}
	if strings.TrimSpace(c.SevenZip) == "" {
		return errors.New("7z binary must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.Name == "" {
		return errors.New("need an app name")
	}
	if c.Destination == "" {
		return errors.New("need a destination (argument or pinst_destination)")
	}
	return nil
}

// ValidatePaths checks that the destination and optional working directory
// exist. It is separate from Validate so that unit tests of the pure checks
// don't need a filesystem.
func (c *Config) ValidatePaths() error {
	if c.WorkingDir != "" {
		if _, err := os.Stat(c.WorkingDir); err != nil {
			return fmt.Errorf("working directory %q does not exist", c.WorkingDir)
		}
	}
	fi, err := os.Stat(c.Destination)
	if err != nil {
		return fmt.Errorf("destination %q does not exist", c.Destination)
	}
	if !fi.IsDir() {
		return fmt.Errorf("destination %q is not a directory", c.Destination)
	}
	return nil
}
