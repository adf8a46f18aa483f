// Package term holds the ANSI color codes used by logging and display, and
// terminal detection.
//
// The codes are package variables set once by [Configure]; disabled colors
// are empty strings, so callers concatenate them unconditionally.
package term

import (
	"os"
	"strings"

	xterm "golang.org/x/term"

	"github.com/backmassage/partsinstall/internal/config"
)

// Color codes by role: Red errors, Green success, Yellow warnings, Blue
// info, Cyan debug, Magenta the banner. NC resets.
var (
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Cyan    string
	Magenta string
	NC      string
)

type palette struct {
	red, green, yellow, blue, cyan, magenta, reset string
}

var ansi = palette{
	red:     "\033[1;91m",
	green:   "\033[1;92m",
	yellow:  "\033[1;93m",
	blue:    "\033[1;94m",
	cyan:    "\033[1;96m",
	magenta: "\033[1;95m",
	reset:   "\033[0m",
}

func (p palette) use() {
	Red, Green, Yellow, Blue = p.red, p.green, p.yellow, p.blue
	Cyan, Magenta, NC = p.cyan, p.magenta, p.reset
}

// Configure turns colors on or off for mode, looking at stdout and the
// process environment in auto mode.
func Configure(mode config.ColorMode) {
	if ColorsEnabled(mode, IsTerminal(os.Stdout), os.Getenv) {
		ansi.use()
		return
	}
	palette{}.use()
}

// Enabled reports whether colors are on.
func Enabled() bool { return NC != "" }

// ColorsEnabled decides the color mode. Auto means on for a terminal unless
// NO_COLOR is set (https://no-color.org) or TERM is "dumb".
func ColorsEnabled(mode config.ColorMode, tty bool, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return tty && getenv("NO_COLOR") == "" && !strings.EqualFold(getenv("TERM"), "dumb")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && xterm.IsTerminal(int(f.Fd()))
}
