// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for 7-Zip and, on Windows, PowerShell.
package check

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/backmassage/partsinstall/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrSevenZipNotFound = errors.New("7z not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// RunCheck prints availability of 7-Zip and, on Windows, PowerShell. It
// returns false when something required for a run is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkSevenZip(cfg.SevenZip, log)
	if runtime.GOOS == "windows" {
		checkPowerShell(log)
	} else {
		log.Info("Shortcuts: not on Windows, start menu shortcuts are skipped")
	}
	return ok
}

// checkSevenZip verifies the 7-Zip binary is on PATH and logs its banner line.
func checkSevenZip(bin string, log Logger) bool {
	path, err := lookPath(bin)
	if err != nil {
		log.Error("%s not found", bin)
		return false
	}
	// 7z with no arguments prints its banner and usage, exiting 0.
	out, err := exec.Command(path).Output()
	if err != nil {
		log.Warn("%s found at %s but could not be run: %v", bin, path, err)
		return true
	}
	log.Success("7-Zip: %s", bannerLine(string(out)))
	return true
}

// checkPowerShell reports whether shortcut creation can work.
func checkPowerShell(log Logger) {
	if _, err := lookPath("powershell"); err != nil {
		log.Warn("powershell not found; shortcuts cannot be created")
		return
	}
	log.Success("powershell found")
}

// bannerLine returns the first non-empty line of 7-Zip's output.
func bannerLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return "(no version output)"
}

// CheckDeps is the pre-run validation: the configured 7-Zip binary must be
// on PATH.
func CheckDeps(cfg *config.Config) error {
	if _, err := lookPath(cfg.SevenZip); err != nil {
		return ErrSevenZipNotFound
	}
	return nil
}
