package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/backmassage/partsinstall/internal/naming"
)

// ErrNoAppData is returned when %APPDATA% is not set.
var ErrNoAppData = errors.New("could not find environment variable APPDATA")

// Executables lists regular files in dir with an .exe extension (any case),
// in directory order.
func Executables(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".exe") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out
}

// FindExecutable picks the executable a shortcut should target. An empty
// result with a nil error means "skip the shortcut".
//
//   - none found: skip, or (interactive) ask for a path manually
//   - one whose name contains a word of appName: use it (interactive: confirm,
//     otherwise choose from the list)
//   - otherwise: the first executable found
func FindExecutable(appName, dest string, noInteraction bool, p Prompter, log Logger) (string, error) {
	exes := Executables(dest)

	if len(exes) == 0 {
		if noInteraction {
			log.Info("Could not find any installed executables.")
			return "", nil
		}
		ans, err := p.Ask("No installed executables could be found. (s)kip creating shortcut or (g)ive path manually? ")
		if err != nil {
			return "", err
		}
		if strings.ToLower(ans) != "g" {
			return "", nil
		}
		return p.Path(dest)
	}

	keywords := naming.Keywords(appName)
	var match string
	for _, exe := range exes {
		if naming.HasKeywords(keywords, filepath.Base(exe)) {
			match = exe
			break
		}
	}

	if match == "" {
		if len(exes) == 1 {
			log.Info("Found only 1 executable: %s", exes[0])
		} else {
			log.Info("No executable matches %q, using the first one: %s", appName, exes[0])
		}
		return filepath.Abs(exes[0])
	}

	if noInteraction {
		log.Info("Found executable %s", match)
		return filepath.Abs(match)
	}

	ok, err := p.Confirm(fmt.Sprintf("Found executable %q, is it correct?", match))
	if err != nil {
		return "", err
	}
	if ok {
		return filepath.Abs(match)
	}
	if len(exes) == 1 {
		log.Info("Found only 1 executable, cannot create shortcut.")
		return "", nil
	}

	log.Info("Executables found:")
	for i, exe := range exes {
		log.Info("%d: %s", i+1, exe)
	}
	choice, err := p.ChooseIndex(len(exes))
	if err != nil {
		return "", err
	}
	return filepath.Abs(exes[choice-1])
}

// StartMenuDir returns the per-user Start Menu programs folder under appData.
func StartMenuDir(appData string) string {
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs")
}

// psQuote renders s as a single-quoted PowerShell string literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ShortcutScript returns the PowerShell that writes a .lnk at shortcut
// pointing at target and starting in workDir.
func ShortcutScript(shortcut, target, workDir string) string {
	return strings.Join([]string{
		"$shortcut = (New-Object -COMObject WScript.Shell).CreateShortcut(" + psQuote(shortcut) + ");",
		"$shortcut.TargetPath = " + psQuote(target) + ";",
		"$shortcut.WorkingDirectory = " + psQuote(workDir) + ";",
		"$shortcut.Save()",
	}, "\n")
}

// runPowerShell runs script and returns its exit code. Swapped in tests.
var runPowerShell = func(ctx context.Context, script string) (int, error) {
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-c", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run powershell: %w", err)
	}
	return 0, nil
}

// CreateShortcut writes <Start Menu>/<appName>.lnk pointing at exe with dest
// as its working directory. PowerShell exit codes other than 0 are logged,
// not returned; errors are returned only when PowerShell could not run.
func CreateShortcut(ctx context.Context, appName, dest, exe string, log Logger) error {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ErrNoAppData
	}
	workDir, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	shortcut := filepath.Join(StartMenuDir(appData), appName+".lnk")

	code, err := runPowerShell(ctx, ShortcutScript(shortcut, exe, workDir))
	if err != nil {
		return err
	}
	switch code {
	case 0:
		log.Success("Successfully created shortcut to %s.", exe)
	case 1:
		log.Warn("Powershell encountered an uncaught error while creating the shortcut.")
	default:
		log.Warn("Powershell exit code: %d", code)
	}
	return nil
}
