package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/backmassage/partsinstall/internal/config"
	"github.com/backmassage/partsinstall/internal/display"
	"github.com/backmassage/partsinstall/internal/install"
	"github.com/backmassage/partsinstall/internal/naming"
	"github.com/backmassage/partsinstall/internal/planner"
	"github.com/backmassage/partsinstall/internal/prompt"
	"github.com/backmassage/partsinstall/internal/sevenzip"
	"github.com/backmassage/partsinstall/internal/term"
)

// ErrNoCandidates is returned when no file in the search root starts with the
// app name.
var ErrNoCandidates = errors.New("no candidate files found")

// Logger is the logging surface Run needs; *logging.Logger satisfies it.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Extractor runs a 7-Zip argv; *sevenzip.Runner satisfies it.
type Extractor interface {
	Execute(ctx context.Context, args []string) sevenzip.ExecResult
}

// Env holds the collaborators of a run. Zero fields get process defaults.
type Env struct {
	Prompter  install.Prompter
	Extractor Extractor
	Progress  Progress
	Out       io.Writer // Progress bar output; default os.Stdout.
}

// shortcutsSupported gates the Start Menu step. Swapped in tests.
var shortcutsSupported = runtime.GOOS == "windows"

// Run installs cfg.Name into cfg.Destination. Phases run in order and the
// first fatal error is returned. ctx is checked between phases and during
// the combine, and kills 7-Zip.
//
// Flow:
//  1. Resolve the app name and search root, discover candidate parts
//  2. Plan: single file, reuse of an existing archive, or a fresh combine
//  3. Combine the parts (output removed on failure)
//  4. Create <destination>/<app> and extract with 7-Zip
//  5. Flatten a redundant inner directory (unless --no-flatten)
//  6. Start Menu shortcut on Windows (unless --no-shortcut); never fatal
func Run(ctx context.Context, cfg *config.Config, log Logger, env Env) (RunStats, error) {
	var stats RunStats
	start := time.Now()
	env = withDefaults(env, log)

	// --- Resolve and discover ---
	appName, err := naming.ResolveAppName(cfg.Name)
	if err != nil {
		return stats, fmt.Errorf("invalid name %q: %w", cfg.Name, err)
	}
	stats.AppName = appName
	root := SearchRoot(cfg.Name)
	log.Info("App name: %s", naming.DisplayName(appName))
	log.Debug("Searching %s", root)

	paths, err := discover(root, appName, func(p string, err error) {
		log.Warn("Skipping %s: %v", p, err)
	})
	if err != nil {
		return stats, fmt.Errorf("could not search %s: %w", root, err)
	}
	if len(paths) == 0 {
		return stats, fmt.Errorf("%w for %q in %s", ErrNoCandidates, appName, root)
	}
	stats.Candidates = len(paths)
	for _, p := range paths {
		log.Debug("Candidate: %s", p)
	}

	// --- Plan ---
	plan, err := planner.Plan(appName, paths, planner.Options{
		Dir:           root,
		NoInteraction: cfg.NoInteraction,
		SortThreshold: cfg.SortThreshold,
		Prompter:      env.Prompter,
	})
	if err != nil {
		return stats, err
	}
	for _, p := range plan.SetAside {
		log.Info("Ignoring previously combined %s", naming.DisplayName(p.Name))
	}

	// --- Combine ---
	switch {
	case plan.NeedsCombine():
		if err := combine(ctx, plan, env.Progress, log, &stats); err != nil {
			return stats, err
		}
	case plan.Skip:
		stats.Reused = true
		log.Info("Reusing existing %s", naming.DisplayName(plan.OutputName))
	default:
		log.Info("Extracting %s directly", naming.DisplayName(plan.OutputName))
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	// --- Extract ---
	appDest := filepath.Join(cfg.Destination, appName)
	if err := install.CreateDestination(appDest, cfg.NoInteraction, env.Prompter, log); err != nil {
		return stats, err
	}
	args := sevenzip.Build(sevenzip.Options{
		Binary:        cfg.SevenZip,
		NoInteraction: cfg.NoInteraction,
	}, plan.OutputPath, appDest)
	log.Info("Extracting to %s", appDest)
	log.Debug("Running: %s", strings.Join(args, " "))

	res := env.Extractor.Execute(ctx, args)
	stats.ExtractTime = res.Elapsed
	if res.Err != nil {
		return stats, fmt.Errorf("extraction failed: %w", res.Err)
	}
	if sevenzip.IsWarning(res.ExitCode) {
		log.Warn("7-Zip finished with warnings")
	} else {
		log.Success("Extracted in %s", display.FormatDuration(res.Elapsed))
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	// --- Flatten ---
	if !cfg.NoFlatten {
		t := time.Now()
		install.Flatten(appName, appDest, log)
		stats.FlattenTime = time.Since(t)
	}

	// --- Shortcut ---
	if !cfg.NoShortcut && shortcutsSupported {
		stats.Shortcut = shortcut(ctx, cfg, appName, appDest, env.Prompter, log)
	}
	stats.Total = time.Since(start)
	return stats, nil
}

// withDefaults fills unset collaborators with ones bound to the process.
func withDefaults(env Env, log Logger) Env {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Prompter == nil {
		env.Prompter = prompt.Stdio()
	}
	if env.Extractor == nil {
		env.Extractor = sevenzip.DefaultRunner()
	}
	if env.Progress == nil {
		tty := false
		if f, ok := env.Out.(*os.File); ok {
			tty = term.IsTerminal(f)
		}
		env.Progress = NewProgress(log, env.Out, tty)
	}
	return env
}

// combine writes plan.Parts into plan.Output and closes it. On any failure
// the partial output is removed.
func combine(ctx context.Context, plan *planner.CombinePlan, progress Progress, log Logger, stats *RunStats) error {
	log.Info("Combining %d parts into %s", len(plan.Parts), naming.DisplayName(plan.OutputName))

	res, err := CombineContext(ctx, plan.Parts, plan.Output, progress)
	stats.CombineTime = res.Elapsed
	stats.BytesCopied = res.BytesCopied
	stats.Parts = res.Parts
	if err != nil {
		if derr := plan.Discard(); derr != nil {
			log.Warn("Could not remove partial output %s: %v", plan.OutputPath, derr)
		}
		return err
	}

	out := plan.Output
	plan.Output = nil
	if err := out.Close(); err != nil {
		_ = os.Remove(plan.OutputPath)
		return fmt.Errorf("could not finish %s: %w", plan.OutputPath, err)
	}
	stats.Combined = true
	log.Success("Combined %s in %s (%s)",
		display.FormatBytes(res.BytesCopied),
		display.FormatDuration(res.Elapsed),
		display.FormatRate(res.BytesCopied, res.Elapsed))
	return nil
}

// shortcut picks an executable and creates the Start Menu entry. Failures
// are logged; the returned target is empty when nothing was created.
func shortcut(ctx context.Context, cfg *config.Config, appName, appDest string, p install.Prompter, log Logger) string {
	exe, err := install.FindExecutable(appName, appDest, cfg.NoInteraction, p, log)
	if err != nil {
		log.Warn("Not creating shortcut: %v", err)
		return ""
	}
	if exe == "" {
		return ""
	}
	if err := install.CreateShortcut(ctx, appName, appDest, exe, log); err != nil {
		log.Warn("Could not create shortcut: %v", err)
		return ""
	}
	return exe
}
