// Command partsinstall recombines a split archive (App.7z.001, App.7z.002,
// ...), extracts it with 7-Zip into <destination>/<app>, flattens a
// redundant inner directory and, on Windows, adds a Start Menu shortcut.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/backmassage/partsinstall/internal/check"
	"github.com/backmassage/partsinstall/internal/config"
	"github.com/backmassage/partsinstall/internal/display"
	"github.com/backmassage/partsinstall/internal/logging"
	"github.com/backmassage/partsinstall/internal/pipeline"
	"github.com/backmassage/partsinstall/internal/prompt"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

// Process exit codes.
const (
	exitOK      = 0
	exitStopped = 1 // Declined prompt or nothing to install.
	exitFatal   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	code := exitOK
	cmd := newRootCmd(&code)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "partsinstall: %v\n", err)
		return exitFatal
	}
	return code
}

func newRootCmd(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partsinstall [flags] <name> [destination]",
		Short: "Combine split archive parts, extract them and install the app",
		Long: `partsinstall finds every file starting with the app name, joins the parts
in order into <app>.<ext>, extracts it with 7-Zip into <destination>/<app>
and tidies the result.

The destination may also come from the pinst_destination environment
variable. Every flag can be set as PINST_<FLAG> or in a --config file.`,
		Args:          cobra.MaximumNArgs(2),
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = execute(cmd, args)
			return nil
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

// execute runs one install and returns the process exit code.
func execute(cmd *cobra.Command, args []string) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg, err := config.Load(viper.New(), cmd.Flags(), args)
	if err != nil {
		return fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		return fatal(err)
	}
	if !cfg.CheckOnly {
		if err := cfg.ValidatePaths(); err != nil {
			return fatal(err)
		}
		// The destination is given relative to where the user ran us, not
		// to the working directory.
		if cfg.Destination, err = filepath.Abs(cfg.Destination); err != nil {
			return fatal(err)
		}
		if cfg.WorkingDir != "" {
			if err := os.Chdir(cfg.WorkingDir); err != nil {
				return fatal(fmt.Errorf("could not change to working directory: %w", err))
			}
		}
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return fatal(err)
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return exitFatal
		}
		return exitOK
	}

	log.Debug("partsinstall %s (%s)", version, commit)
	if cfg.ConfigFile != "" {
		log.Debug("Config file: %s", cfg.ConfigFile)
	}
	if err := check.CheckDeps(&cfg); err != nil {
		return fatal(err)
	}

	// Phase 3: The first SIGINT/SIGTERM cancels ctx: 7-Zip is killed and a
	// partial combine is removed. A run still blocked after interruptGrace
	// (e.g. at a prompt) is terminated; a second signal terminates at once.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	defer close(done)
	go watchInterrupt(sigCh, done, cancel, interruptGrace, log, os.Exit)

	// Phase 4: Run.
	stats, err := pipeline.Run(ctx, &cfg, log, pipeline.Env{})
	if code := exitCode(err); code != exitOK {
		if code == exitStopped {
			log.Warn("%v", err)
			return code
		}
		return fatal(err)
	}
	log.Success("%s", stats.Summary())
	return exitOK
}

// exitCode maps a run error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, prompt.ErrDeclined),
		errors.Is(err, prompt.ErrInputAborted),
		errors.Is(err, pipeline.ErrNoCandidates):
		return exitStopped
	default:
		return exitFatal
	}
}

// interruptGrace is how long a cancelled run may take to wind down.
const interruptGrace = 3 * time.Second

// watchInterrupt waits for a signal on sigCh, then stops intercepting
// signals, cancels the run and calls exit(exitFatal) unless done is closed
// within grace.
func watchInterrupt(sigCh chan os.Signal, done <-chan struct{}, cancel context.CancelFunc,
	grace time.Duration, log interface{ Warn(string, ...interface{}) }, exit func(int)) {
	select {
	case <-sigCh:
	case <-done:
		signal.Stop(sigCh)
		return
	}
	signal.Stop(sigCh)
	log.Warn("Received interrupt, stopping")
	cancel()

	select {
	case <-done:
	case <-time.After(grace):
		fmt.Fprintln(os.Stderr, "partsinstall: interrupted")
		exit(exitFatal)
	}
}

func fatal(err error) int {
	fmt.Fprintf(os.Stderr, "partsinstall: %v\n", err)
	return exitFatal
}
