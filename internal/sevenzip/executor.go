package sevenzip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// ExecResult holds the outcome of a single 7-Zip invocation.
type ExecResult struct {
	ExitCode int
	Elapsed  time.Duration
	Err      error // nil for exit codes 0 and 1.
}

// Runner runs 7-Zip with its stdio attached so its own progress and prompts
// reach the user.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultRunner is attached to the process's stdio.
func DefaultRunner() *Runner {
	return &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute runs args (as produced by Build) and classifies the exit code.
func (r *Runner) Execute(ctx context.Context, args []string) ExecResult {
	if len(args) == 0 {
		return ExecResult{ExitCode: -1, Err: errors.New("empty 7z command")}
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	start := time.Now()
	err := cmd.Run()
	res := ExecResult{Elapsed: time.Since(start)}

	if err == nil {
		return res
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		res.ExitCode = -1
		res.Err = fmt.Errorf("could not run %s: %w", args[0], err)
		return res
	}
	res.ExitCode = exitErr.ExitCode()
	if res.ExitCode < 0 {
		// Killed by a signal (e.g. context cancellation).
		res.Err = fmt.Errorf("%w: %v", ErrNoExitStatus, err)
		return res
	}
	res.Err = CheckExit(res.ExitCode)
	return res
}
