// Package install holds the steps that run after an archive is ready:
// preparing the destination directory, flattening a redundant nested
// directory after extraction, and creating a Start Menu shortcut on Windows.
//
// Flattening and shortcuts are best-effort. Failures on single entries are
// logged and skipped; only destination errors stop a run.
package install

import "github.com/backmassage/partsinstall/internal/prompt"

// ErrDeclined is returned when the user answers no to a gating question.
var ErrDeclined = prompt.ErrDeclined

// Logger is the logging surface used by this package.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Debug(string, ...interface{})
}

// Prompter is the interactive surface used by this package.
type Prompter interface {
	Confirm(question string) (bool, error)
	ChooseIndex(max int) (int, error)
	Ask(question string) (string, error)
	Path(start string) (string, error)
}
