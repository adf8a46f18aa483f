package sevenzip

import (
	"errors"
	"fmt"
)

// Documented 7-Zip failures.
var (
	ErrFatal        = errors.New("7z encountered a fatal error")
	ErrCommandLine  = errors.New("7z: command line error")
	ErrOutOfMemory  = errors.New("7z: not enough memory for operation")
	ErrUserStopped  = errors.New("7z: user stopped the process")
	ErrUnknownExit  = errors.New("unknown 7z exit code")
	ErrNoExitStatus = errors.New("could not determine 7z's exit code")
)

// ExitError carries the exit code of a failed 7-Zip run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if errors.Is(e.Err, ErrUnknownExit) {
		return fmt.Sprintf("%v %d", e.Err, e.Code)
	}
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// CheckExit maps a 7-Zip exit code to nil (0 success, 1 warning) or an
// *ExitError wrapping one of the sentinels above.
func CheckExit(code int) error {
	var err error
	switch code {
	case 0, 1:
		return nil
	case 2:
		err = ErrFatal
	case 7:
		err = ErrCommandLine
	case 8:
		err = ErrOutOfMemory
	case 255:
		err = ErrUserStopped
	default:
		err = ErrUnknownExit
	}
	return &ExitError{Code: code, Err: err}
}

// IsWarning reports whether code is the non-fatal warning status.
func IsWarning(code int) bool { return code == 1 }
