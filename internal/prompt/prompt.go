// Package prompt reads interactive answers from an injected input source.
//
// Every question re-asks on unparsable input, up to MaxAttempts, so tests can
// drive it with canned input and a closed stdin cannot spin forever.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultMaxAttempts bounds re-asking on unparsable input.
const DefaultMaxAttempts = 100

var (
	// ErrInputAborted signals that the input source was closed (EOF).
	ErrInputAborted = errors.New("input aborted")
	// ErrTooManyAttempts is returned when MaxAttempts answers were unparsable.
	ErrTooManyAttempts = errors.New("too many invalid answers")
	// ErrDeclined is returned by callers when the user answered "no" to a
	// question that gates the rest of the run.
	ErrDeclined = errors.New("declined by user")
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	MaxAttempts int
}

// New returns a Prompter reading from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Stdio returns a Prompter bound to the process's stdin and stdout.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

// readLine reads one line and trims surrounding whitespace. A final line
// without a newline is still returned; EOF with no data is ErrInputAborted.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", mapInputError(err)
	}
	return strings.TrimSpace(line), nil
}

// mapInputError normalizes EOF and closed-file errors into ErrInputAborted.
func mapInputError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return ErrInputAborted
	}
	return err
}

// ask prints question, then reads answers until parse accepts one.
func (p *Prompter) ask(question string, parse func(string) bool) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		fmt.Fprint(p.out, question)
		line, err := p.readLine()
		if err != nil {
			return err
		}
		if parse(line) {
			return nil
		}
	}
	return ErrTooManyAttempts
}

// Confirm asks a yes/no question. "y" and "yes" (any case) are true, "n" and
// "no" are false; anything else is asked again.
func (p *Prompter) Confirm(question string) (bool, error) {
	var answer bool
	err := p.ask(question+" (y/n): ", func(s string) bool {
		switch strings.ToLower(s) {
		case "y", "yes":
			answer = true
			return true
		case "n", "no":
			answer = false
			return true
		}
		return false
	})
	return answer, err
}

// ChooseIndex asks for a number in [1, max].
func (p *Prompter) ChooseIndex(max int) (int, error) {
	if max < 1 {
		return 0, fmt.Errorf("nothing to choose from (max %d)", max)
	}
	var choice int
	err := p.ask("Choice: ", func(s string) bool {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > max {
			return false
		}
		choice = n
		return true
	})
	return choice, err
}

// Ask prints question and returns the trimmed answer, which may be empty.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	return p.readLine()
}

// Path asks for a path relative to start and re-asks until it names an
// existing file or directory. The absolute path is returned.
func (p *Prompter) Path(start string) (string, error) {
	var result string
	err := p.ask("Path: "+start+string(filepath.Separator), func(s string) bool {
		if s == "" {
			return false
		}
		candidate := s
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(start, s)
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return false
		}
		if _, err := os.Stat(abs); err != nil {
			return false
		}
		result = abs
		return true
	})
	return result, err
}
