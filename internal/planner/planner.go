package planner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/partsinstall/internal/naming"
)

// Prompter asks the user a yes/no question. It is only consulted when
// Options.NoInteraction is false.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Options controls Plan.
type Options struct {
	Dir           string // Directory the combined output is created in.
	NoInteraction bool
	SortThreshold int
	Prompter      Prompter
}

// Plan decides how the candidate files for appName become a single archive.
//
// Flow:
//  1. Set aside a previously combined <app>.<archive ext> found next to parts
//  2. One file: extract it directly (confirm when interactive)
//  3. Several files: order them, derive <app>.<ext> from the first part
//  4. Create the output exclusively; an existing file is reused (confirm
//     when interactive) and never overwritten
func Plan(appName string, paths []string, opts Options) (*CombinePlan, error) {
	if len(paths) == 0 {
		return nil, ErrNoParts
	}

	parts := make([]Part, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, NewPart(p))
	}
	parts, setAside := setAsidePrevious(appName, parts)

	if len(parts) == 1 {
		plan := &CombinePlan{
			Parts:      parts,
			SetAside:   setAside,
			OutputName: parts[0].Name,
			OutputPath: parts[0].Path,
			Single:     true,
		}
		if !opts.NoInteraction {
			q := fmt.Sprintf("Only 1 file found, extract %q?", naming.DisplayName(parts[0].Name))
			if err := confirm(opts.Prompter, q); err != nil {
				return nil, err
			}
		}
		return plan, nil
	}

	ordered, err := Order(parts, opts.SortThreshold)
	if err != nil {
		return nil, err
	}

	ext, err := partExtension(appName, ordered[0].Name)
	if err != nil {
		return nil, err
	}

	plan := &CombinePlan{
		Parts:      ordered,
		SetAside:   setAside,
		OutputName: appName + "." + ext,
	}
	plan.OutputPath = filepath.Join(opts.Dir, plan.OutputName)

	f, err := os.OpenFile(plan.OutputPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case err == nil:
		plan.Output = f
	case errors.Is(err, fs.ErrExist):
		if !opts.NoInteraction {
			q := fmt.Sprintf("File %q already exists, extract it?", naming.DisplayName(plan.OutputName))
			if err := confirm(opts.Prompter, q); err != nil {
				return nil, err
			}
		}
		plan.Skip = true
	default:
		return nil, fmt.Errorf("file %s was unable to be created: %w", plan.OutputPath, err)
	}
	return plan, nil
}

// confirm asks q and maps "no" to ErrDeclined.
func confirm(p Prompter, q string) error {
	if p == nil {
		return fmt.Errorf("%s: no prompter available", q)
	}
	ok, err := p.Confirm(q)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}

// setAsidePrevious removes candidates named exactly <app>.<archive ext>
// (the output of an earlier combine) when at least two other parts remain.
func setAsidePrevious(appName string, parts []Part) (kept, previous []Part) {
	if len(parts) < 3 {
		return parts, nil
	}
	for _, p := range parts {
		if isCombinedOutput(appName, p) {
			previous = append(previous, p)
		} else {
			kept = append(kept, p)
		}
	}
	if len(kept) < 2 {
		return parts, nil
	}
	return kept, previous
}

func isCombinedOutput(appName string, p Part) bool {
	if p.HasNumber {
		return false
	}
	ext, ok := naming.Ext(p.Name)
	return ok && naming.IsArchiveExtension(ext) && naming.Stem(p.Name) == appName
}
