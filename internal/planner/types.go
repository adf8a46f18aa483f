package planner

import (
	"errors"
	"os"

	"github.com/backmassage/partsinstall/internal/naming"
	"github.com/backmassage/partsinstall/internal/prompt"
)

// Sentinel errors returned by Plan and Order.
var (
	ErrNoParts      = errors.New("no candidate files")
	ErrNoPartNumber = errors.New("no numeric part suffix")
	ErrNoExtension  = errors.New("could not determine output file extension")
	ErrDeclined     = prompt.ErrDeclined
)

// Part is one discovered file believed to be a fragment of a split archive.
type Part struct {
	Path      string
	Name      string // File name of Path.
	Number    uint32 // Numeric suffix; valid when HasNumber.
	HasNumber bool
	Extension string // First non-numeric extension segment ("7z"), may be empty.
}

// NewPart describes the file at path. It never touches the filesystem.
func NewPart(path string) Part {
	p := Part{Path: path}
	p.Name, _ = naming.FileName(path)
	if n, err := PartNumber(path); err == nil {
		p.Number, p.HasNumber = n, true
	}
	if ext, err := FinalExtension(p.Name); err == nil {
		p.Extension = ext
	}
	return p
}

// CombinePlan is the outcome of planning, consumed exactly once by the
// combiner and the extraction step.
type CombinePlan struct {
	Parts      []Part // Ordered; ignored when Skip is set.
	SetAside   []Part // Previously combined outputs found among the candidates.
	OutputName string
	OutputPath string // File handed to extraction.

	// Single is set when only one file was found; it is extracted as is.
	Single bool
	// Skip is set when OutputPath already existed and is reused as is.
	Skip bool

	// Output is the exclusively created output file; nil when Single or Skip.
	Output *os.File
}

// NeedsCombine reports whether the parts must be concatenated into Output.
func (p *CombinePlan) NeedsCombine() bool {
	return !p.Single && !p.Skip && p.Output != nil
}

// Discard closes Output and removes the partially written file. It is a
// no-op for plans that did not create an output.
func (p *CombinePlan) Discard() error {
	if p.Output == nil {
		return nil
	}
	_ = p.Output.Close()
	p.Output = nil
	return os.Remove(p.OutputPath)
}
