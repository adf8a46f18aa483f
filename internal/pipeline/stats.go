package pipeline

import (
	"fmt"
	"time"

	"github.com/backmassage/partsinstall/internal/display"
)

// RunStats holds per-phase timings and totals for one run.
type RunStats struct {
	AppName     string
	Candidates  int
	Combined    bool // Parts were concatenated in this run.
	Reused      bool // An existing combined archive was extracted.
	Parts       int
	BytesCopied int64

	CombineTime time.Duration
	ExtractTime time.Duration
	FlattenTime time.Duration
	Total       time.Duration

	Shortcut string // Target of the created shortcut, if any.
}

// Summary renders the final line printed after a successful run.
func (s *RunStats) Summary() string {
	return fmt.Sprintf("Done! (combining took %s, extracting took %s, flattening took %s, total: %s)",
		display.FormatDuration(s.CombineTime),
		display.FormatDuration(s.ExtractTime),
		display.FormatDuration(s.FlattenTime),
		display.FormatDuration(s.Total))
}
