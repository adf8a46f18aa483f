package pipeline

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/partsinstall/internal/display"
	"github.com/backmassage/partsinstall/internal/naming"
	"github.com/backmassage/partsinstall/internal/planner"
)

// Progress observes a combine. Sizes are -1 when a part could not be
// stat'ed.
type Progress interface {
	PartStarted(index, total int, part planner.Part, size int64)
	PartDone(part planner.Part, copied int64)
	Finished(res CombineResult)
}

type nopProgress struct{}

func (nopProgress) PartStarted(int, int, planner.Part, int64) {}
func (nopProgress) PartDone(planner.Part, int64)             {}
func (nopProgress) Finished(CombineResult)                  {}

// barProgress logs each part and, on a terminal, also drives a part-count
// progress bar on out.
type barProgress struct {
	log Logger
	out io.Writer
	tty bool
	bar *progressbar.ProgressBar
}

// NewProgress returns the Progress used by Run. The bar is only drawn when
// tty is true; log lines are always written.
func NewProgress(log Logger, out io.Writer, tty bool) Progress {
	return &barProgress{log: log, out: out, tty: tty}
}

func partLine(index, total int, part planner.Part, size int64) string {
	sz := "unknown size"
	if size >= 0 {
		sz = display.FormatBytes(size)
	}
	return fmt.Sprintf("%d/%d: combining %s (%s)", index, total, naming.DisplayName(part.Name), sz)
}

func (p *barProgress) PartStarted(index, total int, part planner.Part, size int64) {
	line := partLine(index, total, part, size)
	if !p.tty {
		p.log.Info("%s", line)
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("Combining"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer: "█", SaucerHead: "█", SaucerPadding: "░",
				BarStart: "[", BarEnd: "]",
			}),
		)
	}
	p.bar.Describe(line)
	p.log.Debug("%s", line)
}

func (p *barProgress) PartDone(part planner.Part, copied int64) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
	p.log.Debug("Appended %s (%s)", naming.DisplayName(part.Name), display.FormatBytes(copied))
}

func (p *barProgress) Finished(res CombineResult) {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
