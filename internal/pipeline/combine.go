package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/partsinstall/internal/planner"
)

// CombineResult summarizes a finished (or failed) combine.
type CombineResult struct {
	Elapsed     time.Duration
	BytesCopied int64
	Parts       int // Parts copied completely.
}

// Combine appends every part, in order, to out. The first failure stops the
// combine and is returned with the offending part's path; the caller owns
// out and must discard it. A nil progress is allowed.
func Combine(parts []planner.Part, out io.Writer, progress Progress) (CombineResult, error) {
	return CombineContext(context.Background(), parts, out, progress)
}

// CombineContext is Combine that stops with ctx.Err() once ctx is done, also
// in the middle of a part.
func CombineContext(ctx context.Context, parts []planner.Part, out io.Writer, progress Progress) (CombineResult, error) {
	if progress == nil {
		progress = nopProgress{}
	}

	var res CombineResult
	start := time.Now()
	for i, part := range parts {
		size := int64(-1)
		if fi, err := os.Stat(part.Path); err == nil {
			size = fi.Size()
		}
		progress.PartStarted(i+1, len(parts), part, size)

		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		n, err := appendPart(ctx, part.Path, out)
		res.BytesCopied += n
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		res.Parts++
		progress.PartDone(part, n)
	}
	res.Elapsed = time.Since(start)
	progress.Finished(res)
	return res, nil
}

// appendPart copies the file at path to out.
func appendPart(ctx context.Context, path string, out io.Writer) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open part %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if ctx.Done() != nil {
		src = ctxReader{ctx: ctx, r: f}
	}
	n, err := io.Copy(out, src)
	if ctx.Err() != nil {
		return n, ctx.Err()
	}
	if err != nil {
		return n, fmt.Errorf("could not append part %s: %w", path, err)
	}
	return n, nil
}

// ctxReader fails reads once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
