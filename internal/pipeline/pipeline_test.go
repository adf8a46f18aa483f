package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/partsinstall/internal/config"
	"github.com/backmassage/partsinstall/internal/logging"
	"github.com/backmassage/partsinstall/internal/planner"
	"github.com/backmassage/partsinstall/internal/prompt"
	"github.com/backmassage/partsinstall/internal/sevenzip"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

// --- Discover tests ---

func TestDiscover_PrefixMatchSorted(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "App.7z.002", "b")
	write(t, dir, "App.7z.001", "a")
	write(t, dir, "Other.7z.001", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "App"), 0o755))

	files, err := Discover(dir, "App")
	require.NoError(t, err)
	assert.Equal(t, []string{"App.7z.001", "App.7z.002"}, basenames(files))
}

func TestDiscover_NoMatches(t *testing.T) {
	files, err := Discover(t.TempDir(), "App")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_EscapesGlobCharacters(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Game [v1].7z.001", "a")
	write(t, dir, "Game v.7z.001", "b")

	files, err := Discover(dir, "Game [v1]")
	require.NoError(t, err)
	assert.Equal(t, []string{"Game [v1].7z.001"}, basenames(files))
}

func TestDiscover_SkipsBrokenSymlinks(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "App.7z.001", "a")
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "App.7z.002")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var skipped []string
	files, err := discover(dir, "App", func(p string, _ error) { skipped = append(skipped, p) })
	require.NoError(t, err)
	assert.Equal(t, []string{"App.7z.001"}, basenames(files))
	assert.Equal(t, []string{"App.7z.002"}, basenames(skipped))
}

func TestSearchRoot(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "App.7z.001", "a")

	assert.Equal(t, dir, SearchRoot(dir))
	assert.Equal(t, dir, SearchRoot(file))
	assert.Equal(t, ".", SearchRoot("App"))
}

// --- Combine tests ---

type recProgress struct {
	started  []string
	done     int
	finished bool
}

func (r *recProgress) PartStarted(i, n int, p planner.Part, size int64) {
	r.started = append(r.started, partLine(i, n, p, size))
}
func (r *recProgress) PartDone(planner.Part, int64)  { r.done++ }
func (r *recProgress) Finished(CombineResult)        { r.finished = true }

func TestCombine_Concatenates(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "App.7z.001", "hello ")
	b := write(t, dir, "App.7z.002", "world")

	var out bytes.Buffer
	prog := &recProgress{}
	res, err := Combine([]planner.Part{planner.NewPart(a), planner.NewPart(b)}, &out, prog)
	require.NoError(t, err)

	assert.Equal(t, "hello world", out.String())
	assert.Equal(t, int64(11), res.BytesCopied)
	assert.Equal(t, 2, res.Parts)
	assert.Equal(t, []string{
		"1/2: combining App.7z.001 (6 B)",
		"2/2: combining App.7z.002 (5 B)",
	}, prog.started)
	assert.Equal(t, 2, prog.done)
	assert.True(t, prog.finished)
}

func TestCombine_MissingPart(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "App.7z.001", "abc")
	missing := filepath.Join(dir, "App.7z.002")

	var out bytes.Buffer
	prog := &recProgress{}
	res, err := Combine([]planner.Part{planner.NewPart(a), planner.NewPart(missing)}, &out, prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Equal(t, 1, res.Parts)
	assert.False(t, prog.finished)
	assert.Contains(t, prog.started[1], "unknown size")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCombine_WriteFailure(t *testing.T) {
	a := write(t, t.TempDir(), "App.7z.001", "abc")
	_, err := Combine([]planner.Part{planner.NewPart(a)}, failWriter{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunStats_Summary(t *testing.T) {
	s := RunStats{}
	assert.Equal(t, "Done! (combining took 0s, extracting took 0s, flattening took 0s, total: 0s)", s.Summary())
}

// --- Run tests ---

// fakeExtractor records argv and writes files into the -o directory.
type fakeExtractor struct {
	args  []string
	files map[string]string
	res   sevenzip.ExecResult
}

func (f *fakeExtractor) Execute(_ context.Context, args []string) sevenzip.ExecResult {
	f.args = args
	var dest string
	for _, a := range args {
		if strings.HasPrefix(a, "-o") {
			dest = strings.TrimPrefix(a, "-o")
		}
	}
	for name, content := range f.files {
		p := filepath.Join(dest, name)
		_ = os.MkdirAll(filepath.Dir(p), 0o755)
		_ = os.WriteFile(p, []byte(content), 0o644)
	}
	return f.res
}

type runFixture struct {
	src  string
	dest string
	cfg  config.Config
	log  *logging.Logger
	out  *bytes.Buffer
}

func newRunFixture(t *testing.T) *runFixture {
	t.Helper()
	f := &runFixture{src: t.TempDir(), dest: t.TempDir(), out: &bytes.Buffer{}}
	f.cfg = config.DefaultConfig()
	f.cfg.ColorMode = config.ColorNever
	f.cfg.NoInteraction = true
	f.cfg.NoShortcut = true
	f.cfg.Destination = f.dest

	log, err := logging.NewLogger(&f.cfg)
	require.NoError(t, err)
	log.SetOutput(f.out)
	f.log = log
	return f
}

func (f *runFixture) run(ext *fakeExtractor, p *prompt.Prompter) (RunStats, error) {
	env := Env{Extractor: ext, Out: io.Discard}
	if p != nil {
		env.Prompter = p
	}
	return Run(context.Background(), &f.cfg, f.log, env)
}

func TestRun_CombinesExtractsAndFlattens(t *testing.T) {
	f := newRunFixture(t)
	first := write(t, f.src, "App.7z.001", "AAA")
	write(t, f.src, "App.7z.002", "BB")
	f.cfg.Name = first

	ext := &fakeExtractor{files: map[string]string{"App/app.exe": "bin"}}
	stats, err := f.run(ext, nil)
	require.NoError(t, err)

	combined := filepath.Join(f.src, "App.7z")
	b, err := os.ReadFile(combined)
	require.NoError(t, err)
	assert.Equal(t, "AAABB", string(b))

	appDest := filepath.Join(f.dest, "App")
	assert.Equal(t, []string{"7z", "x", "-o" + appDest, "-y", combined}, ext.args)
	assert.FileExists(t, filepath.Join(appDest, "app.exe"))
	assert.NoDirExists(t, filepath.Join(appDest, "App"))

	assert.Equal(t, "App", stats.AppName)
	assert.True(t, stats.Combined)
	assert.Equal(t, 2, stats.Parts)
	assert.Equal(t, int64(5), stats.BytesCopied)
	assert.Contains(t, f.out.String(), "1/2: combining App.7z.001")
}

func TestRun_ReusesExistingOutput(t *testing.T) {
	f := newRunFixture(t)
	first := write(t, f.src, "App.7z.001", "AAA")
	write(t, f.src, "App.7z.002", "BB")
	write(t, f.src, "App.7z", "previous")
	f.cfg.Name = first
	f.cfg.NoFlatten = true

	// Three candidates: App.7z is set aside, then found to exist and reused.
	stats, err := f.run(&fakeExtractor{}, nil)
	require.NoError(t, err)
	assert.True(t, stats.Reused)
	assert.False(t, stats.Combined)

	b, err := os.ReadFile(filepath.Join(f.src, "App.7z"))
	require.NoError(t, err)
	assert.Equal(t, "previous", string(b))
}

func TestRun_SingleFile(t *testing.T) {
	f := newRunFixture(t)
	only := write(t, f.src, "Tool.zip", "zip")
	f.cfg.Name = only

	ext := &fakeExtractor{}
	stats, err := f.run(ext, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tool", stats.AppName)
	assert.Equal(t, only, ext.args[len(ext.args)-1])
}

func TestRun_DirectoryName(t *testing.T) {
	f := newRunFixture(t)
	dir := filepath.Join(f.src, "Test.App")
	write(t, dir, "Test.App.7z.001", "a")
	write(t, dir, "Test.App.7z.002", "b")
	f.cfg.Name = dir

	stats, err := f.run(&fakeExtractor{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Test.App", stats.AppName)
	assert.FileExists(t, filepath.Join(dir, "Test.App.7z"))
}

func TestRun_NoCandidates(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Name = filepath.Join(f.src, "Missing")

	_, err := f.run(&fakeExtractor{}, nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRun_Declined(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.NoInteraction = false
	only := write(t, f.src, "Tool.zip", "zip")
	f.cfg.Name = only

	ext := &fakeExtractor{}
	p := prompt.New(strings.NewReader("n\n"), io.Discard)
	_, err := f.run(ext, p)
	assert.ErrorIs(t, err, planner.ErrDeclined)
	assert.Nil(t, ext.args, "7z must not run after a declined prompt")
}

func TestRun_ExtractionFailure(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Name = write(t, f.src, "Tool.zip", "zip")

	ext := &fakeExtractor{res: sevenzip.ExecResult{ExitCode: 2, Err: sevenzip.CheckExit(2)}}
	_, err := f.run(ext, nil)
	assert.ErrorIs(t, err, sevenzip.ErrFatal)
}

func TestRun_CombineFailureRemovesOutput(t *testing.T) {
	f := newRunFixture(t)
	first := write(t, f.src, "App.7z.001", "a")
	second := write(t, f.src, "App.7z.002", "b")
	f.cfg.Name = first

	// Progress removes a part mid-run so its open fails.
	env := Env{
		Extractor: &fakeExtractor{},
		Out:       io.Discard,
		Progress:  removeOnStart{path: second},
	}
	_, err := Run(context.Background(), &f.cfg, f.log, env)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(f.src, "App.7z"))
}

type removeOnStart struct{ path string }

func (r removeOnStart) PartStarted(_, _ int, p planner.Part, _ int64) {
	if p.Path == r.path {
		_ = os.Remove(r.path)
	}
}
func (removeOnStart) PartDone(planner.Part, int64) {}
func (removeOnStart) Finished(CombineResult)       {}

func TestRun_CancelledBeforeExtract(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Name = write(t, f.src, "Tool.zip", "zip")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ext := &fakeExtractor{}
	_, err := Run(ctx, &f.cfg, f.log, Env{Extractor: ext, Out: io.Discard})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ext.args)
}

// cancelOnStart cancels a context when the first part starts.
type cancelOnStart struct{ cancel context.CancelFunc }

func (c cancelOnStart) PartStarted(int, int, planner.Part, int64) { c.cancel() }
func (cancelOnStart) PartDone(planner.Part, int64)               {}
func (cancelOnStart) Finished(CombineResult)                    {}

func TestCombineContext_CancelledBeforeStart(t *testing.T) {
	a := write(t, t.TempDir(), "App.7z.001", "abc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	res, err := CombineContext(ctx, []planner.Part{planner.NewPart(a)}, &out, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Parts)
	assert.Zero(t, out.Len())
}

func TestCombineContext_CancelledByObserver(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "App.7z.001", "abc")
	b := write(t, dir, "App.7z.002", "def")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	res, err := CombineContext(ctx, []planner.Part{planner.NewPart(a), planner.NewPart(b)}, &out, cancelOnStart{cancel})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Parts)
	assert.Zero(t, out.Len(), "no bytes are copied once cancelled")
}

func TestAppendPart_StopsReadingWhenCancelled(t *testing.T) {
	a := write(t, t.TempDir(), "App.7z.001", "abc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	n, err := appendPart(ctx, a, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestRun_CancelledDuringCombineRemovesOutput(t *testing.T) {
	f := newRunFixture(t)
	f.cfg.Name = write(t, f.src, "App.7z.001", "a")
	write(t, f.src, "App.7z.002", "b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ext := &fakeExtractor{}
	env := Env{Extractor: ext, Out: io.Discard, Progress: cancelOnStart{cancel}}

	_, err := Run(ctx, &f.cfg, f.log, env)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(f.src, "App.7z"))
	assert.Nil(t, ext.args)
}
