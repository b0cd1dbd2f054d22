package rewrite

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/internal/files/filesystem"
	"github.com/slicermeta/slicermeta/internal/logging"
	"github.com/slicermeta/slicermeta/internal/translate"
	"github.com/slicermeta/slicermeta/internal/ui"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

const sampleProgram = "; generated by Slicer\n" +
	"; estimated printing time = 1h 30m 0s\n" +
	"; filament used [mm] = 2500.00\n" +
	"G1 X10 Y10"

const sampleRewritten = ";FLAVOR:Marlin\n" +
	";TIME:5400\n" +
	";Filament used: 2.5m\n" +
	sampleProgram

type recordingApprover struct {
	answers map[string]bool
	err     error
	asked   []string
}

func (a *recordingApprover) RequestApproval(ctx context.Context, path string, header []string) (bool, error) {
	a.asked = append(a.asked, path)
	if a.err != nil {
		return false, a.err
	}
	answer, ok := a.answers[path]
	return !ok || answer, nil
}

func newPipeline(t *testing.T, policy translate.FieldErrorPolicy) *translate.Pipeline {
	t.Helper()
	p, err := translate.NewPipeline(catalog.Default(), translate.Options{OnFieldError: policy})
	require.NoError(t, err)
	return p
}

func newRewriter(t *testing.T, mfs *filesystem.MemoryFileSystem, approver slicermeta.Approver, opts Options) *Rewriter {
	t.Helper()
	if approver == nil {
		approver = ui.NewAutoApprover(nil)
	}
	return NewRewriter(mfs, newPipeline(t, translate.PolicyAbort), logging.NewNullLogger(), approver, opts)
}

func TestRewriteFile_PrependsHeader(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "cube.gcode")

	require.Equal(t, slicermeta.StatusRewritten, result.Status, result.Error)
	assert.Equal(t, []string{";FLAVOR:Marlin", ";TIME:5400", ";Filament used: 2.5m"}, result.Header)
	assert.Equal(t, 4, result.BodyLines)
	assert.Empty(t, result.BackupPath)

	content, _ := mfs.Content("cube.gcode")
	assert.Equal(t, sampleRewritten, content)
}

func TestRewriteFile_TrailingNewlineIsNotPreserved(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", "G28\n")

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "cube.gcode")
	require.Equal(t, slicermeta.StatusRewritten, result.Status)

	content, _ := mfs.Content("cube.gcode")
	assert.Equal(t, ";FLAVOR:Marlin\nG28", content)
}

func TestRewriteFile_EmptyFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("empty.gcode", "")

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "empty.gcode")
	require.Equal(t, slicermeta.StatusRewritten, result.Status)

	content, _ := mfs.Content("empty.gcode")
	assert.Equal(t, ";FLAVOR:Marlin", content)
}

func TestRewriteFile_MissingFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "missing.gcode")

	assert.Equal(t, slicermeta.StatusFailed, result.Status)
	assert.True(t, errors.Is(result.Err(), fs.ErrNotExist), "got %v", result.Err())
	assert.Contains(t, result.Error, "failed to read file")
}

func TestRewriteFile_FieldErrorLeavesFileUntouched(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	original := "; estimated printing time = 1h 30x\nG28"
	mfs.AddFile("bad.gcode", original)

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "bad.gcode")

	assert.Equal(t, slicermeta.StatusFailed, result.Status)
	var fieldErr *translate.FieldError
	require.ErrorAs(t, result.Err(), &fieldErr)
	assert.Equal(t, 1, fieldErr.Line)

	content, _ := mfs.Content("bad.gcode")
	assert.Equal(t, original, content)
	assert.Empty(t, mfs.Writes())
}

func TestRewriteFile_SkipPolicyRecordsFieldErrors(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("bad.gcode", "; estimated printing time = soon\n; filament used [mm] = 1000.00")

	rw := NewRewriter(mfs, newPipeline(t, translate.PolicySkip), logging.NewNullLogger(), ui.NewAutoApprover(nil), Options{})
	result := rw.RewriteFile(context.Background(), "bad.gcode")

	require.Equal(t, slicermeta.StatusRewritten, result.Status)
	require.Len(t, result.FieldErrors, 1)
	assert.Contains(t, result.FieldErrors[0], "estimated printing time")
	assert.Equal(t, []string{";FLAVOR:Marlin", ";Filament used: 1m"}, result.Header)
}

func TestRewriteFile_DryRunDoesNotWrite(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)
	var out bytes.Buffer

	result := newRewriter(t, mfs, nil, Options{DryRun: true, Output: &out}).RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, slicermeta.StatusPreviewed, result.Status)
	assert.Equal(t, sampleRewritten+"\n", out.String())
	assert.Empty(t, mfs.Writes())
}

func TestRewriteFile_DryRunBanner(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", "G28")
	var out bytes.Buffer

	newRewriter(t, mfs, nil, Options{DryRun: true, Output: &out, PreviewBanner: true}).
		RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, "==> cube.gcode <==\n;FLAVOR:Marlin\nG28\n", out.String())
}

func TestRewriteFile_DryRunSkipsApproval(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", "G28")
	approver := &recordingApprover{}

	newRewriter(t, mfs, approver, Options{DryRun: true, Output: &bytes.Buffer{}}).
		RewriteFile(context.Background(), "cube.gcode")

	assert.Empty(t, approver.asked)
}

func TestRewriteFile_Backup(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)

	result := newRewriter(t, mfs, nil, Options{Backup: true}).RewriteFile(context.Background(), "cube.gcode")

	require.Equal(t, slicermeta.StatusRewritten, result.Status)
	assert.Equal(t, "cube.gcode.bak", result.BackupPath)

	backup, ok := mfs.Content("cube.gcode.bak")
	require.True(t, ok)
	assert.Equal(t, sampleProgram, backup)
	assert.Equal(t, []string{"cube.gcode.bak", "cube.gcode"}, mfs.Writes())
}

func TestRewriteFile_BackupFailureKeepsOriginal(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)
	mfs.FailWrites("cube.gcode.bak", fs.ErrPermission)

	result := newRewriter(t, mfs, nil, Options{Backup: true}).RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, slicermeta.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err(), fs.ErrPermission)

	content, _ := mfs.Content("cube.gcode")
	assert.Equal(t, sampleProgram, content)
}

func TestRewriteFile_WriteFailure(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)
	mfs.FailWrites("cube.gcode", fs.ErrPermission)

	result := newRewriter(t, mfs, nil, Options{}).RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, slicermeta.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err(), fs.ErrPermission)
	assert.Contains(t, result.Error, "failed to write file")
}

func TestRewriteFile_ApprovalDenied(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)
	approver := &recordingApprover{answers: map[string]bool{"cube.gcode": false}}

	result := newRewriter(t, mfs, approver, Options{Backup: true}).RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, slicermeta.StatusSkipped, result.Status)
	assert.Equal(t, slicermeta.ErrApprovalDenied.Error(), result.Error)
	assert.Empty(t, mfs.Writes(), "denied files get neither a backup nor a rewrite")
}

func TestRewriteFile_ApprovalError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", sampleProgram)
	approver := &recordingApprover{err: context.Canceled}

	result := newRewriter(t, mfs, approver, Options{}).RewriteFile(context.Background(), "cube.gcode")

	assert.Equal(t, slicermeta.StatusFailed, result.Status)
	assert.True(t, IsCancelled(result))
}

func TestRewriteAll_ContinuesPastFailures(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("a.gcode", sampleProgram)
	mfs.AddFile("c.gcode", "G28")
	var logs bytes.Buffer

	rw := NewRewriter(mfs, newPipeline(t, translate.PolicyAbort), logging.NewConsoleLoggerTo(&logs, false), ui.NewAutoApprover(nil), Options{})
	batch := rw.RewriteAll(context.Background(), []string{"a.gcode", "missing.gcode", "c.gcode"})

	require.Len(t, batch.Files, 3)
	assert.Equal(t, "a.gcode", batch.Files[0].Path)
	assert.Equal(t, slicermeta.StatusRewritten, batch.Files[0].Status)
	assert.Equal(t, slicermeta.StatusFailed, batch.Files[1].Status)
	assert.Equal(t, slicermeta.StatusRewritten, batch.Files[2].Status)

	assert.Equal(t, []string{"a.gcode", "c.gcode"}, mfs.Writes())
	assert.Contains(t, logs.String(), "[ERROR] missing.gcode:")

	err := batch.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, slicermeta.ErrFileFailed)
	assert.Equal(t, slicermeta.ExitGeneralError, slicermeta.ExitCodeForError(err))
}

func TestRewriteAll_Empty(t *testing.T) {
	batch := newRewriter(t, filesystem.NewMemoryFileSystem(), nil, Options{}).RewriteAll(context.Background(), nil)

	assert.Empty(t, batch.Files)
	assert.NoError(t, batch.Err())
}

func TestRewriteAll_SamePathTwiceStacksHeaders(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("cube.gcode", "G28")

	batch := newRewriter(t, mfs, nil, Options{}).RewriteAll(context.Background(), []string{"cube.gcode", "cube.gcode"})
	require.NoError(t, batch.Err())

	content, _ := mfs.Content("cube.gcode")
	assert.Equal(t, ";FLAVOR:Marlin\n;FLAVOR:Marlin\nG28", content)
}

func TestRewriteAll_CancelledContext(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("a.gcode", "G28")
	mfs.AddFile("b.gcode", "G28")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := newRewriter(t, mfs, nil, Options{}).RewriteAll(ctx, []string{"a.gcode", "b.gcode"})

	require.Len(t, batch.Files, 2)
	for _, f := range batch.Files {
		assert.Equal(t, slicermeta.StatusFailed, f.Status)
		assert.True(t, IsCancelled(f))
	}
	assert.Empty(t, mfs.Writes())
}

func TestNewRewriter_PanicsOnNilDependencies(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	p := newPipeline(t, translate.PolicyAbort)
	logger := logging.NewNullLogger()
	approver := ui.NewAutoApprover(nil)

	assert.Panics(t, func() { NewRewriter(nil, p, logger, approver, Options{}) })
	assert.Panics(t, func() { NewRewriter(mfs, nil, logger, approver, Options{}) })
	assert.Panics(t, func() { NewRewriter(mfs, p, nil, approver, Options{}) })
	assert.Panics(t, func() { NewRewriter(mfs, p, logger, nil, Options{}) })
	assert.Panics(t, func() { NewRewriter(mfs, p, logger, approver, Options{DryRun: true}) })
}
