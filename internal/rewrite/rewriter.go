package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/slicermeta/slicermeta/internal/files/filesystem"
	"github.com/slicermeta/slicermeta/internal/translate"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// Options control what a Rewriter does with translated content.
type Options struct {
	// DryRun prints the translated content to Output instead of writing it.
	DryRun bool

	// Backup copies the original content to <path>.bak before replacing it.
	Backup bool

	// Output receives dry-run content. Required when DryRun is set.
	Output io.Writer

	// PreviewBanner prefixes each dry-run preview with "==> path <==".
	PreviewBanner bool
}

// Rewriter prepends translated metadata headers to files.
// Thread-Safety: NOT safe for concurrent use; batches are sequential.
type Rewriter struct {
	fs       filesystem.FileSystemProvider
	pipeline *translate.Pipeline
	logger   slicermeta.Logger
	approver slicermeta.Approver
	opts     Options
}

// NewRewriter creates a Rewriter with all dependencies injected.
// Panics on nil dependencies, which are programmer errors.
func NewRewriter(
	fs filesystem.FileSystemProvider,
	pipeline *translate.Pipeline,
	logger slicermeta.Logger,
	approver slicermeta.Approver,
	opts Options,
) *Rewriter {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if opts.DryRun && opts.Output == nil {
		panic("dry-run output cannot be nil")
	}

	return &Rewriter{
		fs:       fs,
		pipeline: pipeline,
		logger:   logger,
		approver: approver,
		opts:     opts,
	}
}

// RewriteAll processes paths in order and returns one result per path.
// A failing file is logged and the batch continues. When ctx is cancelled
// the remaining files are reported as failed with the context error.
func (r *Rewriter) RewriteAll(ctx context.Context, paths []string) slicermeta.BatchResult {
	batch := slicermeta.BatchResult{Files: make([]slicermeta.FileResult, 0, len(paths))}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			batch.Files = append(batch.Files, slicermeta.Failed(path, err))
			continue
		}
		batch.Files = append(batch.Files, r.RewriteFile(ctx, path))
	}

	r.logger.Verbose("Batch finished: %d rewritten, %d previewed, %d skipped, %d failed",
		batch.Count(slicermeta.StatusRewritten),
		batch.Count(slicermeta.StatusPreviewed),
		batch.Count(slicermeta.StatusSkipped),
		batch.Count(slicermeta.StatusFailed))
	return batch
}

// RewriteFile processes a single path. Failures are returned in the result,
// never as a panic or an early exit, and are also logged.
func (r *Rewriter) RewriteFile(ctx context.Context, path string) slicermeta.FileResult {
	result, err := r.rewrite(ctx, path)
	if err != nil {
		r.logger.Error("%s: %v", path, err)
		return slicermeta.Failed(path, err)
	}
	return result
}

func (r *Rewriter) rewrite(ctx context.Context, path string) (slicermeta.FileResult, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return slicermeta.FileResult{}, fmt.Errorf("failed to read file: %w", err)
	}
	if info.IsDir() {
		return slicermeta.FileResult{}, fmt.Errorf("path is a directory, not a file")
	}

	content, err := r.fs.ReadFile(path)
	if err != nil {
		return slicermeta.FileResult{}, fmt.Errorf("failed to read file: %w", err)
	}

	translated, err := r.pipeline.ProcessBytes(content)
	if err != nil {
		return slicermeta.FileResult{}, fmt.Errorf("failed to translate: %w", err)
	}

	result := slicermeta.FileResult{
		Path:         path,
		Header:       translated.Header,
		BodyLines:    len(translated.Body),
		DroppedLines: translated.DroppedLines,
	}
	for _, skipped := range translated.Skipped {
		result.FieldErrors = append(result.FieldErrors, skipped.Error())
		r.logger.Error("%s: skipped %v", path, skipped)
	}
	if translated.DroppedLines > 0 {
		r.logger.Verbose("%s: dropped %d undecodable line(s)", path, translated.DroppedLines)
	}
	r.logger.Verbose("%s: %d metadata line(s), %d body line(s)", path, len(translated.Header), len(translated.Body))

	output := translated.Output()

	if r.opts.DryRun {
		if err := r.preview(path, output); err != nil {
			return slicermeta.FileResult{}, err
		}
		result.Status = slicermeta.StatusPreviewed
		return result, nil
	}

	approved, err := r.approver.RequestApproval(ctx, path, translated.Header)
	if err != nil {
		return slicermeta.FileResult{}, fmt.Errorf("approval failed: %w", err)
	}
	if !approved {
		r.logger.Info("Skipped %s", path)
		result.Status = slicermeta.StatusSkipped
		result.Error = slicermeta.ErrApprovalDenied.Error()
		return result, nil
	}

	if r.opts.Backup {
		backupPath := path + slicermeta.BackupSuffix
		if err := r.fs.WriteFile(backupPath, content); err != nil {
			return slicermeta.FileResult{}, fmt.Errorf("failed to write backup %s: %w", backupPath, err)
		}
		result.BackupPath = backupPath
		r.logger.Verbose("%s: backup written to %s", path, backupPath)
	}

	if err := r.fs.WriteFile(path, []byte(output)); err != nil {
		return slicermeta.FileResult{}, fmt.Errorf("failed to write file: %w", err)
	}

	result.Status = slicermeta.StatusRewritten
	r.logger.Verbose("Rewrote %s", path)
	return result, nil
}

func (r *Rewriter) preview(path, output string) error {
	var err error
	if r.opts.PreviewBanner {
		_, err = fmt.Fprintf(r.opts.Output, "==> %s <==\n", path)
	}
	if err == nil {
		_, err = io.WriteString(r.opts.Output, output+"\n")
	}
	if err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// IsCancelled reports whether a file result ended because the batch was cancelled.
func IsCancelled(result slicermeta.FileResult) bool {
	err := result.Err()
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
