package slicermeta

import (
	"errors"
	"fmt"
)

// FileStatus describes how a single file of a batch ended.
type FileStatus string

const (
	StatusRewritten FileStatus = "rewritten"
	StatusPreviewed FileStatus = "previewed"
	StatusSkipped   FileStatus = "skipped"
	StatusFailed    FileStatus = "failed"
)

// FileResult is the outcome of processing one path.
type FileResult struct {
	Path         string     `json:"path"`
	Status       FileStatus `json:"status"`
	Header       []string   `json:"header,omitempty"`
	BodyLines    int        `json:"body_lines"`
	DroppedLines int        `json:"dropped_lines,omitempty"`
	FieldErrors  []string   `json:"field_errors,omitempty"`
	BackupPath   string     `json:"backup_path,omitempty"`
	Error        string     `json:"error,omitempty"`

	err error
}

// Failed builds a FileResult for a file that was abandoned.
func Failed(path string, err error) FileResult {
	return FileResult{
		Path:   path,
		Status: StatusFailed,
		Error:  err.Error(),
		err:    err,
	}
}

// Err returns the error that abandoned the file, or nil.
func (r FileResult) Err() error {
	return r.err
}

// BatchResult aggregates the results of a batch, in argument order.
type BatchResult struct {
	Files []FileResult `json:"files"`
}

// Count returns the number of files that ended with the given status.
func (b BatchResult) Count(status FileStatus) int {
	n := 0
	for _, f := range b.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Err returns nil when no file failed. Otherwise the returned error wraps
// ErrFileFailed and every per-file error.
func (b BatchResult) Err() error {
	var errs []error
	for _, f := range b.Files {
		if f.Status == StatusFailed && f.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d file(s) failed: %w", len(errs), len(b.Files), errors.Join(append([]error{ErrFileFailed}, errs...)...))
}
