package slicermeta

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result := rewriter.RewriteAll(ctx, paths)
//	if errors.Is(result.Err(), slicermeta.ErrFileFailed) {
//	    // At least one file was abandoned
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCatalogInvalid indicates the metadata catalog definition is broken
	// (for example two entries emit the same target key).
	ErrCatalogInvalid = errors.New("invalid metadata catalog")

	// ErrFileFailed indicates at least one file of a batch could not be rewritten.
	ErrFileFailed = errors.New("file processing failed")

	// ErrApprovalDenied indicates the user declined to overwrite a file.
	ErrApprovalDenied = errors.New("approval denied")
)

// usageErrorFragments are the messages cobra and pflag produce for command line misuse.
var usageErrorFragments = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrCatalogInvalid):
		return ExitConfigError
	case errors.Is(err, ErrFileFailed), errors.Is(err, ErrApprovalDenied):
		return ExitGeneralError
	}

	errStr := err.Error()
	for _, fragment := range usageErrorFragments {
		if strings.Contains(errStr, fragment) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
