package translate

import (
	"fmt"
	"strings"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// FieldErrorPolicy decides what happens when a matched field cannot be parsed.
type FieldErrorPolicy string

const (
	// PolicyAbort fails the whole file.
	PolicyAbort FieldErrorPolicy = "abort"
	// PolicySkip omits the field from the header and records the error.
	PolicySkip FieldErrorPolicy = "skip"
)

// ParsePolicy converts a policy name. An empty name selects PolicyAbort.
func ParsePolicy(name string) (FieldErrorPolicy, error) {
	switch FieldErrorPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown field error policy %q (expected %q or %q): %w",
			name, PolicyAbort, PolicySkip, slicermeta.ErrInvalidConfig)
	}
}

// FieldError locates a parsing failure within a program.
type FieldError struct {
	Line int    // 1-based position among the decoded lines
	Key  string // source key that matched
	Err  error  // usually an *extract.ParsingError
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d [field: %s]: %v", e.Line, e.Key, e.Err)
}

// Unwrap exposes the underlying parsing error to errors.Is and errors.As.
func (e *FieldError) Unwrap() error {
	return e.Err
}
