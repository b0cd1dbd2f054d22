package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue matches parsing errors where the "=" delimiter is absent.
	ErrMissingValue = errors.New("missing value")

	// ErrStringParsing matches parsing errors where the value has the wrong shape.
	ErrStringParsing = errors.New("string parsing failed")
)

// ErrorKind classifies a ParsingError.
type ErrorKind int

const (
	// MissingValue means the key was present but no "=" followed it.
	MissingValue ErrorKind = iota
	// StringParsing means the value could not be parsed as the expected kind.
	StringParsing
)

func (k ErrorKind) String() string {
	switch k {
	case MissingValue:
		return "MissingValue"
	case StringParsing:
		return "StringParsingError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParsingError reports a metadata value that could not be extracted.
type ParsingError struct {
	Kind     ErrorKind
	Expected string // expected kind, e.g. "duration-component" (StringParsing only)
	Raw      string // offending raw text
}

// Error implements the error interface.
func (e *ParsingError) Error() string {
	if e.Kind == MissingValue {
		return fmt.Sprintf("missing value in %q: expected \"<key> = <value>\"", e.Raw)
	}
	return fmt.Sprintf("cannot parse %q as %s", e.Raw, e.Expected)
}

// Is lets errors.Is match the ErrMissingValue and ErrStringParsing sentinels.
func (e *ParsingError) Is(target error) bool {
	switch target {
	case ErrMissingValue:
		return e.Kind == MissingValue
	case ErrStringParsing:
		return e.Kind == StringParsing
	}
	return false
}

func missingValue(raw string) *ParsingError {
	return &ParsingError{Kind: MissingValue, Raw: raw}
}

func stringParsing(expected, raw string) *ParsingError {
	return &ParsingError{Kind: StringParsing, Expected: expected, Raw: raw}
}
