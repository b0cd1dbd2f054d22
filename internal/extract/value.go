package extract

import (
	"fmt"
	"strings"
)

// ValueKind identifies which field of a Value is meaningful.
type ValueKind int

const (
	KindText ValueKind = iota
	KindDuration
	KindLength
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDuration:
		return "duration"
	case KindLength:
		return "length"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is an extracted metadata value. It lives only while one file is processed.
type Value struct {
	Kind    ValueKind
	Seconds uint64 // KindDuration
	Units   uint64 // KindLength, in ten-micrometer units (0.01 mm)
	Text    string // KindText
}

// DurationValue wraps a number of seconds.
func DurationValue(seconds uint64) Value {
	return Value{Kind: KindDuration, Seconds: seconds}
}

// LengthValue wraps a length in ten-micrometer units.
func LengthValue(units uint64) Value {
	return Value{Kind: KindLength, Units: units}
}

// TextValue wraps an opaque string.
func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

// Transformer converts the raw text following a source key into a Value.
type Transformer interface {
	Transform(raw string) (Value, error)
}

// TransformFunc adapts a plain function to the Transformer interface.
type TransformFunc func(raw string) (Value, error)

// Transform calls f(raw).
func (f TransformFunc) Transform(raw string) (Value, error) {
	return f(raw)
}

type durationTransformer struct{}

func (durationTransformer) Transform(raw string) (Value, error) {
	seconds, err := Duration(raw)
	if err != nil {
		return Value{}, err
	}
	return DurationValue(seconds), nil
}

func (durationTransformer) String() string { return "duration" }

type lengthTransformer struct{}

func (lengthTransformer) Transform(raw string) (Value, error) {
	units, err := Length(raw)
	if err != nil {
		return Value{}, err
	}
	return LengthValue(units), nil
}

func (lengthTransformer) String() string { return "length" }

type textTransformer struct{}

func (textTransformer) Transform(raw string) (Value, error) {
	text, err := Text(raw)
	if err != nil {
		return Value{}, err
	}
	return TextValue(text), nil
}

func (textTransformer) String() string { return "passthrough" }

var (
	// DurationTransformer parses "<n>h <n>m <n>s" values into seconds.
	DurationTransformer Transformer = durationTransformer{}

	// LengthTransformer parses millimeter values into ten-micrometer units.
	LengthTransformer Transformer = lengthTransformer{}

	// TextTransformer passes the value through unchanged.
	TextTransformer Transformer = textTransformer{}
)

// splitValue returns the trimmed text after the first "=".
func splitValue(attribute string) (string, error) {
	_, value, found := strings.Cut(attribute, "=")
	if !found {
		return "", missingValue(attribute)
	}
	return strings.TrimSpace(value), nil
}

// Text extracts the trimmed value following "=".
func Text(attribute string) (string, error) {
	return splitValue(attribute)
}
