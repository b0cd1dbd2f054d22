package translate

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/internal/extract"
	"github.com/slicermeta/slicermeta/internal/render"
)

// Options tune pipeline behaviour.
type Options struct {
	OnFieldError FieldErrorPolicy
}

// Match records one metadata line found in the body.
type Match struct {
	Line  int
	Key   string
	Value extract.Value
}

// Result contains the translated program.
type Result struct {
	Header       []string      // rendered header lines
	Body         []string      // original lines, unchanged
	Matches      []Match       // fields found, in discovery order
	Skipped      []*FieldError // fields omitted under PolicySkip
	DroppedLines int           // lines discarded as undecodable
}

// Output joins the header and the body with "\n".
func (r *Result) Output() string {
	lines := make([]string, 0, len(r.Header)+len(r.Body))
	lines = append(lines, r.Header...)
	lines = append(lines, r.Body...)
	return strings.Join(lines, "\n")
}

// Pipeline translates programs using one validated catalog.
// Safe for concurrent use: it holds no per-file state.
type Pipeline struct {
	catalog *catalog.Catalog
	opts    Options
}

// NewPipeline validates the catalog and returns a pipeline bound to it.
// A catalog with duplicate output keys is rejected with an error wrapping
// slicermeta.ErrCatalogInvalid.
func NewPipeline(cat *catalog.Catalog, opts Options) (*Pipeline, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if err := cat.Check(); err != nil {
		return nil, err
	}
	policy, err := ParsePolicy(string(opts.OnFieldError))
	if err != nil {
		return nil, err
	}
	opts.OnFieldError = policy

	return &Pipeline{catalog: cat, opts: opts}, nil
}

// Catalog returns the catalog the pipeline was built with.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Process translates a program already split into lines.
//
// Algorithm:
//  1. Render every constant, in catalog order
//  2. For each line, find the first field whose source key matches
//  3. Extract and render its value, appending to the header
//  4. Keep every line in the body, matched or not
func (p *Pipeline) Process(lines []string) (*Result, error) {
	result := &Result{Body: lines}

	for _, c := range p.catalog.Constants() {
		result.Header = append(result.Header, render.Constant(c.Name, c.Value))
	}

	for i, line := range lines {
		prop, rest, ok := p.catalog.Lookup(line)
		if !ok {
			continue
		}

		value, err := prop.Extract(rest)
		if err != nil {
			fieldErr := &FieldError{Line: i + 1, Key: prop.SourceKey, Err: err}
			if p.opts.OnFieldError == PolicySkip {
				result.Skipped = append(result.Skipped, fieldErr)
				continue
			}
			return nil, fieldErr
		}

		result.Header = append(result.Header, render.Value(prop.TargetKey, value))
		result.Matches = append(result.Matches, Match{Line: i + 1, Key: prop.TargetKey, Value: value})
	}

	return result, nil
}

// ProcessReader reads a program from r and translates it.
func (p *Pipeline) ProcessReader(r io.Reader) (*Result, error) {
	lines, dropped, err := ReadLines(r)
	if err != nil {
		return nil, err
	}

	result, err := p.Process(lines)
	if err != nil {
		return nil, err
	}
	result.DroppedLines = dropped
	return result, nil
}

// ProcessBytes translates an in-memory program.
func (p *Pipeline) ProcessBytes(content []byte) (*Result, error) {
	return p.ProcessReader(bytes.NewReader(content))
}

// ReadLines splits r into lines, removing "\n" and "\r\n" terminators.
// Lines that are not valid UTF-8 are dropped and counted rather than reported.
// Line length is not limited.
func ReadLines(r io.Reader) (lines []string, dropped int, err error) {
	reader := bufio.NewReader(r)

	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if strings.HasSuffix(line, "\n") {
				line = strings.TrimSuffix(line[:len(line)-1], "\r")
			}
			if utf8.ValidString(line) {
				lines = append(lines, line)
			} else {
				dropped++
			}
		}

		if readErr == io.EOF {
			return lines, dropped, nil
		}
		if readErr != nil {
			return nil, dropped, fmt.Errorf("failed to read content: %w", readErr)
		}
	}
}
