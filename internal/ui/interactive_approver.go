package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It shows the header about to be prepended and
// asks for a y/N answer before each file is overwritten.
type InteractiveApprover struct {
	verbose bool
	input   *bufio.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin and
// writing prompts to stderr.
func NewInteractiveApprover(verbose bool) slicermeta.Approver {
	return NewInteractiveApproverWith(os.Stdin, os.Stderr, verbose)
}

// NewInteractiveApproverWith creates an InteractiveApprover on explicit streams.
func NewInteractiveApproverWith(input io.Reader, output io.Writer, verbose bool) *InteractiveApprover {
	return &InteractiveApprover{
		verbose: verbose,
		input:   bufio.NewReader(input),
		output:  output,
	}
}

// RequestApproval prints the pending header and waits for the answer.
// Only "y" or "yes" (any case) approves.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, path string, header []string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s will be rewritten with %d metadata line(s):\n", path, len(header))
	if a.verbose || len(header) <= maxPreviewLines {
		for _, line := range header {
			fmt.Fprintf(a.output, "  %s\n", line)
		}
	} else {
		for _, line := range header[:maxPreviewLines] {
			fmt.Fprintf(a.output, "  %s\n", line)
		}
		fmt.Fprintf(a.output, "  ... %d more\n", len(header)-maxPreviewLines)
	}
	fmt.Fprint(a.output, "Overwrite? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := a.input.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		default:
			fmt.Fprintf(a.output, "✗ Skipping %s.\n", path)
			return false, nil
		}
	}
}

const maxPreviewLines = 8

// Verify InteractiveApprover implements the Approver interface at compile time
var _ slicermeta.Approver = (*InteractiveApprover)(nil)
