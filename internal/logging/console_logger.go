package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

const (
	verbosePrefix = "[VERBOSE]"
	errorPrefix   = "[ERROR]"
)

var (
	verbosePrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorPrefixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// ConsoleLogger writes log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	styled  bool
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to out instead of stderr.
func NewConsoleLoggerTo(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     out,
	}
}

// WithStyle enables colored level prefixes. Use only when out is a color terminal.
func (l *ConsoleLogger) WithStyle(styled bool) *ConsoleLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.styled = styled
	return l
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.prefix(verbosePrefix, verbosePrefixStyle)+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.prefix(errorPrefix, errorPrefixStyle)+" ", format, args)
}

func (l *ConsoleLogger) prefix(text string, style lipgloss.Style) string {
	if l.styled {
		return style.Render(text)
	}
	return text
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

var _ slicermeta.Logger = (*ConsoleLogger)(nil)
