package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, true)
	logger.Verbose("rewriting %s", "cube.gcode")

	assert.Equal(t, "[VERBOSE] rewriting cube.gcode\n", buf.String())
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, false)
	logger.Verbose("rewriting %s", "cube.gcode")

	assert.Empty(t, buf.String())
}

func TestConsoleLogger_Info(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, false)
	logger.Info("rewrote %d file(s)", 2)

	assert.Equal(t, "rewrote 2 file(s)\n", buf.String())
}

func TestConsoleLogger_Error(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, false)
	logger.Error("cube.gcode: %s", "permission denied")

	assert.Equal(t, "[ERROR] cube.gcode: permission denied\n", buf.String())
}

func TestConsoleLogger_NoArgsKeepsPercentSigns(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, false)
	logger.Info("100% done")

	assert.Equal(t, "100% done\n", buf.String())
}

func TestConsoleLogger_Styled(t *testing.T) {
	var buf bytes.Buffer

	logger := NewConsoleLoggerTo(&buf, true).WithStyle(true)
	logger.Error("boom")
	logger.Verbose("detail")

	out := buf.String()
	assert.Contains(t, out, errorPrefix)
	assert.Contains(t, out, "boom\n")
	assert.Contains(t, out, verbosePrefix)
	assert.Contains(t, out, "detail\n")
}

func TestConsoleLogger_DefaultsToStderr(t *testing.T) {
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	logger := NewConsoleLogger(false)
	logger.Info("to stderr")

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	assert.Equal(t, "to stderr\n", buf.String())
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 30)
	for i, line := range lines {
		if !strings.Contains(line, "message") && !strings.Contains(line, "verbose") && !strings.Contains(line, "error") {
			t.Errorf("Line %d appears corrupted: %q", i, line)
		}
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}

	// Should complete without panic
	wg.Wait()
}

// BenchmarkConsoleLogger_VerboseDisabled measures performance when verbose is disabled
func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewConsoleLoggerTo(io.Discard, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("benchmark message %d", i)
	}
}

func ExampleConsoleLogger() {
	logger := NewConsoleLoggerTo(os.Stdout, true)
	logger.Info("Rewriting 1 file")
	logger.Verbose("cube.gcode: 2 metadata line(s)")
	logger.Error("benchy.gcode: permission denied")
	// Output:
	// Rewriting 1 file
	// [VERBOSE] cube.gcode: 2 metadata line(s)
	// [ERROR] benchy.gcode: permission denied
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	fmt.Println("Done")
	// Output:
	// Done
}
