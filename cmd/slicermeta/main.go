package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/slicermeta/slicermeta/internal/cli"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(slicermeta.ExitPanic)
		}
	}()

	if os.Getenv(slicermeta.EnvPrefix+"TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(slicermeta.ExitCodeForError(err))
	}
}
