package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/arnodel/jsonl"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Size of the stdin and stdout buffers
const ioBufferSize = 1 << 20

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			exitCode = 2
		}
	}()

	// Diagnostics go to stderr, in color if it's a terminal.
	var stderr io.Writer = os.Stderr
	var colorizer *jsonl.Colorizer
	if isatty.IsTerminal(os.Stderr.Fd()) {
		colorizer = &jsonl.DefaultColorizer
		stderr = colorable.NewColorableStderr()
	}

	out := bufio.NewWriterSize(os.Stdout, ioBufferSize)
	printer := &jsonl.Printer{Writer: out}

	// If we are writing to a terminal, flush after each line so user gets feedback early.
	if isatty.IsTerminal(os.Stdout.Fd()) {
		printer.Flusher = out
	}

	diag := jsonl.NewDiagnostics(stderr, colorizer)
	filter := &jsonl.Filter{
		Decompress:  true,
		Printer:     printer,
		Diagnostics: diag,
	}

	err := filter.Run(bufio.NewReaderSize(os.Stdin, ioBufferSize))
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = &jsonl.PrinterError{Err: flushErr}
	}

	return exitStatus(diag, err)
}

// exitStatus reports output errors and returns the exit status for err.
func exitStatus(diag *jsonl.Diagnostics, err error) int {
	var perr *jsonl.PrinterError
	if errors.As(err, &perr) {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		diag.Fatal(jsonl.NoRecord, perr.Err.Error())
		return 1
	}

	// Problems with the input have already been reported by the filter.
	return jsonl.ExitCode(err)
}
