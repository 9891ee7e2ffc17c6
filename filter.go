package jsonl

import (
	"fmt"
	"io"
	"os"

	"github.com/arnodel/jsonl/internal/scanner"
	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory is returned when the line buffer cannot grow any more.
	ErrOutOfMemory = scanner.ErrOutOfMemory

	// ErrIncompleteLine is returned when the input stops in the middle of a
	// record.  It is not considered a failure, see ExitCode.
	ErrIncompleteLine = scanner.ErrIncompleteLine
)

const (
	// DefaultInitialBufferSize is the initial capacity of the line buffer.
	DefaultInitialBufferSize = scanner.DefaultBufSize

	// DefaultMaxBufferSize caps the line buffer.  Lines longer than that are
	// reported as ErrOutOfMemory.
	DefaultMaxBufferSize = 1 << 30
)

// A Filter reads records, one JSON object per line, and prints the decoded
// value of their "s" field, one per line.
//
// The zero value is usable: it reads plain text, writes to os.Stdout and
// reports to os.Stderr.
type Filter struct {
	// Marker introduces the field value (FieldMarker if nil).
	Marker []byte

	// InitialBufferSize is the starting capacity of the line buffer
	// (DefaultInitialBufferSize if 0).
	InitialBufferSize int

	// MaxBufferSize is the largest the line buffer may grow
	// (DefaultMaxBufferSize if 0, no limit if negative).
	MaxBufferSize int

	// If Decompress is true, zstd, gzip and lz4 input is detected and
	// decompressed.
	Decompress bool

	Printer     *Printer
	Diagnostics *Diagnostics

	stats Stats
}

// Stats counts what a Filter did during its last Run.
type Stats struct {
	Records        int // records printed
	InvalidEscapes int // escape pairs dropped
}

// A RecordError is returned by Filter.Run when it stops before the end of its
// input.  Record is the 0-based index of the offending record, or NoRecord.
type RecordError struct {
	Record int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Record < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("record %d: %s", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Stats returns counts for the records processed by the last call to Run.
func (f *Filter) Stats() Stats {
	return f.stats
}

// Run filters r until it is exhausted or an error occurs.  It returns nil at
// the end of the input.  Errors in the input are reported to the Diagnostics
// and returned as a *RecordError.  Errors writing output are returned as a
// *PrinterError.
func (f *Filter) Run(r io.Reader) (err error) {
	defer CatchPrinterError(&err)

	f.stats = Stats{}
	diag := f.Diagnostics
	if diag == nil {
		diag = NewDiagnostics(os.Stderr, nil)
	}
	printer := f.Printer
	if printer == nil {
		printer = &Printer{Writer: os.Stdout}
	}
	marker := f.Marker
	if marker == nil {
		marker = FieldMarker
	}

	input := r
	if f.Decompress {
		rc, _, err := OpenInput(r)
		if err != nil {
			return f.fail(diag, NoRecord, err)
		}
		defer rc.Close()
		input = rc
	}

	lines, err := scanner.NewLineScannerSize(input, f.initialBufferSize(), f.maxBufferSize())
	if err != nil {
		return f.fail(diag, NoRecord, err)
	}

	var (
		record int
		out    []byte
	)
	onInvalid := func(code byte) {
		f.stats.InvalidEscapes++
		diag.InvalidEscape(record, code)
	}
	for ; ; record++ {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if err != ErrOutOfMemory && err != ErrIncompleteLine {
				err = errors.Wrap(err, "reading input")
			}
			return f.fail(diag, record, err)
		}
		out, err = DecodeField(out[:0], line, marker, onInvalid)
		if err != nil {
			return f.fail(diag, record, err)
		}
		printer.PrintLine(out)
		f.stats.Records++
	}
}

func (f *Filter) fail(diag *Diagnostics, record int, err error) error {
	diag.Fatal(record, err.Error())
	return &RecordError{Record: record, Err: err}
}

func (f *Filter) initialBufferSize() int {
	if f.InitialBufferSize == 0 {
		return DefaultInitialBufferSize
	}
	return f.InitialBufferSize
}

func (f *Filter) maxBufferSize() int {
	switch {
	case f.MaxBufferSize == 0:
		return DefaultMaxBufferSize
	case f.MaxBufferSize < 0:
		return 0
	default:
		return f.MaxBufferSize
	}
}

// ExitCode returns the process exit status matching the outcome of
// Filter.Run.  Running out of input in the middle of a record is reported as
// an error but still counts as success.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrIncompleteLine) {
		return 0
	}
	return 1
}
