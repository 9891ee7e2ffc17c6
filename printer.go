package jsonl

import (
	"fmt"
	"io"
)

// A Printer sends decoded lines to an io.Writer.
//
// Its methods do not return an error because for this program it's assumed
// to be an exceptional case that outputting results in an error and the only
// sensible outcome is to stop the program.  Instead they panic with a
// *PrinterError, which can be captured with
//
//	func printingFunction(p *Printer) (err error) {
//	    defer CatchPrinterError(&err)
//	    return doSomePrinting(p)
//	}
type Printer struct {
	io.Writer

	// If not nil, Flush() is called after each line.  Useful when the output
	// is a terminal so the user gets feedback early.
	Flusher
}

// Flusher is implemented by buffered writers such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

var newLine = []byte{'\n'}

// PrintLine outputs b followed by a single '\n'.
func (p *Printer) PrintLine(b []byte) {
	p.PrintBytes(b)
	p.PrintBytes(newLine)
	if p.Flusher != nil {
		if err := p.Flush(); err != nil {
			panic(wrapError(err))
		}
	}
}

// PrintBytes sends the given bytes verbatim to the printer's writer.
func (p *Printer) PrintBytes(b []byte) {
	_, err := p.Write(b)
	if err != nil {
		panic(wrapError(err))
	}
}

// CatchPrinterError can be used to capture panics caused by a Printer because
// of an error encountered while attempting to send output.  See the Printer
// documentation for details.
func CatchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

// A PrinterError contains an error that occurred while a Printer was sending
// some output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

func wrapError(err error) *PrinterError {
	return &PrinterError{Err: err}
}
