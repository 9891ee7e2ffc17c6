package scanner

import (
	"bytes"
	"io"

	"github.com/arnodel/jsonl/internal/debug"
	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory is returned when the line buffer cannot be allocated or
	// would have to grow past its size limit.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrIncompleteLine is returned when the input ends in the middle of a
	// line, i.e. some bytes were read but no terminating '\n'.
	ErrIncompleteLine = errors.New("incomplete line")
)

// A LineScanner reads newline-terminated lines from a reader into a single
// buffer which is reused for every line and doubled in size whenever a line
// does not fit.
type LineScanner struct {
	reader io.Reader
	buf    []byte

	// 0 means no limit
	maxSize int

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Start of the line being read.
	// 0 <= lineStart <= scanIndex
	lineStart int

	// Position from which to resume looking for '\n'.  Everything in
	// buf[lineStart:scanIndex] is known not to contain a newline.
	// lineStart <= scanIndex <= fillIndex
	scanIndex int

	err   error
	grows int
}

// NewLineScanner returns a LineScanner with the default initial buffer size and
// no size limit.
func NewLineScanner(reader io.Reader) *LineScanner {
	s, _ := NewLineScannerSize(reader, DefaultBufSize, 0)
	return s
}

// NewLineScannerSize returns a LineScanner whose buffer starts with size bytes
// and may grow up to maxSize bytes (0 for no limit).  It fails with
// ErrOutOfMemory if size is not positive or larger than maxSize.
func NewLineScannerSize(reader io.Reader, size, maxSize int) (*LineScanner, error) {
	if size <= 0 || maxSize > 0 && size > maxSize {
		return nil, ErrOutOfMemory
	}
	return &LineScanner{
		reader:  reader,
		buf:     make([]byte, size),
		maxSize: maxSize,
	}, nil
}

// ReadLine returns the next line, including its terminating '\n'.  The
// returned slice is only valid until the next call to ReadLine.
//
// At the end of the input it returns io.EOF if there are no pending bytes, or
// ErrIncompleteLine if the last line has no '\n'.
func (s *LineScanner) ReadLine() ([]byte, error) {
	s.lineStart = s.scanIndex
	for {
		if i := bytes.IndexByte(s.buf[s.scanIndex:s.fillIndex], '\n'); i >= 0 {
			end := s.scanIndex + i + 1
			line := s.buf[s.lineStart:end]
			s.scanIndex = end
			return line, nil
		}
		s.scanIndex = s.fillIndex
		if s.err != nil {
			return nil, s.endOfInput()
		}
		if err := s.fillBuf(); err != nil {
			return nil, err
		}
	}
}

func (s *LineScanner) endOfInput() error {
	if s.err != io.EOF {
		return s.err
	}
	if s.lineStart < s.fillIndex {
		s.lineStart = s.fillIndex
		return ErrIncompleteLine
	}
	return io.EOF
}

// fillBuf makes room at the end of the buffer and reads more data into it.
// Room is made by dropping consumed lines first, and only when the current
// line fills the whole buffer is it doubled.
func (s *LineScanner) fillBuf() error {
	if s.fillIndex == len(s.buf) {
		if s.lineStart > 0 {
			copy(s.buf, s.buf[s.lineStart:s.fillIndex])
			s.fillIndex -= s.lineStart
			s.scanIndex -= s.lineStart
			s.lineStart = 0
		} else if err := s.grow(); err != nil {
			return err
		}
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf[s.fillIndex:])
		s.fillIndex += n
		if err != nil {
			s.err = err
			return nil
		}
		if n > 0 {
			return nil
		}
	}
	s.err = io.ErrNoProgress
	return nil
}

func (s *LineScanner) grow() error {
	size := 2 * len(s.buf)
	if s.maxSize > 0 && size > s.maxSize {
		return ErrOutOfMemory
	}
	buf := make([]byte, size)
	copy(buf, s.buf[:s.fillIndex])
	s.buf = buf
	s.grows++
	if debug.On {
		debug.Printf("line buffer grown to %d bytes", size)
	}
	return nil
}

// Cap returns the current size of the line buffer.
func (s *LineScanner) Cap() int {
	return len(s.buf)
}

// Grows returns how many times the buffer has been doubled.
func (s *LineScanner) Grows() int {
	return s.grows
}

const (
	maxConsecutiveEmptyReads = 100

	// DefaultBufSize is the initial size of the line buffer.
	DefaultBufSize = 1024
)
