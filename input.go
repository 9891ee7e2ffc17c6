package jsonl

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression identifies the encoding of an input stream.
type Compression string

const (
	Plain Compression = "plain"
	Zstd  Compression = "zstd"
	Gzip  Compression = "gzip"
	LZ4   Compression = "lz4"
)

type compressionGuesser struct {
	magic       []byte
	compression Compression
}

var compressionGuessers = []compressionGuesser{
	{[]byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
	{[]byte{0x1f, 0x8b}, Gzip},
	{[]byte{0x04, 0x22, 0x4d, 0x18}, LZ4},
}

const maxMagicLen = 4

// GuessCompression looks at the start of a stream and tells how it is
// compressed.
func GuessCompression(start []byte) Compression {
	for _, guesser := range compressionGuessers {
		if bytes.HasPrefix(start, guesser.magic) {
			return guesser.compression
		}
	}
	return Plain
}

// OpenInput returns a reader producing the decompressed content of r if it
// starts with a zstd, gzip or lz4 frame, and the content of r unchanged
// otherwise.  If r is not already a *bufio.Reader it is wrapped in one so that
// the first bytes can be inspected without losing them.
func OpenInput(r io.Reader) (io.ReadCloser, Compression, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	// Blocks until maxMagicLen bytes or the end of input are available.
	start, err := br.Peek(maxMagicLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, Plain, errors.Wrap(err, "reading input")
	}
	compression := GuessCompression(start)
	switch compression {
	case Zstd:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, compression, errors.Wrap(err, "opening zstd stream")
		}
		return dec.IOReadCloser(), compression, nil
	case Gzip:
		dec, err := gzip.NewReader(br)
		if err != nil {
			return nil, compression, errors.Wrap(err, "opening gzip stream")
		}
		return dec, compression, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), compression, nil
	default:
		return io.NopCloser(br), compression, nil
	}
}
