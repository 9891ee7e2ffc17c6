package jsonl

import (
	"bytes"

	"github.com/pkg/errors"
)

// FieldMarker is the byte sequence that introduces the value of the "s" field
// in a record.
var FieldMarker = []byte(`"s": "`)

// ErrMissingMarker is returned when a line does not contain the field marker.
var ErrMissingMarker = errors.New("invalid JSON")

type decodeState uint8

const (
	scanning decodeState = iota
	escapePending
)

// DecodeField finds the first occurrence of marker in line and appends the
// unescaped string value following it to dst, stopping at the first unescaped
// '"'.  It returns ErrMissingMarker if marker does not occur in line.
//
// Only three escape codes are known: \\, \n and \".  Any other escape pair is
// dropped from the output and reported to onInvalid (which may be nil).
//
// E.g. with the default marker
//
//	{"s": "a\"b\nc", "t": 1} -> a"b<newline>c
//	{"s": "a\qb"}            -> ab (onInvalid('q') is called)
func DecodeField(dst, line, marker []byte, onInvalid func(code byte)) ([]byte, error) {
	i := bytes.Index(line, marker)
	if i < 0 {
		return dst, ErrMissingMarker
	}
	state := scanning
	for _, b := range line[i+len(marker):] {
		switch state {
		case scanning:
			switch b {
			case '"':
				return dst, nil
			case '\\':
				state = escapePending
			default:
				dst = append(dst, b)
			}
		case escapePending:
			switch b {
			case '\\':
				dst = append(dst, '\\')
			case 'n':
				dst = append(dst, '\n')
			case '"':
				dst = append(dst, '"')
			default:
				if onInvalid != nil {
					onInvalid(b)
				}
			}
			state = scanning
		}
	}
	return dst, nil
}
