// Package jsonl extracts the "s" field from a stream of JSON Lines records.
//
// Each input line is expected to be a JSON object containing
//
//	"s": "<string value>"
//
// The value is located by searching for that literal marker, so no general
// JSON parsing takes place.  It is unescaped and printed on its own line.  The
// only escape codes understood are \\, \n and \"; other escape pairs are
// dropped and reported.
//
// This makes it possible to get the text out of very large corpora at the
// speed of the disk:
//
//	zstdcat text.jsonl.zst | jsonl > text.txt
//
// The CLI utility is in the directory cmd/jsonl.  You can install it with:
//
//	go install github.com/arnodel/jsonl/cmd/jsonl
package jsonl
