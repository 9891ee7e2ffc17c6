//go:build debug

package debug

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "jsonl debug: ", log.Lmicroseconds)

func Printf(msg string, args ...any) {
	logger.Printf(msg, args...)
}

const On = true
