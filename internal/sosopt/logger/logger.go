// Package logger provides the package-wide structured logger used by the
// constraint-lowering pipeline. It mirrors the shape of gnark's own
// internal logger: a package-level zerolog.Logger that library code reads
// through Logger(), with SetOutput/SetLevel for tests and embedders.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// Logger returns the current package logger. Safe for concurrent use.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput redirects the package logger to w, preserving the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger().Level(logger.GetLevel())
}

// SetLevel adjusts the minimum level the package logger emits.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}
