// Package logx constructs the logger injected into every component.
package logx

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const levelEnv = "ESBUILDRUN_LOG_LEVEL"

// New creates the wrapper's standard logger on the given writer (stderr when
// nil). The level defaults to info and can be overridden through
// ESBUILDRUN_LOG_LEVEL (debug, info, warn, error).
func New(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})
	if raw := os.Getenv(levelEnv); raw != "" {
		if level, err := log.ParseLevel(raw); err == nil {
			logger.SetLevel(level)
		}
	}
	return logger
}
