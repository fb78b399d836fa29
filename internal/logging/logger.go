// Package logging builds the application loggers.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a configured application logger.
// It writes to Stderr so it never mixes with the rendered game on Stdout.
func New(prefix string, level log.Level) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// NewNop returns a logger that discards everything.
func NewNop() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name; an empty name means info.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}
