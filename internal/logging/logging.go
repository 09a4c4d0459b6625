// Package logging builds the structured logger shared by the CLI and loader.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel keeps normal command output free of log lines.
const DefaultLevel = log.WarnLevel

// ParseLevel accepts debug, info, warn, error and fatal.
func ParseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to w. An unknown level falls back to warn.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := ParseLevel(level)
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "despesas",
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
	})
	if err != nil {
		logger.Warn("using default log level", "err", err)
	}
	return logger
}

// Discard returns a logger that drops everything, for the TUI whose
// alt screen owns the terminal.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
