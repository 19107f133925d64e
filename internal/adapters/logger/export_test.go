package logger

import "io"

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// NewWithOutput creates a Logger on w.
func NewWithOutput(w io.Writer) *Logger {
	return newLogger(w)
}
