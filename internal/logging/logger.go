package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger writes rename decisions and timings. Verbose lines are dropped
// unless Verbose is set; a nil Writer drops everything.
type Logger struct {
	Writer  io.Writer
	Verbose bool
	// Timestamps prefixes each line with an RFC3339 time, for log files.
	Timestamps bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

// Open appends timestamped lines to the file at path, creating it and its
// directory when missing. The returned close func releases the file.
func Open(path string, verbose bool) (Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Logger{}, nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Logger{}, nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return Logger{Writer: f, Verbose: verbose, Timestamps: true}, f.Close, nil
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if l.Timestamps {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		line = fmt.Sprintf("[%s] %s", now().Format(time.RFC3339), line)
	}
	fmt.Fprintln(l.Writer, line)
}

func (l Logger) Warnf(format string, args ...any) {
	l.Infof("Warning: "+format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Verbose: "+format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s took %s", label, time.Since(start).Round(time.Millisecond))
	}
}
