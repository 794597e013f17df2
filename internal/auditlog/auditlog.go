// Package auditlog writes an auditable CSV record of client activity. Each
// Log is an explicit handle with its own file; constructing one does not
// touch any process-wide logging configuration.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// header is the first row of every audit file
var header = []string{"DATE", "LEVEL", "MESSAGE", "ERROR", "FILE", "LINE"}

// Log appends leveled rows to a CSV file. Rows carry a timestamp, the level,
// the message, error details when applicable, and the caller's file and line.
type Log struct {
	file *os.File
	w    *csv.Writer
}

// New opens (or creates) the audit file at the given path, creating the
// containing directory if absent. A header row is written only when the file
// is new or empty.
func New(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	l := &Log{
		file: f,
		w:    csv.NewWriter(f),
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat audit log: %w", err)
	}
	if info.Size() == 0 {
		if err := l.w.Write(header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write audit log header: %w", err)
		}
		l.w.Flush()
	}

	return l, nil
}

// Close flushes buffered rows and closes the underlying file
func (l *Log) Close() error {
	l.w.Flush()
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close audit log: %w", err)
	}
	return nil
}

// Info records an informational message
func (l *Log) Info(message string) {
	if message == "" {
		message = "No message provided."
	}
	l.write("INFO", message, nil)
}

// Error records an error. The message may be empty, in which case the row
// carries only the details derived from err.
func (l *Log) Error(message string, err error) {
	l.write("ERROR", message, err)
}

// Critical records an unrecoverable failure
func (l *Log) Critical(message string, err error) {
	l.write("CRITICAL", message, err)
}

func (l *Log) write(level string, message string, cause error) {
	errText := ""
	if cause != nil {
		errText = cause.Error()
	}

	// Attribute the row to the caller of the exported method
	file := "unknown"
	line := 0
	if _, path, n, ok := runtime.Caller(2); ok {
		file = filepath.Base(path)
		line = n
	}

	row := []string{
		time.Now().Format("2006-01-02 15:04:05"),
		level,
		message,
		errText,
		file,
		fmt.Sprintf("%d", line),
	}
	// The csv writer quotes fields containing commas, so messages and error
	// text cannot break row structure
	_ = l.w.Write(row)
	l.w.Flush()
}
