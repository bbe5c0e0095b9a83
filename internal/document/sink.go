package document

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoTarget is returned when a sink has no destination to insert into.
var ErrNoTarget = errors.New("no insertion target")

// Sink accepts a rendered text block and inserts it into its destination.
type Sink interface {
	Insert(text string) error
}

// FileSink appends text to a notes file, creating it if necessary.
type FileSink struct {
	path string
}

// NewFileSink creates a sink appending to the given file.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Insert appends the text block to the file.
func (s *FileSink) Insert(text string) error {
	if s.path == "" {
		return ErrNoTarget
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open note file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to append to note file: %w", err)
	}
	return nil
}

// WriterSink writes text to an io.Writer, typically stdout.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Insert writes the text block to the underlying writer.
func (s *WriterSink) Insert(text string) error {
	if s.w == nil {
		return ErrNoTarget
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("failed to write brief: %w", err)
	}
	return nil
}
