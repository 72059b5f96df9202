package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer handles streaming CSV output to a file or io.Writer.
// Records are flushed as they are written so output appears incrementally.
type Writer struct {
	mu        sync.Mutex
	csv       *csv.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a new CSV writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		csv: csv.NewWriter(w),
	}
}

// NewFileWriter creates a new CSV writer that writes to a file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		csv:       csv.NewWriter(file),
		closeFunc: file.Close,
	}, nil
}

// Write writes a single CSV record and flushes it immediately.
func (w *Writer) Write(record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes pending output and closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
