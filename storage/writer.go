package storage

import (
	"bufio"
	"io"
)

// Writer wraps an io.Writer, mirroring Reader.
type Writer struct {
	w *bufio.Writer
}

// NewWriter builds a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 4096)}
}

// Write implements io.Writer so a *Writer can be passed directly to
// anything that needs one.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Flush flushes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
