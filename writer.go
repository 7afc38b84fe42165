package cbor

import (
	"bufio"
	"bytes"
	"io"
)

// sink is the minimal byte stream an encoder pushes to.
type sink interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// bufferSink adapts *bytes.Buffer, which never needs flushing.
type bufferSink struct {
	*bytes.Buffer
}

func (bufferSink) Flush() error { return nil }

// Writer is the byte sink for encoding. Like Reader it tracks the absolute
// byte offset and latches the first error; a failed write surfaces as a
// wrapped ErrCodeIO error.
type Writer struct {
	w      sink
	offset uint64
	err    error // first error encountered. Subsequent writes become no-ops.
}

// NewWriter creates a Writer over an arbitrary stream. In-memory sinks are
// used directly; anything else is buffered, and the caller must Flush (or
// call Result) to push out buffered data.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	var dst sink
	switch w := w.(type) {
	case *BytesWriter:
		dst = w
	case *bytes.Buffer:
		dst = bufferSink{w}
	case *bufio.Writer:
		dst = w
	default:
		dst = bufio.NewWriter(w)
	}

	return &Writer{w: dst}, nil
}

// NewWriterBytes creates a Writer over a pre-allocated slice. Writes past
// its capacity fail with a wrapped io.ErrShortWrite.
func NewWriterBytes(p []byte) *Writer {
	return &Writer{w: NewBytesWriter(p)}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() uint64 { return w.offset }

// Err returns the latched error state.
func (w *Writer) Err() error { return w.err }

// setError records the first non-nil failure as a wrapped transport fault.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = ioError(err)
	}
}

// WriteByte writes one byte.
func (w *Writer) WriteByte(b byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.WriteByte(b); err != nil {
		w.setError(err)
		return w.err
	}
	w.offset++
	return nil
}

// Write implements the io.Writer interface.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.offset += uint64(n)
	w.setError(err)
	return n, w.err
}

// WriteString writes a string without copying it to a byte slice first.
func (w *Writer) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.w, s)
	w.offset += uint64(n)
	w.setError(err)
	return n, w.err
}

// Flush writes any buffered data to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.setError(w.w.Flush())
	return w.err
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (uint64, error) {
	w.Flush()
	return w.offset, w.err
}
