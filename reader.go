package cbor

import (
	"bufio"
	"bytes"
	"io"
)

// source is the minimal byte stream a decoder pulls from.
type source interface {
	io.Reader
	io.ByteReader
}

const (
	// defaultMaxDepth bounds nesting before a decode fails with
	// ErrCodeRecursionLimit.
	defaultMaxDepth = 128

	// defaultMaxLength bounds a single declared byte or text string length
	// before a decode fails with ErrCodeLengthOutOfRange.
	defaultMaxLength = 16 << 20
)

// Reader is the byte source for decoding. It tracks the absolute byte
// offset (so faults can be localized in a dense binary stream), latches the
// first error, and converts stream faults into *Error: an end of input
// becomes the EOF category supplied by the caller at the current offset, a
// transport failure becomes a wrapped ErrCodeIO error with offset 0.
//
// After an error every operation is a no-op returning the latched error.
type Reader struct {
	r      source
	offset uint64
	err    error // first error encountered, always *Error or a misuse sentinel
	depth  int

	maxDepth int
	maxLen   uint64
}

// NewReader creates a Reader over an arbitrary stream. In-memory sources
// are used directly; anything else is buffered.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	var src source
	switch r := r.(type) {
	case *BytesReader:
		src = r
	case *bytes.Reader:
		src = r
	case *bytes.Buffer:
		src = r
	case *bufio.Reader:
		src = r
	default:
		src = bufio.NewReader(r)
	}

	return &Reader{r: src, maxDepth: defaultMaxDepth, maxLen: defaultMaxLength}, nil
}

// NewReaderBytes creates a Reader over an in-memory slice.
func NewReaderBytes(b []byte) *Reader {
	return &Reader{r: NewBytesReader(b), maxDepth: defaultMaxDepth, maxLen: defaultMaxLength}
}

// WithMaxDepth sets the nesting limit and returns the Reader for chaining.
func (r *Reader) WithMaxDepth(n int) *Reader {
	r.maxDepth = n
	return r
}

// WithMaxLength sets the declared-length limit and returns the Reader for
// chaining.
func (r *Reader) WithMaxLength(n uint64) *Reader {
	r.maxLen = n
	return r
}

// Offset returns the number of bytes consumed so far. Collaborators pass
// it to fault constructors as the current cursor position.
func (r *Reader) Offset() uint64 { return r.offset }

// Err returns the latched error state.
func (r *Reader) Err() error { return r.err }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// fail latches a format fault at the current offset.
func (r *Reader) fail(code ErrorCode) error {
	r.setError(syntaxError(code, r.offset))
	return r.err
}

// readFailed converts a raw stream failure: end of input maps to the EOF
// category for the caller's parse context, anything else is a transport
// fault.
func (r *Reader) readFailed(err error, eof ErrorCode) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		r.setError(syntaxError(eof, r.offset))
	} else {
		r.setError(ioError(err))
	}
	return r.err
}

// ReadByte reads one byte. If the input ends, the read fails with the
// given EOF category at the current offset.
func (r *Reader) ReadByte(eof ErrorCode) (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, r.readFailed(err, eof)
	}
	r.offset++
	return b, nil
}

// ReadFull fills p. A partial read counts toward the offset before the
// fault is reported, so the offset points at where the input ran out.
func (r *Reader) ReadFull(p []byte, eof ErrorCode) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.r, p)
	r.offset += uint64(n)
	if err != nil {
		return r.readFailed(err, eof)
	}
	return nil
}

// ReadBytes reads a declared number of bytes into a new slice. Lengths
// beyond the configured limit fail with ErrCodeLengthOutOfRange before any
// allocation.
func (r *Reader) ReadBytes(n uint64, eof ErrorCode) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if n > r.maxLen {
		return nil, r.fail(ErrCodeLengthOutOfRange)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := r.ReadFull(buf, eof); err != nil {
		return nil, err
	}
	return buf, nil
}

// Skip discards n bytes using a pooled scratch buffer.
func (r *Reader) Skip(n uint64, eof ErrorCode) error {
	if r.err != nil {
		return r.err
	}
	scratch := skipPool.Get().(*[]byte)
	defer skipPool.Put(scratch)

	for n > 0 {
		chunk := *scratch
		if n < uint64(len(chunk)) {
			chunk = chunk[:n]
		}
		read, err := io.ReadFull(r.r, chunk)
		r.offset += uint64(read)
		if err != nil {
			return r.readFailed(err, eof)
		}
		n -= uint64(read)
	}
	return nil
}

// Enter records one level of nesting; decoding fails with
// ErrCodeRecursionLimit once the configured depth is exceeded.
func (r *Reader) Enter() error {
	if r.err != nil {
		return r.err
	}
	r.depth++
	if r.depth > r.maxDepth {
		return r.fail(ErrCodeRecursionLimit)
	}
	return nil
}

// Leave unwinds one level of nesting recorded by Enter.
func (r *Reader) Leave() {
	if r.depth == 0 {
		r.setError(ErrUnbalancedLeave)
		return
	}
	r.depth--
}

// End verifies the input is exhausted. A leftover byte fails with
// ErrCodeTrailingData at its offset.
func (r *Reader) End() error {
	if r.err != nil {
		return r.err
	}
	_, err := r.r.ReadByte()
	if err == nil {
		return r.fail(ErrCodeTrailingData)
	}
	if err != io.EOF {
		r.setError(ioError(err))
		return r.err
	}
	return nil
}
