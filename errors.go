package cbor

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil interface
	ErrNilIO = errors.New("cbor: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrUnbalancedLeave indicates a Leave call without a matching Enter.
	ErrUnbalancedLeave = errors.New("cbor: Leave called without a matching Enter")
)

// ErrorCode classifies the kind of fault detected while encoding or decoding
// a CBOR stream. The set is closed for format-specific faults; ErrCodeMessage
// and ErrCodeIO are the two escape hatches for faults outside the format
// itself (free-form text and wrapped transport failures).
type ErrorCode uint8

const (
	// ErrCodeMessage carries caller-supplied text with no fixed category,
	// e.g. a framework complaining about a missing field.
	ErrCodeMessage ErrorCode = iota

	// ErrCodeIO wraps a transport-level failure from the host environment.
	ErrCodeIO

	// ErrCodeEOFValue indicates the input ended in the middle of a value.
	ErrCodeEOFValue

	// ErrCodeEOFArray indicates the input ended in the middle of an array.
	ErrCodeEOFArray

	// ErrCodeEOFMap indicates the input ended in the middle of a map.
	ErrCodeEOFMap

	// ErrCodeNumberOutOfRange indicates a number that does not fit the
	// destination type.
	ErrCodeNumberOutOfRange

	// ErrCodeLengthOutOfRange indicates a declared length beyond what the
	// decoder is willing to allocate.
	ErrCodeLengthOutOfRange

	// ErrCodeInvalidUTF8 indicates a text string that is not valid UTF-8.
	ErrCodeInvalidUTF8

	// ErrCodeUnassigned indicates a type code the format does not assign.
	ErrCodeUnassigned

	// ErrCodeUnexpected indicates a well-formed code in a position where it
	// is not allowed.
	ErrCodeUnexpected

	// ErrCodeTrailingData indicates leftover input after a complete value.
	ErrCodeTrailingData

	// ErrCodeArrayTooShort indicates an array with fewer elements than the
	// destination requires.
	ErrCodeArrayTooShort

	// ErrCodeArrayTooLong indicates an array with more elements than the
	// destination allows.
	ErrCodeArrayTooLong

	// ErrCodeRecursionLimit indicates nesting deeper than the configured
	// recursion limit.
	ErrCodeRecursionLimit
)

// String returns the fixed display text for the code. Downstream tooling
// matches on this wording; changing it is a breaking change.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeEOFValue:
		return "EOF while parsing a value"
	case ErrCodeEOFArray:
		return "EOF while parsing an array"
	case ErrCodeEOFMap:
		return "EOF while parsing a map"
	case ErrCodeNumberOutOfRange:
		return "number out of range"
	case ErrCodeLengthOutOfRange:
		return "length out of range"
	case ErrCodeInvalidUTF8:
		return "invalid UTF-8"
	case ErrCodeUnassigned:
		return "unassigned type"
	case ErrCodeUnexpected:
		return "unexpected code"
	case ErrCodeTrailingData:
		return "trailing data"
	case ErrCodeArrayTooShort:
		return "array too short"
	case ErrCodeArrayTooLong:
		return "array too long"
	case ErrCodeRecursionLimit:
		return "recursion limit exceeded"
	case ErrCodeMessage:
		return "message"
	case ErrCodeIO:
		return "io"
	}
	return "unknown"
}

// Error couples one ErrorCode with the byte offset at which the fault was
// detected. It is immutable after construction and always handed around as
// *Error, so the error value returned from a failed encode or decode stays
// two words no matter how large the wrapped cause or message text is.
//
// Offset 0 means the fault is not localized to a stream position; that is
// always the case for ErrCodeMessage and ErrCodeIO.
type Error struct {
	code   ErrorCode
	offset uint64
	msg    string // payload for ErrCodeMessage
	cause  error  // payload for ErrCodeIO
}

// syntaxError reports a format fault at the given byte offset.
func syntaxError(code ErrorCode, offset uint64) *Error {
	return &Error{code: code, offset: offset}
}

// ioError wraps a transport failure. The fault is environmental, not a
// stream position, so the offset is always 0.
func ioError(err error) *Error {
	return &Error{code: ErrCodeIO, cause: err}
}

// CustomError builds an ErrCodeMessage error carrying the given text with
// offset 0. It is the public escape hatch for faults with no fixed category.
func CustomError(msg string) *Error {
	return &Error{code: ErrCodeMessage, msg: msg}
}

// CustomErrorf is CustomError with fmt-style formatting.
func CustomErrorf(format string, args ...any) *Error {
	return CustomError(fmt.Sprintf(format, args...))
}

// InvalidTypeError reports that a decoded value had the wrong type: actual
// describes the value actually seen, expected what the caller asked for.
func InvalidTypeError(actual Unexpected, expected string) *Error {
	if actual.IsNil() {
		return CustomError("invalid type: null, expected " + expected)
	}
	return CustomError("invalid type: " + actual.String() + ", expected " + expected)
}

// Code returns the fault category recorded at construction.
func (e *Error) Code() ErrorCode { return e.code }

// Offset returns the byte offset recorded at construction; 0 means the
// fault is not localized to a stream position.
func (e *Error) Offset() uint64 { return e.offset }

// Unwrap exposes the wrapped transport failure of an ErrCodeIO error for
// errors.Is/errors.As chaining. All other categories have no cause.
func (e *Error) Unwrap() error {
	if e.code == ErrCodeIO {
		return e.cause
	}
	return nil
}

// Error implements the error interface with the human-facing rendering:
// the category's fixed text (or the message text, or the wrapped failure's
// text), followed by " at offset N" when the fault is localized.
func (e *Error) Error() string {
	var text string
	switch e.code {
	case ErrCodeMessage:
		text = e.msg
	case ErrCodeIO:
		text = e.cause.Error()
	default:
		text = e.code.String()
	}
	if e.offset == 0 {
		return text
	}
	return text + " at offset " + strconv.FormatUint(e.offset, 10)
}

// GoString renders a verbatim field dump for %#v, independent of the
// display text. The wording is for logs and tracing only and carries no
// stability guarantee.
func (e *Error) GoString() string {
	return fmt.Sprintf("&cbor.Error{code: %d, offset: %d, msg: %q, cause: %v}",
		e.code, e.offset, e.msg, e.cause)
}
