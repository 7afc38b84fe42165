package cbor

// DecodeErrorFactory is the capability a format-agnostic deserialization
// framework needs to manufacture this format's errors without depending on
// its internals. Frameworks should accept any implementation rather than
// the concrete Factory type.
type DecodeErrorFactory interface {
	// Custom builds an error from free-form message text.
	Custom(msg string) error
	// InvalidType builds an error reporting a type mismatch between the
	// value actually decoded and the type the caller expected.
	InvalidType(actual Unexpected, expected string) error
}

// EncodeErrorFactory is the serialization-side counterpart of
// DecodeErrorFactory.
type EncodeErrorFactory interface {
	Custom(msg string) error
}

// Factory manufactures *Error values on behalf of a generic serialization
// framework. The framework has no notion of this format's stream position,
// so every produced error has offset 0.
type Factory struct{}

var (
	_ DecodeErrorFactory = Factory{}
	_ EncodeErrorFactory = Factory{}
)

func (Factory) Custom(msg string) error {
	return CustomError(msg)
}

func (Factory) InvalidType(actual Unexpected, expected string) error {
	return InvalidTypeError(actual, expected)
}
