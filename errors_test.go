package cbor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Error Test Suite ---

type ErrorTestSuite struct {
	suite.Suite
}

func (s *ErrorTestSuite) TestDisplayTable() {
	// The wording here is a compatibility surface; downstream tooling
	// matches on it verbatim.
	cases := map[ErrorCode]string{
		ErrCodeEOFValue:         "EOF while parsing a value",
		ErrCodeEOFArray:         "EOF while parsing an array",
		ErrCodeEOFMap:           "EOF while parsing a map",
		ErrCodeNumberOutOfRange: "number out of range",
		ErrCodeLengthOutOfRange: "length out of range",
		ErrCodeInvalidUTF8:      "invalid UTF-8",
		ErrCodeUnassigned:       "unassigned type",
		ErrCodeUnexpected:       "unexpected code",
		ErrCodeTrailingData:     "trailing data",
		ErrCodeArrayTooShort:    "array too short",
		ErrCodeArrayTooLong:     "array too long",
		ErrCodeRecursionLimit:   "recursion limit exceeded",
	}

	for code, text := range cases {
		s.T().Run(text, func(t *testing.T) {
			unlocalized := syntaxError(code, 0)
			assert.Equal(t, text, unlocalized.Error(), "offset 0 must not append a suffix")

			localized := syntaxError(code, 42)
			assert.Equal(t, text+" at offset 42", localized.Error())
		})
	}
}

func (s *ErrorTestSuite) TestOffsetAccessor() {
	s.T().Run("SyntaxKeepsOffsetVerbatim", func(t *testing.T) {
		err := syntaxError(ErrCodeEOFArray, 17)
		assert.Equal(t, uint64(17), err.Offset())
		assert.Equal(t, ErrCodeEOFArray, err.Code())
		assert.Equal(t, "EOF while parsing an array at offset 17", err.Error())
	})

	s.T().Run("IOIsNeverLocalized", func(t *testing.T) {
		err := ioError(errors.New("disk full"))
		assert.Zero(t, err.Offset())
		assert.Equal(t, "disk full", err.Error())
	})

	s.T().Run("CustomIsNeverLocalized", func(t *testing.T) {
		err := CustomError("missing field `x`")
		assert.Zero(t, err.Offset())
		assert.Equal(t, "missing field `x`", err.Error())
	})

	s.T().Run("ZeroOffsetSyntaxHasNoSuffix", func(t *testing.T) {
		err := syntaxError(ErrCodeRecursionLimit, 0)
		assert.Equal(t, "recursion limit exceeded", err.Error())
	})
}

func (s *ErrorTestSuite) TestCauseChaining() {
	s.T().Run("IOExposesWrappedFault", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := ioError(cause)

		require.ErrorIs(t, err, cause)
		assert.Equal(t, cause, err.Unwrap())
	})

	s.T().Run("OtherCategoriesHaveNoCause", func(t *testing.T) {
		assert.Nil(t, syntaxError(ErrCodeTrailingData, 3).Unwrap())
		assert.Nil(t, CustomError("boom").Unwrap())
	})

	s.T().Run("ErrorsAsFindsEnvelope", func(t *testing.T) {
		var wrapped error = fmt.Errorf("decode profile: %w", syntaxError(ErrCodeInvalidUTF8, 9))

		var cerr *Error
		require.ErrorAs(t, wrapped, &cerr)
		assert.Equal(t, ErrCodeInvalidUTF8, cerr.Code())
		assert.Equal(t, uint64(9), cerr.Offset())
	})
}

func (s *ErrorTestSuite) TestInvalidType() {
	s.T().Run("NilActualRendersAsNull", func(t *testing.T) {
		err := InvalidTypeError(UnexpectedNil(), "a string")
		assert.Equal(t, "invalid type: null, expected a string", err.Error())
		assert.Zero(t, err.Offset())
	})

	s.T().Run("OtherActualUsesOwnDisplay", func(t *testing.T) {
		err := InvalidTypeError(UnexpectedInteger(5), "a string")
		assert.Equal(t, "invalid type: integer `5`, expected a string", err.Error())
	})
}

func (s *ErrorTestSuite) TestCustomErrorf() {
	err := CustomErrorf("missing field `%s`", "id")
	s.Assert().Equal("missing field `id`", err.Error())
	s.Assert().Equal(ErrCodeMessage, err.Code())
}

func (s *ErrorTestSuite) TestGoStringIsStructural() {
	err := syntaxError(ErrCodeEOFMap, 7)
	dump := fmt.Sprintf("%#v", err)

	// The dump format is unstable; only check it differs from the display
	// text and exposes the raw fields.
	s.Assert().NotEqual(err.Error(), dump)
	s.Assert().Contains(dump, "offset: 7")
}

// TestError runs the ErrorTestSuite.
func TestError(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

// --- Factory Tests ---

func TestFactoryCapabilities(t *testing.T) {
	t.Run("Custom", func(t *testing.T) {
		var f DecodeErrorFactory = Factory{}
		err := f.Custom("missing field `x`")

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "missing field `x`", cerr.Error())
		assert.Zero(t, cerr.Offset(), "framework-produced faults are never localized")
	})

	t.Run("InvalidType", func(t *testing.T) {
		var f DecodeErrorFactory = Factory{}
		err := f.InvalidType(UnexpectedBool(true), "a map")

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "invalid type: boolean `true`, expected a map", cerr.Error())
		assert.Zero(t, cerr.Offset())
	})

	t.Run("EncodeSideCustom", func(t *testing.T) {
		var f EncodeErrorFactory = Factory{}
		err := f.Custom("unsupported key type")

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, ErrCodeMessage, cerr.Code())
	})
}
