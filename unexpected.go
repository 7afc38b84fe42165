package cbor

import (
	"reflect"
	"strconv"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/exp/constraints"
)

// Unexpected describes the value a decoder actually saw when the caller
// asked for something else. It renders itself for InvalidTypeError messages,
// e.g. "integer `5`" or `string "abc"`.
type Unexpected struct {
	nilValue bool
	text     string
}

// UnexpectedNil describes the absence of a value (CBOR null or undefined).
func UnexpectedNil() Unexpected {
	return Unexpected{nilValue: true, text: "null"}
}

// UnexpectedBool describes a boolean value.
func UnexpectedBool(v bool) Unexpected {
	return Unexpected{text: "boolean `" + strconv.FormatBool(v) + "`"}
}

// UnexpectedInteger describes an integer value of any width or sign.
func UnexpectedInteger[T constraints.Integer](v T) Unexpected {
	if v < 0 {
		return Unexpected{text: "integer `" + strconv.FormatInt(int64(v), 10) + "`"}
	}
	return Unexpected{text: "integer `" + strconv.FormatUint(uint64(v), 10) + "`"}
}

// UnexpectedFloat describes a floating point value, rendered at the
// precision of its source type.
func UnexpectedFloat[T constraints.Float](v T) Unexpected {
	bits := 64
	if _, ok := any(v).(float32); ok {
		bits = 32
	}
	return Unexpected{text: "floating point `" + strconv.FormatFloat(float64(v), 'g', -1, bits) + "`"}
}

// UnexpectedString describes a text string value.
func UnexpectedString(v string) Unexpected {
	return Unexpected{text: "string " + strconv.Quote(v)}
}

// UnexpectedBytes describes a byte string value.
func UnexpectedBytes() Unexpected {
	return Unexpected{text: "byte array"}
}

// UnexpectedArray describes an array value.
func UnexpectedArray() Unexpected {
	return Unexpected{text: "array"}
}

// UnexpectedMap describes a map value.
func UnexpectedMap() Unexpected {
	return Unexpected{text: "map"}
}

// UnexpectedTag describes a tagged value.
func UnexpectedTag() Unexpected {
	return Unexpected{text: "tag"}
}

// UnexpectedOther describes a value with caller-supplied text, for cases
// the fixed constructors do not cover.
func UnexpectedOther(text string) Unexpected {
	return Unexpected{text: text}
}

// IsNil reports whether the descriptor denotes the absence of a value.
// InvalidTypeError renders this case as "null".
func (u Unexpected) IsNil() bool { return u.nilValue }

// String returns the descriptor's display text.
func (u Unexpected) String() string { return u.text }

// typeNameCache avoids recomputing reflect type strings for repeated
// framework callbacks on the same Go type.
var typeNameCache = xsync.NewMap[reflect.Type, string]()

// UnexpectedValue derives a descriptor from an arbitrary Go value. It is
// meant for format-agnostic framework callers that hold a decoded value
// without knowing its CBOR origin; decoders should use the typed
// constructors directly.
func UnexpectedValue(v any) Unexpected {
	switch v := v.(type) {
	case nil:
		return UnexpectedNil()
	case bool:
		return UnexpectedBool(v)
	case int:
		return UnexpectedInteger(v)
	case int8:
		return UnexpectedInteger(v)
	case int16:
		return UnexpectedInteger(v)
	case int32:
		return UnexpectedInteger(v)
	case int64:
		return UnexpectedInteger(v)
	case uint:
		return UnexpectedInteger(v)
	case uint8:
		return UnexpectedInteger(v)
	case uint16:
		return UnexpectedInteger(v)
	case uint32:
		return UnexpectedInteger(v)
	case uint64:
		return UnexpectedInteger(v)
	case float32:
		return UnexpectedFloat(v)
	case float64:
		return UnexpectedFloat(v)
	case string:
		return UnexpectedString(v)
	case []byte:
		return UnexpectedBytes()
	}

	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return UnexpectedArray()
	case reflect.Map:
		return UnexpectedMap()
	}

	name, ok := typeNameCache.Load(t)
	if !ok {
		name = t.String()
		typeNameCache.Store(t, name)
	}
	return UnexpectedOther(name)
}
