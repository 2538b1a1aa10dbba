package planner

import (
	"github.com/wippyai/leanbuffer/planner/internal/kind"
)

// EncodeStrategy selects how a field is committed into the table.
type EncodeStrategy uint8

const (
	// EncodeInline commits a scalar with its default; the builder omits the
	// slot when the value equals the default.
	EncodeInline EncodeStrategy = iota
	// EncodeInlinePresent commits an optional scalar only when present, and
	// always writes it, even when it equals the scalar default.
	EncodeInlinePresent
	// EncodeIndirect builds an out-of-line object before the table is opened
	// and always commits its offset, even for an empty value.
	EncodeIndirect
	// EncodeIndirectPresent builds and commits an out-of-line object only
	// when the optional value is present.
	EncodeIndirectPresent
)

var encodeNames = [...]string{
	EncodeInline:          "inline",
	EncodeInlinePresent:   "inline-if-present",
	EncodeIndirect:        "indirect",
	EncodeIndirectPresent: "indirect-if-present",
}

func (s EncodeStrategy) String() string {
	if int(s) < len(encodeNames) {
		return encodeNames[s]
	}
	return "unknown"
}

// DecodeStrategy selects how a field is read back. No strategy fails:
// missing or malformed data leaves the default in place.
type DecodeStrategy uint8

const (
	// DecodeScalar reads with the default as fallback.
	DecodeScalar DecodeStrategy = iota
	// DecodeScalarOptional reads raw; an absent slot is None.
	DecodeScalarOptional
	// DecodeChar reads a code point; an invalid one leaves the default.
	DecodeChar
	// DecodeCharOptional reads a code point; absent or invalid is None.
	DecodeCharOptional
	// DecodeText follows the offset and checks UTF-8; absent or malformed
	// leaves the empty string.
	DecodeText
	// DecodeTextOptional follows the offset when present; absent is None.
	DecodeTextOptional
	// DecodeSequence copies elements; absent leaves the empty sequence.
	DecodeSequence
	// DecodeSignedBytes reinterprets a byte vector as two's-complement
	// signed bytes.
	DecodeSignedBytes
	// DecodeCharSequence converts code points and drops invalid ones.
	DecodeCharSequence
	// DecodeTextSequence follows each element offset.
	DecodeTextSequence
)

var decodeNames = [...]string{
	DecodeScalar:         "scalar",
	DecodeScalarOptional: "scalar-optional",
	DecodeChar:           "char",
	DecodeCharOptional:   "char-optional",
	DecodeText:           "text",
	DecodeTextOptional:   "text-optional",
	DecodeSequence:       "sequence",
	DecodeSignedBytes:    "signed-bytes",
	DecodeCharSequence:   "char-sequence",
	DecodeTextSequence:   "text-sequence",
}

func (s DecodeStrategy) String() string {
	if int(s) < len(decodeNames) {
		return decodeNames[s]
	}
	return "unknown"
}

// Codec is the per-field value codec selected from the field's kind.
type Codec struct {
	Default any
	Encode  EncodeStrategy
	Decode  DecodeStrategy
}

// CodecOf returns the codec for t.
func CodecOf(t Type) Codec {
	return Codec{
		Encode:  encodeStrategy(t),
		Decode:  decodeStrategy(t),
		Default: DefaultValue(t),
	}
}

func encodeStrategy(t Type) EncodeStrategy {
	switch t.Shape {
	case kind.ShapeText, kind.ShapeSequence:
		return EncodeIndirect
	case kind.ShapeOptional:
		if t.Text {
			return EncodeIndirectPresent
		}
		return EncodeInlinePresent
	default:
		return EncodeInline
	}
}

func decodeStrategy(t Type) DecodeStrategy {
	switch t.Shape {
	case kind.ShapeText:
		return DecodeText
	case kind.ShapeSequence:
		switch {
		case t.Text:
			return DecodeTextSequence
		case t.Scalar == kind.Char:
			return DecodeCharSequence
		case t.Scalar == kind.S8:
			return DecodeSignedBytes
		default:
			return DecodeSequence
		}
	case kind.ShapeOptional:
		switch {
		case t.Text:
			return DecodeTextOptional
		case t.Scalar == kind.Char:
			return DecodeCharOptional
		default:
			return DecodeScalarOptional
		}
	default:
		if t.Scalar == kind.Char {
			return DecodeChar
		}
		return DecodeScalar
	}
}

// DefaultValue returns the canonical default of t as a Go value: numeric
// zero of the scalar's Go type, false, rune 0, "", an empty non-nil slice,
// or nil for optionals.
func DefaultValue(t Type) any {
	switch t.Shape {
	case kind.ShapeScalar:
		return scalarZero(t.Scalar)
	case kind.ShapeText:
		return ""
	case kind.ShapeSequence:
		if t.Text {
			return []string{}
		}
		return emptySlice(t.Scalar)
	default:
		return nil
	}
}

func scalarZero(s Scalar) any {
	switch s {
	case kind.Bool:
		return false
	case kind.U8:
		return uint8(0)
	case kind.S8:
		return int8(0)
	case kind.U16:
		return uint16(0)
	case kind.S16:
		return int16(0)
	case kind.U32:
		return uint32(0)
	case kind.S32:
		return int32(0)
	case kind.U64:
		return uint64(0)
	case kind.S64:
		return int64(0)
	case kind.F32:
		return float32(0)
	case kind.F64:
		return float64(0)
	case kind.Char:
		return rune(0)
	default:
		return nil
	}
}

func emptySlice(s Scalar) any {
	switch s {
	case kind.Bool:
		return []bool{}
	case kind.U8:
		return []uint8{}
	case kind.S8:
		return []int8{}
	case kind.U16:
		return []uint16{}
	case kind.S16:
		return []int16{}
	case kind.U32:
		return []uint32{}
	case kind.S32:
		return []int32{}
	case kind.U64:
		return []uint64{}
	case kind.S64:
		return []int64{}
	case kind.F32:
		return []float32{}
	case kind.F64:
		return []float64{}
	case kind.Char:
		return []rune{}
	default:
		return nil
	}
}
