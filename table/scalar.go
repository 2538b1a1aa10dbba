package table

import (
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Scalar is the set of fixed-size values a table stores inline.
// Char values are stored as uint32 code points.
type Scalar interface {
	bool | uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

func sizeOf[T Scalar]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// read decodes a little-endian T from the start of b. b must hold at least
// sizeOf[T]() bytes.
func read[T Scalar](b []byte) T {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = flatbuffers.GetBool(b)
	case *uint8:
		*p = flatbuffers.GetUint8(b)
	case *int8:
		*p = flatbuffers.GetInt8(b)
	case *uint16:
		*p = flatbuffers.GetUint16(b)
	case *int16:
		*p = flatbuffers.GetInt16(b)
	case *uint32:
		*p = flatbuffers.GetUint32(b)
	case *int32:
		*p = flatbuffers.GetInt32(b)
	case *uint64:
		*p = flatbuffers.GetUint64(b)
	case *int64:
		*p = flatbuffers.GetInt64(b)
	case *float32:
		*p = flatbuffers.GetFloat32(b)
	case *float64:
		*p = flatbuffers.GetFloat64(b)
	}
	return v
}

// Prepend writes x into the builder, aligned to its width.
func Prepend[T Scalar](b *flatbuffers.Builder, x T) {
	switch v := any(x).(type) {
	case bool:
		b.PrependBool(v)
	case uint8:
		b.PrependUint8(v)
	case int8:
		b.PrependInt8(v)
	case uint16:
		b.PrependUint16(v)
	case int16:
		b.PrependInt16(v)
	case uint32:
		b.PrependUint32(v)
	case int32:
		b.PrependInt32(v)
	case uint64:
		b.PrependUint64(v)
	case int64:
		b.PrependInt64(v)
	case float32:
		b.PrependFloat32(v)
	case float64:
		b.PrependFloat64(v)
	}
}
