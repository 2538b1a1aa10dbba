package table

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// PrependSlot commits x at slot index o. The slot is omitted when x equals d.
func PrependSlot[T Scalar](b *flatbuffers.Builder, o int, x, d T) {
	if x != d {
		Prepend(b, x)
		b.Slot(o)
	}
}

// PrependSlotAlways commits x at slot index o, even when x is a default.
func PrependSlotAlways[T Scalar](b *flatbuffers.Builder, o int, x T) {
	Prepend(b, x)
	b.Slot(o)
}

// PrependCharSlot commits c as a 4-byte code point, omitted when c equals d.
func PrependCharSlot(b *flatbuffers.Builder, o int, c, d rune) {
	PrependSlot(b, o, uint32(c), uint32(d))
}

// PrependCharSlotAlways commits c as a 4-byte code point unconditionally.
func PrependCharSlotAlways(b *flatbuffers.Builder, o int, c rune) {
	PrependSlotAlways(b, o, uint32(c))
}

// PrependOffsetSlot commits the offset of an out-of-line object at slot
// index o unconditionally.
func PrependOffsetSlot(b *flatbuffers.Builder, o int, off flatbuffers.UOffsetT) {
	b.PrependUOffsetT(off)
	b.Slot(o)
}

// CreateVector writes a length-prefixed vector of scalars.
func CreateVector[T Scalar](b *flatbuffers.Builder, v []T) flatbuffers.UOffsetT {
	if bs, ok := any(v).([]byte); ok {
		return b.CreateByteVector(bs)
	}
	size := sizeOf[T]()
	b.StartVector(size, len(v), size)
	for i := len(v) - 1; i >= 0; i-- {
		Prepend(b, v[i])
	}
	return b.EndVector(len(v))
}

// CreateInt8Vector writes signed bytes as a raw byte vector.
func CreateInt8Vector(b *flatbuffers.Builder, v []int8) flatbuffers.UOffsetT {
	return b.CreateByteVector(UnsignedBytes(v))
}

// CreateRuneVector writes runes as a vector of 4-byte code points.
func CreateRuneVector(b *flatbuffers.Builder, v []rune) flatbuffers.UOffsetT {
	return CreateVector(b, CodePoints(v))
}

// CreateStringVector writes every string, then a vector of their offsets.
func CreateStringVector(b *flatbuffers.Builder, v []string) flatbuffers.UOffsetT {
	offs := make([]flatbuffers.UOffsetT, len(v))
	for i, s := range v {
		offs[i] = b.CreateString(s)
	}
	b.StartVector(flatbuffers.SizeUOffsetT, len(offs), flatbuffers.SizeUOffsetT)
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offs[i])
	}
	return b.EndVector(len(offs))
}

// Finish closes the open table, finishes the buffer and returns its bytes.
// The bytes alias the builder and are valid until its next Reset.
func Finish(b *flatbuffers.Builder) []byte {
	b.Finish(b.EndObject())
	return b.FinishedBytes()
}
