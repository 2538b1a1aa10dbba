package table

import (
	"unicode/utf8"

	"fortio.org/safecast"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Reader reads fields of a finished table buffer by vtable offset.
// The zero Reader has no fields.
type Reader struct {
	buf    []byte
	pos    uint64
	vtable uint64
	vlen   uint64
}

// NewReader locates the root table of buf. It returns the zero Reader when
// buf is too short or its root or vtable offsets point outside buf.
func NewReader(buf []byte) Reader {
	size := uint64(len(buf))
	if size < flatbuffers.SizeUOffsetT {
		return Reader{}
	}

	pos := uint64(flatbuffers.GetUOffsetT(buf))
	if pos+flatbuffers.SizeSOffsetT > size {
		return Reader{}
	}

	vt := int64(pos) - int64(flatbuffers.GetSOffsetT(buf[pos:]))
	if vt < 0 || uint64(vt)+2*flatbuffers.SizeVOffsetT > size {
		return Reader{}
	}
	vtable := uint64(vt)

	vlen := uint64(flatbuffers.GetVOffsetT(buf[vtable:]))
	if vlen < 2*flatbuffers.SizeVOffsetT || vtable+vlen > size {
		return Reader{}
	}

	return Reader{buf: buf, pos: pos, vtable: vtable, vlen: vlen}
}

// Valid reports whether a root table was located.
func (r Reader) Valid() bool {
	return r.buf != nil
}

// Has reports whether the field at slot is present.
func (r Reader) Has(slot uint16) bool {
	_, ok := r.field(slot, 0)
	return ok
}

// field returns the absolute position of a present field whose inline
// value is width bytes wide.
func (r Reader) field(slot uint16, width int) (uint64, bool) {
	if r.buf == nil || uint64(slot)+flatbuffers.SizeVOffsetT > r.vlen {
		return 0, false
	}
	off := flatbuffers.GetVOffsetT(r.buf[r.vtable+uint64(slot):])
	if off == 0 {
		return 0, false
	}
	p := r.pos + uint64(off)
	if p+uint64(width) > uint64(len(r.buf)) {
		return 0, false
	}
	return p, true
}

// vectorAt follows the offset stored at p to a length-prefixed vector of
// elemSize-byte elements. It returns the position of the first element and
// the element count.
func (r Reader) vectorAt(p uint64, elemSize int) (uint64, int, bool) {
	size := uint64(len(r.buf))
	if p+flatbuffers.SizeUOffsetT > size {
		return 0, 0, false
	}
	start := p + uint64(flatbuffers.GetUOffsetT(r.buf[p:]))
	if start+flatbuffers.SizeUOffsetT > size {
		return 0, 0, false
	}
	n := flatbuffers.GetUint32(r.buf[start:])
	data := start + flatbuffers.SizeUOffsetT
	if data+uint64(n)*uint64(elemSize) > size {
		return 0, 0, false
	}
	count, err := safecast.Conv[int](n)
	if err != nil {
		return 0, 0, false
	}
	return data, count, true
}

// vector returns the element bytes and count of the vector at slot.
func (r Reader) vector(slot uint16, elemSize int) ([]byte, int, bool) {
	p, ok := r.field(slot, flatbuffers.SizeUOffsetT)
	if !ok {
		return nil, 0, false
	}
	data, n, ok := r.vectorAt(p, elemSize)
	if !ok {
		return nil, 0, false
	}
	return r.buf[data : data+uint64(n*elemSize)], n, true
}

// Get reads the scalar at slot, returning d when the field is absent.
func Get[T Scalar](r Reader, slot uint16, d T) T {
	if v, ok := Lookup[T](r, slot); ok {
		return v
	}
	return d
}

// Lookup reads the scalar at slot and reports whether it was present.
func Lookup[T Scalar](r Reader, slot uint16) (T, bool) {
	p, ok := r.field(slot, sizeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return read[T](r.buf[p:]), true
}

// Char reads the code point at slot. An absent field or invalid code point
// returns d.
func (r Reader) Char(slot uint16, d rune) rune {
	if c, ok := r.LookupChar(slot); ok {
		return c
	}
	return d
}

// LookupChar reads the code point at slot. It reports false when the field
// is absent or the code point is not a valid rune.
func (r Reader) LookupChar(slot uint16) (rune, bool) {
	c, ok := Lookup[uint32](r, slot)
	if !ok {
		return 0, false
	}
	return CodePoint(c)
}

// Text reads the string at slot. It reports false when the field is absent,
// truncated or not valid UTF-8.
func (r Reader) Text(slot uint16) (string, bool) {
	data, _, ok := r.vector(slot, 1)
	if !ok || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// Vector copies the scalar vector at slot.
func Vector[T Scalar](r Reader, slot uint16) ([]T, bool) {
	size := sizeOf[T]()
	data, n, ok := r.vector(slot, size)
	if !ok {
		return nil, false
	}
	out := make([]T, n)
	for i := range out {
		out[i] = read[T](data[i*size:])
	}
	return out, true
}

// Bytes copies the byte vector at slot.
func (r Reader) Bytes(slot uint16) ([]byte, bool) {
	data, _, ok := r.vector(slot, 1)
	if !ok {
		return nil, false
	}
	return append([]byte{}, data...), true
}

// Int8s reads the byte vector at slot as two's-complement signed bytes.
func (r Reader) Int8s(slot uint16) ([]int8, bool) {
	data, _, ok := r.vector(slot, 1)
	if !ok {
		return nil, false
	}
	return SignedBytes(data), true
}

// Runes reads the code point vector at slot, dropping invalid code points.
func (r Reader) Runes(slot uint16) ([]rune, bool) {
	codes, ok := Vector[uint32](r, slot)
	if !ok {
		return nil, false
	}
	return FilterRunes(codes), true
}

// Strings reads the string vector at slot. An element pointing outside the
// buffer makes the whole vector absent; an element that is not valid UTF-8
// reads as the empty string.
func (r Reader) Strings(slot uint16) ([]string, bool) {
	p, ok := r.field(slot, flatbuffers.SizeUOffsetT)
	if !ok {
		return nil, false
	}
	base, n, ok := r.vectorAt(p, flatbuffers.SizeUOffsetT)
	if !ok {
		return nil, false
	}

	out := make([]string, n)
	for i := range out {
		data, length, ok := r.vectorAt(base+uint64(i)*flatbuffers.SizeUOffsetT, 1)
		if !ok {
			return nil, false
		}
		if elem := r.buf[data : data+uint64(length)]; utf8.Valid(elem) {
			out[i] = string(elem)
		}
	}
	return out, true
}
