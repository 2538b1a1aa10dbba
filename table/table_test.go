package table

import (
	"math"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(i int) uint16 { return uint16(4 + 2*i) }

// buildSample writes a five-field table:
// 0 int64, 1 []int64, 2 string, 3 uint16 (left at default), 4 []string.
func buildSample(t *testing.T) []byte {
	t.Helper()
	b := flatbuffers.NewBuilder(0)

	vec := CreateVector(b, []int64{8, 3, 3, 15})
	str := b.CreateString("hello")
	strs := CreateStringVector(b, []string{"a", "", "ccc"})

	b.StartObject(5)
	PrependSlot(b, 0, int64(0x1337833F), 0)
	PrependOffsetSlot(b, 1, vec)
	PrependOffsetSlot(b, 4, strs)
	PrependOffsetSlot(b, 2, str)
	PrependSlot(b, 3, uint16(0), 0)
	return append([]byte{}, Finish(b)...)
}

func TestReaderScalars(t *testing.T) {
	r := NewReader(buildSample(t))
	require.True(t, r.Valid())

	assert.Equal(t, int64(0x1337833F), Get(r, slot(0), int64(7)))
	assert.False(t, r.Has(slot(3)), "default scalar must be omitted")
	assert.Equal(t, uint16(9), Get(r, slot(3), uint16(9)))

	_, ok := Lookup[uint16](r, slot(3))
	assert.False(t, ok)

	assert.Equal(t, int64(5), Get(r, slot(40), int64(5)), "slot past vtable end")
}

func TestReaderIndirect(t *testing.T) {
	r := NewReader(buildSample(t))

	v, ok := Vector[int64](r, slot(1))
	require.True(t, ok)
	assert.Equal(t, []int64{8, 3, 3, 15}, v)

	s, ok := r.Text(slot(2))
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	ss, ok := r.Strings(slot(4))
	require.True(t, ok)
	assert.Equal(t, []string{"a", "", "ccc"}, ss)

	_, ok = r.Text(slot(3))
	assert.False(t, ok)
}

func TestReaderEmptyBuffer(t *testing.T) {
	for _, buf := range [][]byte{nil, {}, {1, 2}, {0xff, 0xff, 0xff, 0xff}} {
		r := NewReader(buf)
		assert.False(t, r.Valid())
		assert.Equal(t, int64(3), Get(r, slot(0), int64(3)))
		_, ok := r.Text(slot(0))
		assert.False(t, ok)
		_, ok = r.Strings(slot(0))
		assert.False(t, ok)
	}
}

func TestReaderTruncated(t *testing.T) {
	buf := buildSample(t)
	for n := range len(buf) {
		r := NewReader(buf[:n])
		assert.NotPanics(t, func() {
			Get(r, slot(0), int64(0))
			_, _ = Vector[int64](r, slot(1))
			_, _ = r.Text(slot(2))
			_, _ = r.Strings(slot(4))
		})
	}
}

func TestReaderInvalidUTF8(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	bad := b.CreateByteString([]byte{0xff, 0xfe})
	good := b.CreateString("ok")
	b.StartVector(4, 2, 4)
	b.PrependUOffsetT(good)
	b.PrependUOffsetT(bad)
	list := b.EndVector(2)
	bad2 := b.CreateByteString([]byte{0xc3})

	b.StartObject(2)
	PrependOffsetSlot(b, 0, list)
	PrependOffsetSlot(b, 1, bad2)
	r := NewReader(Finish(b))

	ss, ok := r.Strings(slot(0))
	require.True(t, ok)
	assert.Equal(t, []string{"", "ok"}, ss)

	_, ok = r.Text(slot(1))
	assert.False(t, ok)
}

func TestOptionalDefaultIsWritten(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	b.StartObject(2)
	PrependSlotAlways(b, 0, int64(0))
	PrependSlotAlways(b, 1, false)
	r := NewReader(Finish(b))

	v, ok := Lookup[int64](r, slot(0))
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)

	f, ok := Lookup[bool](r, slot(1))
	assert.True(t, ok)
	assert.False(t, f)
}

func TestEmptyVectorIsPresent(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	vec := CreateVector(b, []uint32{})
	str := b.CreateString("")
	b.StartObject(2)
	PrependOffsetSlot(b, 0, vec)
	PrependOffsetSlot(b, 1, str)
	r := NewReader(Finish(b))

	v, ok := Vector[uint32](r, slot(0))
	assert.True(t, ok)
	assert.Empty(t, v)

	s, ok := r.Text(slot(1))
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestScalarVectors(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	bools := CreateVector(b, []bool{true, false, true})
	bytes := CreateVector(b, []byte{1, 2, 255})
	i8s := CreateInt8Vector(b, []int8{-128, -1, 0, 127})
	u16s := CreateVector(b, []uint16{1, math.MaxUint16})
	f32s := CreateVector(b, []float32{1.5, -2})
	f64s := CreateVector(b, []float64{math.Pi, math.Inf(-1)})
	runes := CreateRuneVector(b, []rune{'a', 'é', '😀'})

	b.StartObject(7)
	PrependOffsetSlot(b, 0, bools)
	PrependOffsetSlot(b, 1, bytes)
	PrependOffsetSlot(b, 2, i8s)
	PrependOffsetSlot(b, 3, u16s)
	PrependOffsetSlot(b, 4, f32s)
	PrependOffsetSlot(b, 5, f64s)
	PrependOffsetSlot(b, 6, runes)
	r := NewReader(Finish(b))

	gotBools, _ := Vector[bool](r, slot(0))
	assert.Equal(t, []bool{true, false, true}, gotBools)
	gotBytes, _ := r.Bytes(slot(1))
	assert.Equal(t, []byte{1, 2, 255}, gotBytes)
	gotI8, _ := r.Int8s(slot(2))
	assert.Equal(t, []int8{-128, -1, 0, 127}, gotI8)
	gotU16, _ := Vector[uint16](r, slot(3))
	assert.Equal(t, []uint16{1, math.MaxUint16}, gotU16)
	gotF32, _ := Vector[float32](r, slot(4))
	assert.Equal(t, []float32{1.5, -2}, gotF32)
	gotF64, _ := Vector[float64](r, slot(5))
	assert.Equal(t, []float64{math.Pi, math.Inf(-1)}, gotF64)
	gotRunes, _ := r.Runes(slot(6))
	assert.Equal(t, []rune{'a', 'é', '😀'}, gotRunes)
}

func TestCharPolicies(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	codes := CreateVector(b, []uint32{'a', 0xD800, 'b', 0x110000, 'c'})
	b.StartObject(3)
	PrependOffsetSlot(b, 0, codes)
	PrependSlot(b, 1, uint32(0xDFFF), 0)
	PrependCharSlot(b, 2, 'z', 0)
	r := NewReader(Finish(b))

	rs, ok := r.Runes(slot(0))
	require.True(t, ok)
	assert.Equal(t, []rune{'a', 'b', 'c'}, rs, "invalid code points are dropped")

	assert.Equal(t, 'x', r.Char(slot(1), 'x'), "invalid scalar leaves the default")
	_, ok = r.LookupChar(slot(1))
	assert.False(t, ok)

	assert.Equal(t, 'z', r.Char(slot(2), 0))
}

func FuzzReader(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{4, 0, 0, 0, 0, 0, 0, 0})
	b := flatbuffers.NewBuilder(0)
	s := b.CreateString("seed")
	b.StartObject(2)
	PrependSlot(b, 0, int32(42), 0)
	PrependOffsetSlot(b, 1, s)
	f.Add(append([]byte{}, Finish(b)...))

	f.Fuzz(func(t *testing.T, buf []byte) {
		r := NewReader(buf)
		for i := range 4 {
			Get(r, slot(i), int64(0))
			_, _ = Lookup[float32](r, slot(i))
			_ = r.Char(slot(i), 0)
			_, _ = r.Text(slot(i))
			_, _ = r.Bytes(slot(i))
			_, _ = r.Int8s(slot(i))
			_, _ = r.Runes(slot(i))
			_, _ = r.Strings(slot(i))
			_, _ = Vector[uint64](r, slot(i))
		}
	})
}
