package table

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

// SignedBytes reinterprets each byte as a two's-complement signed byte:
// 0x00..0x7F map to 0..127 and 0x80..0xFF map to -128..-1.
func SignedBytes(b []byte) []int8 {
	out := make([]int8, len(b))
	for i, v := range b {
		out[i] = int8(v)
	}
	return out
}

// UnsignedBytes is the inverse of SignedBytes.
func UnsignedBytes(s []int8) []byte {
	out := make([]byte, len(s))
	for i, v := range s {
		out[i] = byte(v)
	}
	return out
}

// CodePoint converts a stored code point to a rune. It reports false for
// surrogates and values above utf8.MaxRune.
func CodePoint(c uint32) (rune, bool) {
	r, err := safecast.Conv[rune](c)
	if err != nil || !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}

// FilterRunes converts stored code points to runes, dropping invalid ones.
// The result may be shorter than codes.
func FilterRunes(codes []uint32) []rune {
	out := make([]rune, 0, len(codes))
	for _, c := range codes {
		if r, ok := CodePoint(c); ok {
			out = append(out, r)
		}
	}
	return out
}

// CodePoints converts runes to their stored form.
func CodePoints(rs []rune) []uint32 {
	out := make([]uint32, len(rs))
	for i, r := range rs {
		out[i] = uint32(r)
	}
	return out
}
