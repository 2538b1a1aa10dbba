package kind

import "testing"

func TestScalarSize(t *testing.T) {
	tests := []struct {
		s    Scalar
		size int
	}{
		{Bool, 1}, {U8, 1}, {S8, 1},
		{U16, 2}, {S16, 2},
		{U32, 4}, {S32, 4}, {F32, 4}, {Char, 4},
		{U64, 8}, {S64, 8}, {F64, 8},
	}

	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			if got := tt.s.Size(); got != tt.size {
				t.Errorf("size: got %d, want %d", got, tt.size)
			}
		})
	}
}

func TestScalarUnknown(t *testing.T) {
	s := Scalar(200)
	if s.Valid() {
		t.Error("Scalar(200) should be invalid")
	}
	if s.String() != "unknown" || s.Size() != 0 {
		t.Errorf("got %q size %d", s.String(), s.Size())
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		text string
		goT  string
	}{
		{Of(S64), "s64", "int64"},
		{Of(Char), "char", "rune"},
		{TextType(), "string", "string"},
		{Sequence(Of(U8)), "list<u8>", "[]byte"},
		{Sequence(Of(S8)), "list<s8>", "[]int8"},
		{Sequence(Of(Char)), "list<char>", "[]rune"},
		{Sequence(TextType()), "list<string>", "[]string"},
		{Optional(Of(F64)), "option<f64>", "*float64"},
		{Optional(TextType()), "option<string>", "*string"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.text {
				t.Errorf("String: got %q, want %q", got, tt.text)
			}
			if got := tt.typ.GoType(); got != tt.goT {
				t.Errorf("GoType: got %q, want %q", got, tt.goT)
			}
		})
	}
}

func TestTypeIndirect(t *testing.T) {
	tests := []struct {
		typ      Type
		indirect bool
		width    int
	}{
		{Of(S64), false, 8},
		{Of(Bool), false, 1},
		{TextType(), true, 4},
		{Sequence(Of(S64)), true, 4},
		{Optional(Of(U16)), false, 2},
		{Optional(TextType()), true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.IsIndirect(); got != tt.indirect {
				t.Errorf("IsIndirect: got %v, want %v", got, tt.indirect)
			}
			if got := tt.typ.Width(); got != tt.width {
				t.Errorf("Width: got %d, want %d", got, tt.width)
			}
		})
	}
}

func TestElem(t *testing.T) {
	if got := Optional(TextType()).Elem(); got != TextType() {
		t.Errorf("got %+v, want text", got)
	}
	if got := Sequence(Of(U32)).Elem(); got != Of(U32) {
		t.Errorf("got %+v, want u32", got)
	}
	if got := Of(U32).Elem(); got != Of(U32) {
		t.Errorf("scalar Elem should be identity, got %+v", got)
	}
}
