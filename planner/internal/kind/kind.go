package kind

// Scalar is a fixed-size value type stored inline in the table.
type Scalar uint8

const (
	Bool Scalar = iota
	U8
	S8
	U16
	S16
	U32
	S32
	U64
	S64
	F32
	F64
	Char
)

var scalarNames = [...]string{
	Bool: "bool",
	U8:   "u8",
	S8:   "s8",
	U16:  "u16",
	S16:  "s16",
	U32:  "u32",
	S32:  "s32",
	U64:  "u64",
	S64:  "s64",
	F32:  "f32",
	F64:  "f64",
	Char: "char",
}

var scalarGoTypes = [...]string{
	Bool: "bool",
	U8:   "uint8",
	S8:   "int8",
	U16:  "uint16",
	S16:  "int16",
	U32:  "uint32",
	S32:  "int32",
	U64:  "uint64",
	S64:  "int64",
	F32:  "float32",
	F64:  "float64",
	Char: "rune",
}

func (s Scalar) String() string {
	if int(s) < len(scalarNames) {
		return scalarNames[s]
	}
	return "unknown"
}

// Valid reports whether s is a member of the scalar set.
func (s Scalar) Valid() bool {
	return int(s) < len(scalarNames)
}

// Size returns the stored width in bytes. Char is stored as a 4-byte code point.
func (s Scalar) Size() int {
	switch s {
	case Bool, U8, S8:
		return 1
	case U16, S16:
		return 2
	case U32, S32, F32, Char:
		return 4
	case U64, S64, F64:
		return 8
	default:
		return 0
	}
}

// GoType returns the Go spelling of the scalar.
func (s Scalar) GoType() string {
	if int(s) < len(scalarGoTypes) {
		return scalarGoTypes[s]
	}
	return "unknown"
}

// Shape is the outer form of a field type.
type Shape uint8

const (
	ShapeScalar Shape = iota
	ShapeText
	ShapeSequence
	ShapeOptional
)

var shapeNames = [...]string{
	ShapeScalar:   "scalar",
	ShapeText:     "text",
	ShapeSequence: "sequence",
	ShapeOptional: "optional",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Type is a classified field type.
//
// For ShapeScalar, Scalar holds the value type. For ShapeSequence and
// ShapeOptional the element is Text when Text is set, otherwise Scalar.
type Type struct {
	Shape  Shape
	Scalar Scalar
	Text   bool
}

// Of returns the scalar type s.
func Of(s Scalar) Type {
	return Type{Shape: ShapeScalar, Scalar: s}
}

// TextType returns the Text type.
func TextType() Type {
	return Type{Shape: ShapeText}
}

// Sequence returns a sequence of elem. Elem must be a scalar or Text.
func Sequence(elem Type) Type {
	return Type{Shape: ShapeSequence, Scalar: elem.Scalar, Text: elem.Shape == ShapeText}
}

// Optional returns an optional elem. Elem must be a scalar or Text.
func Optional(elem Type) Type {
	return Type{Shape: ShapeOptional, Scalar: elem.Scalar, Text: elem.Shape == ShapeText}
}

// Elem returns the element type of a Sequence or Optional, or t itself.
func (t Type) Elem() Type {
	switch t.Shape {
	case ShapeSequence, ShapeOptional:
		if t.Text {
			return TextType()
		}
		return Of(t.Scalar)
	default:
		return t
	}
}

// IsScalar reports whether t is a required fixed-size scalar.
func (t Type) IsScalar() bool { return t.Shape == ShapeScalar }

// IsOptional reports whether t may be absent.
func (t Type) IsOptional() bool { return t.Shape == ShapeOptional }

// IsIndirect reports whether values of t live outside the table and are
// referenced by offset.
func (t Type) IsIndirect() bool {
	switch t.Shape {
	case ShapeText, ShapeSequence:
		return true
	case ShapeOptional:
		return t.Text
	default:
		return false
	}
}

// Width returns the number of bytes the field occupies inline in the table.
// Indirect fields occupy one 4-byte offset.
func (t Type) Width() int {
	if t.IsIndirect() {
		return 4
	}
	return t.Scalar.Size()
}

// String renders t in canonical type text.
func (t Type) String() string {
	switch t.Shape {
	case ShapeScalar:
		return t.Scalar.String()
	case ShapeText:
		return "string"
	case ShapeSequence:
		return "list<" + t.Elem().String() + ">"
	case ShapeOptional:
		return "option<" + t.Elem().String() + ">"
	default:
		return "unknown"
	}
}

// GoType returns the Go spelling used to hold values of t.
func (t Type) GoType() string {
	switch t.Shape {
	case ShapeScalar:
		return t.Scalar.GoType()
	case ShapeText:
		return "string"
	case ShapeSequence:
		if !t.Text && t.Scalar == U8 {
			return "[]byte"
		}
		return "[]" + t.Elem().GoType()
	case ShapeOptional:
		return "*" + t.Elem().GoType()
	default:
		return "unknown"
	}
}
