package planner

import (
	"github.com/wippyai/leanbuffer/planner/internal/kind"
	"github.com/wippyai/leanbuffer/planner/internal/layout"
)

type Type = kind.Type
type Scalar = kind.Scalar
type Shape = kind.Shape

const (
	Bool = kind.Bool
	U8   = kind.U8
	S8   = kind.S8
	U16  = kind.U16
	S16  = kind.S16
	U32  = kind.U32
	S32  = kind.S32
	U64  = kind.U64
	S64  = kind.S64
	F32  = kind.F32
	F64  = kind.F64
	Char = kind.Char
)

const (
	ShapeScalar   = kind.ShapeScalar
	ShapeText     = kind.ShapeText
	ShapeSequence = kind.ShapeSequence
	ShapeOptional = kind.ShapeOptional
)

var (
	ScalarType   = kind.Of
	TextType     = kind.TextType
	SequenceType = kind.Sequence
	OptionalType = kind.Optional
)

// Slot returns the vtable offset of the field declared at index i.
func Slot(i int) uint16 { return layout.Slot(i) }

// MaxFields is the largest number of fields a record may declare.
const MaxFields = layout.MaxFields

// LayoutInfo describes the inline region produced by a commit order.
type LayoutInfo = layout.Info
