package codec

import (
	"reflect"
	"strings"
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"
	"go.uber.org/zap"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/internal/naming"
	"github.com/wippyai/leanbuffer/planner"
	"github.com/wippyai/leanbuffer/table"
)

// TagName is the struct tag consulted when matching Go fields to plan fields.
const TagName = "lb"

// Binding executes a plan against one Go struct type.
// It is immutable and safe for concurrent use.
type Binding struct {
	plan   *planner.Plan
	goType reflect.Type
	fields []boundField
	inits  []int
}

type boundField struct {
	field  *planner.Field
	ops    ops
	offset uintptr
}

// Bind matches every plan field to a field of goType and compiles its codec.
// Struct fields are matched by `lb:"name"` tag, then case-insensitively,
// then with separators removed (t_vec_u8 matches TVecU8).
func Bind(plan *planner.Plan, goType reflect.Type) (*Binding, error) {
	if plan == nil {
		return nil, errors.New(errors.PhaseBind, errors.KindNilPointer).
			Detail("plan cannot be nil").
			Build()
	}
	if goType == nil || goType.Kind() != reflect.Struct {
		name := "<nil>"
		if goType != nil {
			name = goType.String()
		}
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			Record(plan.Record).
			GoType(name).
			Detail("expected a struct").
			Build()
	}

	bd := &Binding{
		plan:   plan,
		goType: goType,
		fields: make([]boundField, len(plan.Fields)),
	}
	for i := range plan.Fields {
		f := &plan.Fields[i]
		sf, ok := findGoField(goType, f.Name)
		if !ok {
			return nil, errors.FieldMissing(errors.PhaseBind, plan.Record, f.Name)
		}
		if !accepts(f.Type, sf.Type) {
			return nil, errors.TypeMismatch(errors.PhaseBind, plan.Record, []string{f.Name}, sf.Type.String(), f.Type.String())
		}
		bd.fields[i] = boundField{
			field:  f,
			offset: sf.Offset,
			ops:    opsFor(f),
		}
		if bd.fields[i].ops.init != nil {
			bd.inits = append(bd.inits, i)
		}
	}

	Logger().Debug("plan bound",
		zap.String("record", plan.Record),
		zap.Stringer("go_type", goType))
	return bd, nil
}

// Plan returns the bound plan.
func (bd *Binding) Plan() *planner.Plan { return bd.plan }

// Type returns the bound Go struct type.
func (bd *Binding) Type() reflect.Type { return bd.goType }

// findGoField matches by: 1) lb:"name" tag, 2) case-insensitive, 3) separators removed.
func findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag := field.Tag.Get(TagName); tag != "" {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				if tagName == name {
					return field, true
				}
				continue
			}
		}

		if naming.Matches(field.Name, name) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

var scalarKinds = [...]reflect.Kind{
	planner.Bool: reflect.Bool,
	planner.U8:   reflect.Uint8,
	planner.S8:   reflect.Int8,
	planner.U16:  reflect.Uint16,
	planner.S16:  reflect.Int16,
	planner.U32:  reflect.Uint32,
	planner.S32:  reflect.Int32,
	planner.U64:  reflect.Uint64,
	planner.S64:  reflect.Int64,
	planner.F32:  reflect.Float32,
	planner.F64:  reflect.Float64,
	planner.Char: reflect.Int32,
}

// accepts reports whether values of t can be stored in goType.
func accepts(t planner.Type, goType reflect.Type) bool {
	elem := func(rt reflect.Type) bool {
		if t.Text {
			return rt.Kind() == reflect.String
		}
		return rt.Kind() == scalarKinds[t.Scalar]
	}

	switch t.Shape {
	case planner.ShapeScalar:
		return goType.Kind() == scalarKinds[t.Scalar]
	case planner.ShapeText:
		return goType.Kind() == reflect.String
	case planner.ShapeSequence:
		return goType.Kind() == reflect.Slice && elem(goType.Elem())
	case planner.ShapeOptional:
		return goType.Kind() == reflect.Pointer && elem(goType.Elem())
	default:
		return false
	}
}

func opsFor(f *planner.Field) ops {
	i, slot := f.Index, f.Slot
	t := f.Type

	switch f.Codec.Decode {
	case planner.DecodeChar:
		return charOps(i, slot)
	case planner.DecodeCharOptional:
		return optionalCharOps(i, slot)
	case planner.DecodeText:
		return textOps(i, slot)
	case planner.DecodeTextOptional:
		return optionalTextOps(i, slot)
	case planner.DecodeTextSequence:
		return sliceOps(i, slot, table.CreateStringVector, table.Reader.Strings)
	case planner.DecodeCharSequence:
		return sliceOps(i, slot, table.CreateRuneVector, table.Reader.Runes)
	case planner.DecodeSignedBytes:
		return sliceOps(i, slot, table.CreateInt8Vector, table.Reader.Int8s)
	case planner.DecodeSequence:
		if t.Scalar == planner.U8 {
			return sliceOps(i, slot, table.CreateVector[byte], table.Reader.Bytes)
		}
		return vectorFactories[t.Scalar](i, slot)
	case planner.DecodeScalarOptional:
		return optionalFactories[t.Scalar](i, slot)
	default:
		return scalarFactories[t.Scalar](i, slot)
	}
}

type opsFactory func(index int, slot uint16) ops

var scalarFactories = [...]opsFactory{
	planner.Bool: scalarOps[bool],
	planner.U8:   scalarOps[uint8],
	planner.S8:   scalarOps[int8],
	planner.U16:  scalarOps[uint16],
	planner.S16:  scalarOps[int16],
	planner.U32:  scalarOps[uint32],
	planner.S32:  scalarOps[int32],
	planner.U64:  scalarOps[uint64],
	planner.S64:  scalarOps[int64],
	planner.F32:  scalarOps[float32],
	planner.F64:  scalarOps[float64],
	planner.Char: charOps,
}

var optionalFactories = [...]opsFactory{
	planner.Bool: optionalOps[bool],
	planner.U8:   optionalOps[uint8],
	planner.S8:   optionalOps[int8],
	planner.U16:  optionalOps[uint16],
	planner.S16:  optionalOps[int16],
	planner.U32:  optionalOps[uint32],
	planner.S32:  optionalOps[int32],
	planner.U64:  optionalOps[uint64],
	planner.S64:  optionalOps[int64],
	planner.F32:  optionalOps[float32],
	planner.F64:  optionalOps[float64],
	planner.Char: optionalCharOps,
}

// Sequences of u8, s8 and char have dedicated ops.
var vectorFactories = [...]opsFactory{
	planner.Bool: vectorOps[bool],
	planner.U8:   vectorOps[uint8],
	planner.S8:   vectorOps[int8],
	planner.U16:  vectorOps[uint16],
	planner.S16:  vectorOps[int16],
	planner.U32:  vectorOps[uint32],
	planner.S32:  vectorOps[int32],
	planner.U64:  vectorOps[uint64],
	planner.S64:  vectorOps[int64],
	planner.F32:  vectorOps[float32],
	planner.F64:  vectorOps[float64],
}

// init stores field defaults into the zeroed record at base.
func (bd *Binding) init(base unsafe.Pointer) {
	for _, i := range bd.inits {
		f := &bd.fields[i]
		f.ops.init(unsafe.Add(base, f.offset))
	}
}

// flatten encodes the record at base into b. handles must hold one entry
// per field.
func (bd *Binding) flatten(b *flatbuffers.Builder, base unsafe.Pointer, handles []flatbuffers.UOffsetT, built []bool) []byte {
	b.Reset()

	for _, i := range bd.plan.Encode.Indirect {
		f := &bd.fields[i]
		handles[i], built[i] = f.ops.build(b, unsafe.Add(base, f.offset))
	}

	b.StartObject(len(bd.fields))
	for _, i := range bd.plan.Encode.Commit {
		f := &bd.fields[i]
		f.ops.commit(b, unsafe.Add(base, f.offset), handles[i], built[i])
	}
	return table.Finish(b)
}

// inflate decodes r into the defaulted record at base.
func (bd *Binding) inflate(r table.Reader, base unsafe.Pointer) {
	for _, i := range bd.plan.Decode.Order {
		f := &bd.fields[i]
		f.ops.decode(r, unsafe.Add(base, f.offset))
	}
}

// pointerTo returns the address of the struct v points to.
func (bd *Binding) pointerTo(phase errors.Phase, v any) (unsafe.Pointer, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Type().Elem() != bd.goType {
		goType := "<nil>"
		if v != nil {
			goType = rv.Type().String()
		}
		return nil, errors.TypeMismatch(phase, bd.plan.Record, nil, goType, "*"+bd.goType.String())
	}
	if rv.IsNil() {
		return nil, errors.NilPointer(phase, rv.Type().String())
	}
	return rv.UnsafePointer(), nil
}

// New returns a pointer to a new record of the bound type holding defaults.
func (bd *Binding) New() any {
	rv := reflect.New(bd.goType)
	bd.init(rv.UnsafePointer())
	return rv.Interface()
}

// Flatten encodes the record v points to into b and returns the finished
// bytes, which alias b until its next Reset.
func (bd *Binding) Flatten(b *flatbuffers.Builder, v any) ([]byte, error) {
	p, err := bd.pointerTo(errors.PhaseEncode, v)
	if err != nil {
		return nil, err
	}
	n := len(bd.fields)
	return bd.flatten(b, p, make([]flatbuffers.UOffsetT, n), make([]bool, n)), nil
}

// Inflate decodes buf into the record out points to. Fields the buffer
// lacks are reset to defaults.
func (bd *Binding) Inflate(buf []byte, out any) error {
	p, err := bd.pointerTo(errors.PhaseDecode, out)
	if err != nil {
		return err
	}
	fresh := reflect.New(bd.goType)
	bd.init(fresh.UnsafePointer())
	bd.inflate(table.NewReader(buf), fresh.UnsafePointer())
	reflect.NewAt(bd.goType, p).Elem().Set(fresh.Elem())
	return nil
}
