package codec

import (
	"reflect"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/internal/naming"
	"github.com/wippyai/leanbuffer/planner"
)

var scalarTypes = [...]reflect.Type{
	planner.Bool: reflect.TypeFor[bool](),
	planner.U8:   reflect.TypeFor[uint8](),
	planner.S8:   reflect.TypeFor[int8](),
	planner.U16:  reflect.TypeFor[uint16](),
	planner.S16:  reflect.TypeFor[int16](),
	planner.U32:  reflect.TypeFor[uint32](),
	planner.S32:  reflect.TypeFor[int32](),
	planner.U64:  reflect.TypeFor[uint64](),
	planner.S64:  reflect.TypeFor[int64](),
	planner.F32:  reflect.TypeFor[float32](),
	planner.F64:  reflect.TypeFor[float64](),
	planner.Char: reflect.TypeFor[rune](),
}

// GoType returns the Go type that holds values of t.
func GoType(t planner.Type) reflect.Type {
	var elem reflect.Type
	if t.Text {
		elem = reflect.TypeFor[string]()
	} else {
		elem = scalarTypes[t.Scalar]
	}

	switch t.Shape {
	case planner.ShapeText:
		return reflect.TypeFor[string]()
	case planner.ShapeSequence:
		return reflect.SliceOf(elem)
	case planner.ShapeOptional:
		return reflect.PointerTo(elem)
	default:
		return scalarTypes[t.Scalar]
	}
}

// StructOf synthesizes a struct type for plan. Field names are the exported
// forms of the declared names, each tagged with its declared name. Two
// declared names with the same exported form are rejected.
func StructOf(plan *planner.Plan) (reflect.Type, error) {
	fields := make([]reflect.StructField, len(plan.Fields))
	seen := make(map[string]string, len(plan.Fields))
	for i, f := range plan.Fields {
		name := naming.GoName(f.Name)
		if other, dup := seen[name]; dup {
			return nil, errors.New(errors.PhaseBind, errors.KindDuplicateField).
				Record(plan.Record).
				Path(f.Name).
				Detail("%q and %q both map to Go field %s", other, f.Name, name).
				Build()
		}
		seen[name] = f.Name
		fields[i] = reflect.StructField{
			Name: name,
			Type: GoType(f.Type),
			Tag:  reflect.StructTag(TagName + `:"` + f.Name + `"`),
		}
	}
	return reflect.StructOf(fields), nil
}

// BindDynamic binds plan to a synthesized struct type.
func BindDynamic(plan *planner.Plan) (*Binding, error) {
	st, err := StructOf(plan)
	if err != nil {
		return nil, err
	}
	return Bind(plan, st)
}
