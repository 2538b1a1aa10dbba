package schema

import (
	"reflect"
	"strings"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/internal/naming"
	"github.com/wippyai/leanbuffer/planner"
)

// TagName is the struct tag read by FromStruct. `lb:"name"` renames a
// field, `lb:"-"` skips it and `lb:",char"` marks an int32 field, or a
// slice or pointer of int32, as a Unicode scalar value.
const TagName = "lb"

var scalarNames = map[reflect.Kind]string{
	reflect.Bool:    "bool",
	reflect.Uint8:   "u8",
	reflect.Int8:    "s8",
	reflect.Uint16:  "u16",
	reflect.Int16:   "s16",
	reflect.Uint32:  "u32",
	reflect.Int32:   "s32",
	reflect.Uint64:  "u64",
	reflect.Int64:   "s64",
	reflect.Float32: "f32",
	reflect.Float64: "f64",
	reflect.String:  "string",
}

// FromStruct describes the struct v (or the struct v points to) as a
// record named after its type. Exported fields become declarations in
// source order, named by tag or by the snake_case form of the Go name.
//
// Go types with no type text spelling, such as int or maps, are rendered
// as their Go spelling and rejected later by the planner.
func FromStruct(v any) (planner.Record, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		goType := "<nil>"
		if t != nil {
			goType = t.String()
		}
		return planner.Record{}, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
			GoType(goType).
			Detail("expected a struct").
			Build()
	}
	if t.Name() == "" {
		return planner.Record{}, errors.New(errors.PhaseLoad, errors.KindInvalidName).
			GoType(t.String()).
			Detail("anonymous structs have no record name").
			Build()
	}

	rec := planner.Record{Name: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(sf.Tag.Get(TagName), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = naming.SnakeCase(sf.Name)
		}
		rec.Fields = append(rec.Fields, planner.Declaration{
			Name: name,
			Type: typeText(sf.Type, hasOption(opts, "char")),
		})
	}
	return rec, nil
}

// FromStructs describes each value with FromStruct.
func FromStructs(vs ...any) ([]planner.Record, error) {
	recs := make([]planner.Record, 0, len(vs))
	for _, v := range vs {
		rec, err := FromStruct(v)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func typeText(t reflect.Type, char bool) string {
	switch t.Kind() {
	case reflect.Slice:
		return "list<" + typeText(t.Elem(), char) + ">"
	case reflect.Pointer:
		return "option<" + typeText(t.Elem(), char) + ">"
	case reflect.Int32:
		if char {
			return "char"
		}
	}
	if name, ok := scalarNames[t.Kind()]; ok {
		return name
	}
	return t.String()
}

func hasOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == want {
			return true
		}
	}
	return false
}
