package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/internal/naming"
	"github.com/wippyai/leanbuffer/planner"
)

// Header marks every emitted file as generated.
const Header = "// Code generated by leangen. DO NOT EDIT."

var fragmentTemplate = template.Must(template.New("fragment").Parse(Header + `

package {{.Package}}

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/wippyai/leanbuffer"
	"github.com/wippyai/leanbuffer/table"
)

// {{.Name}} is the {{.Record}} record.
type {{.Name}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}} ` + "`lb:\"{{.Name}}\"`" + `
{{- end}}
}

// New{{.Name}} returns a {{.Name}} holding every field default.
func New{{.Name}}() {{.Name}} {
{{- if .Inits}}
	return {{.Name}}{
{{- range .Inits}}
		{{.}},
{{- end}}
	}
{{- else}}
	return {{.Name}}{}
{{- end}}
}

// Flatten resets b and encodes o as a finished table.
func (o *{{.Name}}) Flatten(b *flatbuffers.Builder) {
	b.Reset()
{{- range .Builds}}
	{{.}}
{{- end}}
	b.StartObject({{len .Fields}})
{{- range .Commits}}
	{{.}}
{{- end}}
	b.Finish(b.EndObject())
}

// {{.Name}}Factory creates and decodes {{.Name}} records.
type {{.Name}}Factory struct{}

// New returns New{{.Name}}().
func ({{.Name}}Factory) New() {{.Name}} { return New{{.Name}}() }

// Inflate decodes the table r points at. Missing or invalid fields keep
// their defaults.
func ({{.Name}}Factory) Inflate(r table.Reader) {{.Name}} {
	o := New{{.Name}}()
{{- range .Decodes}}
	{{.}}
{{- end}}
	return o
}

var (
	_ leanbuffer.Adapter = (*{{.Name}})(nil)
	_ leanbuffer.Factory[{{.Name}}] = {{.Name}}Factory{}
)
`))

type fragmentView struct {
	Package string
	Record  string
	Name    string
	Fields  []fieldView
	Inits   []string
	Builds  []string
	Commits []string
	Decodes []string
}

type fieldView struct {
	Name   string
	GoName string
	GoType string
}

// reserved names collide with the methods of an emitted record.
var reserved = map[string]bool{"Flatten": true}

// Fragment renders the Go source for one plan: the record struct, its
// zero-value constructor, Flatten and a Factory. The output is a complete
// file of package pkg.
func Fragment(plan *planner.Plan, pkg string) ([]byte, error) {
	if plan == nil {
		return nil, errors.NilPointer(errors.PhaseEmit, "*planner.Plan")
	}

	view := fragmentView{
		Package: pkg,
		Record:  plan.Record,
		Name:    naming.GoName(plan.Record),
		Fields:  make([]fieldView, len(plan.Fields)),
	}

	seen := make(map[string]string, len(plan.Fields))
	for i := range plan.Fields {
		f := &plan.Fields[i]
		goName := naming.GoName(f.Name)
		if other, dup := seen[goName]; dup {
			return nil, errors.New(errors.PhaseEmit, errors.KindDuplicateField).
				Record(plan.Record).
				Path(f.Name).
				Detail("%q and %q both map to Go field %s", other, f.Name, goName).
				Build()
		}
		if reserved[goName] {
			return nil, errors.InvalidName(errors.PhaseEmit, plan.Record, f.Name)
		}
		seen[goName] = f.Name

		view.Fields[i] = fieldView{
			Name:   f.Name,
			GoName: goName,
			GoType: f.Type.GoType(),
		}
		if f.Type.Shape == planner.ShapeSequence {
			view.Inits = append(view.Inits, goName+": "+f.Type.GoType()+"{}")
		}
		view.Decodes = append(view.Decodes, decodeStmt(f, "o."+goName))
	}

	for _, i := range plan.Encode.Indirect {
		f := &plan.Fields[i]
		view.Builds = append(view.Builds, buildStmt(f, "o."+view.Fields[i].GoName))
	}
	for _, i := range plan.Encode.Commit {
		f := &plan.Fields[i]
		view.Commits = append(view.Commits, commitStmt(f, "o."+view.Fields[i].GoName))
	}

	var buf bytes.Buffer
	if err := fragmentTemplate.Execute(&buf, view); err != nil {
		return nil, errors.EmissionFailure("render "+plan.Record, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.EmissionFailure("fragment for "+plan.Record+" does not parse", err)
	}
	return src, nil
}

// handle names the local holding the offset of field i's out-of-line object.
func handle(f *planner.Field) string {
	return fmt.Sprintf("f%d", f.Index)
}

func buildStmt(f *planner.Field, v string) string {
	h := handle(f)
	t := f.Type
	switch t.Shape {
	case planner.ShapeText:
		return fmt.Sprintf("%s := b.CreateString(%s)", h, v)
	case planner.ShapeOptional:
		return fmt.Sprintf("var %s flatbuffers.UOffsetT\nif %s != nil {\n%s = b.CreateString(*%s)\n}", h, v, h, v)
	}

	switch f.Codec.Decode {
	case planner.DecodeTextSequence:
		return fmt.Sprintf("%s := table.CreateStringVector(b, %s)", h, v)
	case planner.DecodeCharSequence:
		return fmt.Sprintf("%s := table.CreateRuneVector(b, %s)", h, v)
	case planner.DecodeSignedBytes:
		return fmt.Sprintf("%s := table.CreateInt8Vector(b, %s)", h, v)
	default:
		return fmt.Sprintf("%s := table.CreateVector(b, %s)", h, v)
	}
}

func commitStmt(f *planner.Field, v string) string {
	t := f.Type
	switch f.Codec.Encode {
	case planner.EncodeInline:
		if t.Scalar == planner.Char {
			return fmt.Sprintf("table.PrependCharSlot(b, %d, %s, 0)", f.Index, v)
		}
		return fmt.Sprintf("table.PrependSlot(b, %d, %s, %s)", f.Index, v, zeroLiteral(t.Scalar))
	case planner.EncodeInlinePresent:
		fn := "table.PrependSlotAlways"
		if t.Scalar == planner.Char {
			fn = "table.PrependCharSlotAlways"
		}
		return fmt.Sprintf("if %s != nil {\n%s(b, %d, *%s)\n}", v, fn, f.Index, v)
	case planner.EncodeIndirectPresent:
		return fmt.Sprintf("if %s != nil {\ntable.PrependOffsetSlot(b, %d, %s)\n}", v, f.Index, handle(f))
	default:
		return fmt.Sprintf("table.PrependOffsetSlot(b, %d, %s)", f.Index, handle(f))
	}
}

func decodeStmt(f *planner.Field, v string) string {
	slot := f.Slot
	lookup := func(call string, ptr bool) string {
		amp := ""
		if ptr {
			amp = "&"
		}
		return fmt.Sprintf("if v, ok := %s; ok {\n%s = %sv\n}", call, v, amp)
	}

	switch f.Codec.Decode {
	case planner.DecodeScalar:
		return fmt.Sprintf("%s = table.Get(r, %d, %s)", v, slot, v)
	case planner.DecodeChar:
		return fmt.Sprintf("%s = r.Char(%d, %s)", v, slot, v)
	case planner.DecodeScalarOptional:
		return lookup(fmt.Sprintf("table.Lookup[%s](r, %d)", f.Type.Scalar.GoType(), slot), true)
	case planner.DecodeCharOptional:
		return lookup(fmt.Sprintf("r.LookupChar(%d)", slot), true)
	case planner.DecodeText:
		return lookup(fmt.Sprintf("r.Text(%d)", slot), false)
	case planner.DecodeTextOptional:
		return lookup(fmt.Sprintf("r.Text(%d)", slot), true)
	case planner.DecodeTextSequence:
		return lookup(fmt.Sprintf("r.Strings(%d)", slot), false)
	case planner.DecodeCharSequence:
		return lookup(fmt.Sprintf("r.Runes(%d)", slot), false)
	case planner.DecodeSignedBytes:
		return lookup(fmt.Sprintf("r.Int8s(%d)", slot), false)
	default:
		if f.Type.Scalar == planner.U8 {
			return lookup(fmt.Sprintf("r.Bytes(%d)", slot), false)
		}
		return lookup(fmt.Sprintf("table.Vector[%s](r, %d)", f.Type.Scalar.GoType(), slot), false)
	}
}

func zeroLiteral(s planner.Scalar) string {
	if s == planner.Bool {
		return "false"
	}
	return "0"
}

// FragmentName returns the intermediate file name for record.
func FragmentName(record string) string {
	return naming.SnakeCase(naming.GoName(record)) + FragmentSuffix
}
