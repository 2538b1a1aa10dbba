package planner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/planner/internal/layout"
)

// Declaration is one (name, type text) pair of a record description.
type Declaration struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

// Record is an ordered record description. Field order fixes slots.
type Record struct {
	Name   string        `yaml:"name" toml:"name"`
	Fields []Declaration `yaml:"fields" toml:"fields"`
}

// Field is a classified, placed field.
type Field struct {
	Codec    Codec
	Name     string
	TypeText string
	Type     Type
	Index    int
	Priority int
	Slot     uint16
}

// EncodePlan orders the two encode phases.
type EncodePlan struct {
	// Indirect lists fields whose out-of-line objects are built before the
	// table is opened, in declaration order.
	Indirect []int
	// Commit lists every field in the order it is committed to the table.
	Commit []int
}

// DecodePlan orders field reads. Reads are by slot, so order is declaration order.
type DecodePlan struct {
	Order []int
}

// Plan is the complete encode and decode plan of one record.
// Plans are immutable once assembled and may be shared between goroutines.
type Plan struct {
	Record string
	Fields []Field
	Encode EncodePlan
	Decode DecodePlan
	Layout layout.Info
}

// Field returns the field declared with name.
func (p *Plan) Field(name string) (*Field, bool) {
	for i := range p.Fields {
		if p.Fields[i].Name == name {
			return &p.Fields[i], true
		}
	}
	return nil, false
}

// CommitPosition returns the position of field index i in the commit order.
func (p *Plan) CommitPosition(i int) int {
	for pos, idx := range p.Encode.Commit {
		if idx == i {
			return pos
		}
	}
	return -1
}

// VtableSize returns the byte size of the record's vtable.
func (p *Plan) VtableSize() int {
	return layout.MetadataSize + layout.SlotSize*len(p.Fields)
}

func (p *Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s {", p.Record)
	for i, f := range p.Fields {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, " %s@%d:%s", f.Name, f.Slot, f.Type)
	}
	b.WriteString(" }")
	return b.String()
}

// Assemble classifies every field of rec and composes slots, commit order
// and codecs into one plan. The first unsupported field aborts the record;
// no partial plan is returned.
func Assemble(rec Record) (*Plan, error) {
	if !isIdentifier(rec.Name) {
		return nil, errors.InvalidName(errors.PhasePlan, rec.Name, rec.Name)
	}
	if len(rec.Fields) > layout.MaxFields {
		return nil, errors.New(errors.PhasePlan, errors.KindInvalidInput).
			Record(rec.Name).
			Detail("%d fields exceed the limit of %d", len(rec.Fields), layout.MaxFields).
			Build()
	}

	p := &Plan{
		Record: rec.Name,
		Fields: make([]Field, len(rec.Fields)),
	}
	types := make([]Type, len(rec.Fields))
	seen := make(map[string]struct{}, len(rec.Fields))

	for i, decl := range rec.Fields {
		if !isIdentifier(decl.Name) {
			return nil, errors.InvalidName(errors.PhasePlan, rec.Name, decl.Name)
		}
		if _, dup := seen[decl.Name]; dup {
			return nil, errors.DuplicateField(rec.Name, decl.Name)
		}
		seen[decl.Name] = struct{}{}

		t, err := Classify(rec.Name, decl.Name, decl.Type)
		if err != nil {
			return nil, err
		}
		types[i] = t
		p.Fields[i] = Field{
			Name:     decl.Name,
			TypeText: decl.Type,
			Type:     t,
			Index:    i,
			Slot:     layout.Slot(i),
			Priority: layout.Priority(t),
			Codec:    CodecOf(t),
		}
	}

	p.Encode.Commit = layout.CommitOrder(types)
	p.Decode.Order = make([]int, len(types))
	for i, t := range types {
		p.Decode.Order[i] = i
		if t.IsIndirect() {
			p.Encode.Indirect = append(p.Encode.Indirect, i)
		}
	}
	p.Layout = layout.Calculate(types, p.Encode.Commit)

	return p, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
