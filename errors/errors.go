package errors

import (
	"fmt"
	"slices"
	"strings"
)

// Phase names the pipeline stage that failed.
type Phase string

const (
	PhaseClassify Phase = "classify" // type text to kind
	PhasePlan     Phase = "plan"     // plan assembly
	PhaseBind     Phase = "bind"     // plan to Go struct binding
	PhaseEncode   Phase = "encode"   // record to buffer
	PhaseDecode   Phase = "decode"   // buffer to record
	PhaseEmit     Phase = "emit"     // source generation and merge
	PhaseLoad     Phase = "load"     // schema discovery
)

// Kind classifies the failure.
type Kind string

const (
	KindUnsupportedType Kind = "unsupported_type"
	KindEmissionFailure Kind = "emission_failure"
	KindDuplicateField  Kind = "duplicate_field"
	KindInvalidName     Kind = "invalid_name"
	KindTypeMismatch    Kind = "type_mismatch"
	KindFieldMissing    Kind = "field_missing"
	KindNilPointer      Kind = "nil_pointer"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindEmptyRecord     Kind = "empty_record"
)

// Error is the structured error returned by every leanbuffer package.
// Record and Path locate the offending field; GoType and TypeText name the
// two sides of a binding when they are known.
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Record   string
	GoType   string
	TypeText string
	Detail   string
	Path     []string
}

// Location renders Record and Path as a dotted field reference, or "" when
// neither is set.
func (e *Error) Location() string {
	if e.Record == "" {
		return strings.Join(e.Path, ".")
	}
	if len(e.Path) == 0 {
		return e.Record
	}
	return e.Record + "." + strings.Join(e.Path, ".")
}

func (e *Error) types() string {
	switch {
	case e.GoType != "" && e.TypeText != "":
		return "Go type " + e.GoType + ", type " + e.TypeText
	case e.GoType != "":
		return "Go type " + e.GoType
	case e.TypeText != "":
		return "type " + e.TypeText
	}
	return ""
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)
	if loc := e.Location(); loc != "" {
		b.WriteString(" at " + loc)
	}

	sep := ": "
	if t := e.types(); t != "" {
		b.WriteString(sep + t)
		sep = " - "
	}
	if e.Detail != "" {
		b.WriteString(sep + e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: " + e.Cause.Error() + ")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same Kind. A target with an empty
// Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

// Builder assembles an Error field by field.
type Builder struct {
	err Error
}

// New starts an error of the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) Record(name string) *Builder {
	b.err.Record = name
	return b
}

// Path sets the field path below the record. The slice is copied.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = slices.Clone(path)
	return b
}

func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// TypeText sets the declared type text of the field.
func (b *Builder) TypeText(t string) *Builder {
	b.err.TypeText = t
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the message. With args it is a format string.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) == 0 {
		b.err.Detail = msg
		return b
	}
	b.err.Detail = fmt.Sprintf(msg, args...)
	return b
}

// Build returns the error. The builder must not be reused.
func (b *Builder) Build() *Error {
	return &b.err
}

// UnsupportedType reports a field whose declared type is outside the closed
// kind set. It aborts generation for the whole record.
func UnsupportedType(record, field, typeText string) *Error {
	return New(PhaseClassify, KindUnsupportedType).
		Record(record).
		Path(field).
		TypeText(typeText).
		Build()
}

// EmissionFailure reports generated source that failed to render, merge,
// parse or be written.
func EmissionFailure(detail string, cause error) *Error {
	return New(PhaseEmit, KindEmissionFailure).Detail("%s", detail).Cause(cause).Build()
}

// DuplicateField reports a field name declared twice in one record.
func DuplicateField(record, field string) *Error {
	return New(PhasePlan, KindDuplicateField).
		Record(record).
		Path(field).
		Detail("field %q declared more than once", field).
		Build()
}

// InvalidName reports a record or field name that is not an identifier.
func InvalidName(phase Phase, record, name string) *Error {
	return New(phase, KindInvalidName).
		Record(record).
		Value(name).
		Detail("%q is not a valid identifier", name).
		Build()
}

// TypeMismatch reports a Go type that cannot hold a declared type.
func TypeMismatch(phase Phase, record string, path []string, goType, typeText string) *Error {
	return New(phase, KindTypeMismatch).
		Record(record).
		Path(path...).
		GoType(goType).
		TypeText(typeText).
		Build()
}

// FieldMissing reports a declared field with no matching Go field.
func FieldMissing(phase Phase, record, field string) *Error {
	return New(phase, KindFieldMissing).
		Record(record).
		Path(field).
		Detail("required field %q not found", field).
		Build()
}

func NilPointer(phase Phase, goType string) *Error {
	return New(phase, KindNilPointer).GoType(goType).Detail("nil pointer").Build()
}

// NotFound reports a file or other named input that could not be read.
func NotFound(phase Phase, what, name string, cause error) *Error {
	return New(phase, KindNotFound).
		Path(name).
		Cause(cause).
		Detail("%s %q not found", what, name).
		Build()
}

func InvalidInput(phase Phase, detail string) *Error {
	return New(phase, KindInvalidInput).Detail("%s", detail).Build()
}

// Wrap attaches phase, kind and detail to cause.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Detail("%s", detail).Cause(cause).Build()
}
