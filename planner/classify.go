package planner

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/planner/internal/kind"
)

type wrapper uint8

const (
	wrapNone wrapper = iota
	wrapSequence
	wrapOptional
)

var wrappers = map[string]wrapper{
	"list":     wrapSequence,
	"sequence": wrapSequence,
	"Sequence": wrapSequence,
	"Vec":      wrapSequence,
	"option":   wrapOptional,
	"optional": wrapOptional,
	"Optional": wrapOptional,
	"Option":   wrapOptional,
}

var aliases = map[string]string{
	"i8":      "s8",
	"i16":     "s16",
	"i32":     "s32",
	"i64":     "s64",
	"int8":    "s8",
	"int16":   "s16",
	"int32":   "s32",
	"int64":   "s64",
	"uint8":   "u8",
	"uint16":  "u16",
	"uint32":  "u32",
	"uint64":  "u64",
	"byte":    "u8",
	"rune":    "char",
	"float32": "f32",
	"float64": "f64",
	"String":  "string",
	"str":     "string",
	"text":    "string",
	"Text":    "string",
}

// Classify maps a field's declared type text to its kind.
//
// Recognized shapes are a bare scalar name, a text name, option<X> where X is
// a scalar or text, and list<X> where X is a scalar or text. Every other
// shape fails with an unsupported_type error naming the field and its text.
func Classify(record, field, text string) (Type, error) {
	segs, ok := Segments(text)
	if !ok {
		return Type{}, reject(record, field, text, "malformed type text")
	}

	switch len(segs) {
	case 1:
		if _, isWrapper := wrappers[segs[0]]; isWrapper {
			return Type{}, reject(record, field, text, "%s requires an element type", segs[0])
		}
		t, ok := leaf(segs[0])
		if !ok {
			return Type{}, reject(record, field, text, "unknown type %q", segs[0])
		}
		return t, nil

	case 2:
		w, isWrapper := wrappers[segs[0]]
		if !isWrapper {
			return Type{}, reject(record, field, text, "unknown generic %q", segs[0])
		}
		elem, ok := leaf(segs[1])
		if !ok {
			return Type{}, reject(record, field, text, "unknown element type %q", segs[1])
		}
		if w == wrapSequence {
			return kind.Sequence(elem), nil
		}
		return kind.Optional(elem), nil

	default:
		return Type{}, reject(record, field, text, "nested generics are not supported")
	}
}

func reject(record, field, text, detail string, args ...any) error {
	err := errors.UnsupportedType(record, field, text)
	err.Detail = detail
	if len(args) > 0 {
		err.Detail = fmt.Sprintf(detail, args...)
	}
	return err
}

// leaf resolves a single segment to a scalar or text type.
func leaf(seg string) (Type, bool) {
	if canon, ok := aliases[seg]; ok {
		seg = canon
	}
	t, err := wit.ParseType(seg)
	if err != nil {
		return Type{}, false
	}
	switch t.(type) {
	case wit.Bool:
		return kind.Of(kind.Bool), true
	case wit.U8:
		return kind.Of(kind.U8), true
	case wit.S8:
		return kind.Of(kind.S8), true
	case wit.U16:
		return kind.Of(kind.U16), true
	case wit.S16:
		return kind.Of(kind.S16), true
	case wit.U32:
		return kind.Of(kind.U32), true
	case wit.S32:
		return kind.Of(kind.S32), true
	case wit.U64:
		return kind.Of(kind.U64), true
	case wit.S64:
		return kind.Of(kind.S64), true
	case wit.F32:
		return kind.Of(kind.F32), true
	case wit.F64:
		return kind.Of(kind.F64), true
	case wit.Char:
		return kind.Of(kind.Char), true
	case wit.String:
		return kind.TextType(), true
	default:
		return Type{}, false
	}
}

// Segments flattens type text into its outer-to-inner path segments:
// "option<list<u8>>" yields [option list u8] and "[]string" yields
// [list string]. Qualified names keep their last path element, so
// "std::string::String" yields [String]. It reports false for unbalanced
// brackets, empty names and generics with more than one argument.
func Segments(text string) ([]string, bool) {
	s := strings.TrimSpace(text)
	var segs []string

	for {
		if rest, ok := strings.CutPrefix(s, "[]"); ok {
			segs = append(segs, "list")
			s = strings.TrimSpace(rest)
			continue
		}

		open := strings.IndexByte(s, '<')
		if open < 0 {
			name, ok := segmentName(s)
			if !ok {
				return nil, false
			}
			return append(segs, name), true
		}

		if !strings.HasSuffix(s, ">") {
			return nil, false
		}
		name, ok := segmentName(s[:open])
		if !ok {
			return nil, false
		}
		segs = append(segs, name)

		inner := strings.TrimSpace(s[open+1 : len(s)-1])
		if args, balanced := splitArgs(inner); !balanced || len(args) != 1 {
			return nil, false
		}
		s = inner
	}
}

func segmentName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if s == "" || strings.ContainsAny(s, "<>,[]:* \t\n") {
		return "", false
	}
	return s, true
}

// splitArgs splits a generic argument list on top-level commas.
func splitArgs(s string) ([]string, bool) {
	var args []string
	depth := 0
	start := 0

	for i, ch := range s {
		switch ch {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}

	if last := strings.TrimSpace(s[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args, true
}
