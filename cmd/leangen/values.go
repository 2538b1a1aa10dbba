package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/leanbuffer/planner"
)

// parseInto stores text, read as a value of t, into dst. Empty text leaves
// required fields at their default and optional fields absent. Sequence
// elements are comma-separated, except list<char>, which takes the runes
// of text.
func parseInto(dst reflect.Value, t planner.Type, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	switch t.Shape {
	case planner.ShapeText:
		dst.SetString(text)
		return nil

	case planner.ShapeOptional:
		p := reflect.New(dst.Type().Elem())
		if err := parseInto(p.Elem(), t.Elem(), text); err != nil {
			return err
		}
		dst.Set(p)
		return nil

	case planner.ShapeSequence:
		if !t.Text && t.Scalar == planner.Char {
			dst.Set(reflect.ValueOf([]rune(text)).Convert(dst.Type()))
			return nil
		}
		parts := strings.Split(text, ",")
		s := reflect.MakeSlice(dst.Type(), len(parts), len(parts))
		for i, part := range parts {
			if t.Text {
				s.Index(i).SetString(strings.TrimSpace(part))
				continue
			}
			if err := parseScalar(s.Index(i), t.Scalar, strings.TrimSpace(part)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(s)
		return nil

	default:
		return parseScalar(dst, t.Scalar, text)
	}
}

func parseScalar(dst reflect.Value, s planner.Scalar, text string) error {
	bits := s.Size() * 8
	switch s {
	case planner.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case planner.Char:
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError || size != len(text) {
			return fmt.Errorf("%q is not a single character", text)
		}
		dst.SetInt(int64(r))
	case planner.F32, planner.F64:
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	case planner.U8, planner.U16, planner.U32, planner.U64:
		u, err := strconv.ParseUint(text, 0, bits)
		if err != nil {
			return err
		}
		dst.SetUint(u)
	default:
		i, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			return err
		}
		dst.SetInt(i)
	}
	return nil
}

// formatValue renders v, a value of t, for display.
func formatValue(v reflect.Value, t planner.Type) string {
	switch t.Shape {
	case planner.ShapeText:
		return strconv.Quote(v.String())
	case planner.ShapeOptional:
		if v.IsNil() {
			return "none"
		}
		return "some(" + formatValue(v.Elem(), t.Elem()) + ")"
	case planner.ShapeSequence:
		if !t.Text && t.Scalar == planner.Char {
			rs := make([]rune, v.Len())
			for i := range rs {
				rs[i] = rune(v.Index(i).Int())
			}
			return "list" + strconv.Quote(string(rs))
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i), t.Elem())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		if t.Scalar == planner.Char {
			return strconv.QuoteRune(rune(v.Int()))
		}
		return fmt.Sprint(v.Interface())
	}
}
