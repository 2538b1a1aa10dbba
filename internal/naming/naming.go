// Package naming converts between declared field names and Go identifiers.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// GoName converts a snake_case or kebab-case name to an exported Go
// identifier: t_vec_string becomes TVecString.
func GoName(name string) string {
	var b strings.Builder
	for part := range strings.FieldsFuncSeq(name, isSeparator) {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	out := b.String()
	if out == "" {
		return "F"
	}
	if r, _ := utf8.DecodeRuneInString(out); !unicode.IsLetter(r) {
		return "F" + out
	}
	return out
}

// SnakeCase converts a Go identifier to snake_case: TVecString becomes
// t_vec_string and HTTPCode becomes http_code.
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Matches reports whether the Go field goName corresponds to the declared
// name: case-insensitively, or after separators are removed.
func Matches(goName, name string) bool {
	if strings.EqualFold(goName, name) {
		return true
	}
	return strings.EqualFold(goName, strings.Map(dropSeparator, name))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}

func dropSeparator(r rune) rune {
	if isSeparator(r) {
		return -1
	}
	return r
}
