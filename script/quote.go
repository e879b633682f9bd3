// Package script builds Tcl command strings from Go values and reads Tcl
// results back into Go.
//
// Every word handed to [Command] is quoted with [Quote], so caller-supplied
// text can never change the shape of the command it is placed in:
//
//	script.Command("label", ".w1", "-text", `say "hi" [now]`)
//	// label .w1 -text {say "hi" [now]}
//
// Use [Raw] for the rare word that must reach the interpreter unquoted, such
// as a command substitution built with [Subst].
package script

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Raw is a word that is inserted into a command verbatim.
type Raw string

// Subst returns a command substitution word, "[words...]".
func Subst(words ...any) Raw {
	return Raw("[" + Command(words...) + "]")
}

// Command joins words into a single Tcl command. Each word is converted with
// [Word].
func Command(words ...any) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Word(w))
	}
	return b.String()
}

// Word converts a Go value to exactly one Tcl word.
func Word(v any) string {
	if v == nil {
		return "{}"
	}

	switch val := v.(type) {
	case Raw:
		return string(val)
	case string:
		return Quote(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case []string:
		return Quote(List(val...))
	case fmt.Stringer:
		return Quote(val.String())
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = Word(rv.Index(i).Interface())
			}
			return Quote(strings.Join(parts, " "))
		default:
			return Quote(fmt.Sprintf("%v", v))
		}
	}
}

// List formats items as a well-formed Tcl list.
func List(items ...string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = Quote(s)
	}
	return strings.Join(parts, " ")
}

// Quote returns s as a single Tcl word whose value is exactly s.
//
// Words without special characters are returned as they are. Otherwise the
// word is wrapped in braces when that is lossless, and backslash-escaped when
// it is not (unbalanced braces, or any backslash).
func Quote(s string) string {
	if s == "" {
		return "{}"
	}
	if !needsQuote(s) {
		return s
	}
	if canBrace(s) {
		return "{" + s + "}"
	}
	return escape(s)
}

func needsQuote(s string) bool {
	if s[0] == '#' {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\v', '\f', ';', '"', '$', '[', ']', '{', '}', '\\':
			return true
		}
	}
	return false
}

// canBrace reports whether {s} reads back as s. Braces suppress every
// substitution except backslash-newline, and an unmatched brace would end
// the word early.
func canBrace(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			return false
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case ' ', ';', '"', '$', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '#':
			if i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
