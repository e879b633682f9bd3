package script

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is a result string returned by the interpreter, with typed accessors.
// TCL values have no fixed type; each accessor parses the string on demand.
type Value string

func (v Value) String() string {
	return string(v)
}

// Int parses the value as a TCL integer (decimal, or 0x/0o/0b prefixed).
func (v Value) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(v)), 0, 64)
}

// Float parses the value as a double.
func (v Value) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
}

// Bool parses the value using TCL boolean rules.
// Truthy: "1", "true", "yes", "on", any non-zero number.
// Falsy: "0", "false", "no", "off", zero.
func (v Value) Bool() (bool, error) {
	s := strings.ToLower(strings.TrimSpace(string(v)))
	switch s {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("expected boolean value but got %q", string(v))
}

// List splits the value as a TCL list.
func (v Value) List() ([]Value, error) {
	items, err := SplitList(string(v))
	if err != nil {
		return nil, err
	}
	result := make([]Value, len(items))
	for i, item := range items {
		result[i] = Value(item)
	}
	return result, nil
}

// IsEmpty reports whether the value is the empty string.
func (v Value) IsEmpty() bool {
	return v == ""
}

func isListSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// SplitList parses a TCL list string into its elements.
func SplitList(s string) ([]string, error) {
	var items []string
	pos := 0

	for pos < len(s) {
		for pos < len(s) && isListSpace(s[pos]) {
			pos++
		}
		if pos >= len(s) {
			break
		}

		var elem string
		switch s[pos] {
		case '{':
			depth := 1
			start := pos + 1
			pos++
			for pos < len(s) && depth > 0 {
				switch s[pos] {
				case '\\':
					pos++
				case '{':
					depth++
				case '}':
					depth--
				}
				pos++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unmatched open brace in list")
			}
			elem = s[start : pos-1]
			if pos < len(s) && !isListSpace(s[pos]) {
				return nil, fmt.Errorf("list element in braces followed by %q instead of space", s[pos:pos+1])
			}
		case '"':
			start := pos + 1
			pos++
			for pos < len(s) && s[pos] != '"' {
				if s[pos] == '\\' && pos+1 < len(s) {
					pos++
				}
				pos++
			}
			if pos >= len(s) {
				return nil, fmt.Errorf("unmatched open quote in list")
			}
			elem = Unescape(s[start:pos])
			pos++
			if pos < len(s) && !isListSpace(s[pos]) {
				return nil, fmt.Errorf("list element in quotes followed by %q instead of space", s[pos:pos+1])
			}
		default:
			start := pos
			for pos < len(s) && !isListSpace(s[pos]) {
				if s[pos] == '\\' && pos+1 < len(s) {
					pos++
				}
				pos++
			}
			elem = Unescape(s[start:pos])
		}
		items = append(items, elem)
	}
	return items, nil
}

// Unescape performs TCL backslash substitution on s.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case '\n':
			// backslash-newline and the following whitespace collapse to a space
			for i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t') {
				i++
			}
			b.WriteByte(' ')
		case 'u':
			n, r := hexRune(s[i+1:], 4)
			if n == 0 {
				b.WriteByte('u')
				continue
			}
			b.WriteRune(r)
			i += n
		case 'x':
			n, r := hexRune(s[i+1:], 2)
			if n == 0 {
				b.WriteByte('x')
				continue
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hexRune(s string, max int) (int, rune) {
	n := 0
	var r rune
	for n < max && n < len(s) {
		c := s[n]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			if n == 0 {
				return 0, utf8.RuneError
			}
			return n, r
		}
		r = r<<4 | rune(d)
		n++
	}
	return n, r
}
