package tktest

import (
	"strings"

	"github.com/feather-lang/feathertk/script"
)

type parser struct {
	in  *Interp
	s   string
	pos int
}

// evalScript evaluates every command in src and returns the last result.
func (in *Interp) evalScript(src string) (string, error) {
	p := &parser{in: in, s: src}
	result := ""
	for {
		words, ok, err := p.command()
		if err != nil {
			return "", err
		}
		if !ok {
			return result, nil
		}
		if len(words) == 0 {
			continue
		}
		result, err = in.invoke(words)
		if err != nil {
			return "", err
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isWordEnd(c byte) bool {
	return isSpace(c) || c == '\n' || c == ';'
}

// command parses and substitutes the next command. ok is false at the end
// of the script.
func (p *parser) command() (words []string, ok bool, err error) {
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case isSpace(c) || c == '\n' || c == ';':
			p.pos++
			continue
		case c == '#':
			for p.pos < len(p.s) && p.s[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		break
	}
	if p.pos >= len(p.s) {
		return nil, false, nil
	}

	for {
		for p.pos < len(p.s) && isSpace(p.s[p.pos]) {
			p.pos++
		}
		if p.pos+1 < len(p.s) && p.s[p.pos] == '\\' && p.s[p.pos+1] == '\n' {
			p.pos += 2
			continue
		}
		if p.pos >= len(p.s) {
			return words, true, nil
		}
		if c := p.s[p.pos]; c == '\n' || c == ';' {
			p.pos++
			return words, true, nil
		}
		w, err := p.word()
		if err != nil {
			return nil, false, err
		}
		words = append(words, w)
	}
}

func (p *parser) word() (string, error) {
	switch p.s[p.pos] {
	case '{':
		depth := 1
		start := p.pos + 1
		p.pos++
		for p.pos < len(p.s) && depth > 0 {
			switch p.s[p.pos] {
			case '\\':
				p.pos++
			case '{':
				depth++
			case '}':
				depth--
			}
			p.pos++
		}
		if depth != 0 {
			return "", errorf("missing close-brace")
		}
		if p.pos < len(p.s) && !isWordEnd(p.s[p.pos]) {
			return "", errorf("extra characters after close-brace")
		}
		return p.s[start : p.pos-1], nil
	case '"':
		p.pos++
		w, err := p.subst(func(c byte) bool { return c == '"' })
		if err != nil {
			return "", err
		}
		if p.pos >= len(p.s) {
			return "", errorf(`missing "`)
		}
		p.pos++
		if p.pos < len(p.s) && !isWordEnd(p.s[p.pos]) {
			return "", errorf("extra characters after close-quote")
		}
		return w, nil
	default:
		return p.subst(isWordEnd)
	}
}

// subst reads up to a stop byte, performing backslash, variable and command
// substitution.
func (p *parser) subst(stop func(byte) bool) (string, error) {
	var b strings.Builder
	for p.pos < len(p.s) && !stop(p.s[p.pos]) {
		switch c := p.s[p.pos]; c {
		case '\\':
			end := escapeEnd(p.s, p.pos)
			b.WriteString(script.Unescape(p.s[p.pos:end]))
			p.pos = end
		case '$':
			name, ok := p.varName()
			if !ok {
				b.WriteByte('$')
				p.pos++
				continue
			}
			v, exists := p.in.vars[name]
			if !exists {
				return "", errorf("can't read %q: no such variable", name)
			}
			b.WriteString(v)
		case '[':
			inner, err := p.bracket()
			if err != nil {
				return "", err
			}
			r, err := p.in.evalScript(inner)
			if err != nil {
				return "", err
			}
			b.WriteString(r)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return b.String(), nil
}

func escapeEnd(s string, pos int) int {
	if pos+1 >= len(s) {
		return pos + 1
	}
	end := pos + 2
	max := 0
	switch s[pos+1] {
	case 'u':
		max = 4
	case 'x':
		max = 2
	}
	for n := 0; n < max && end < len(s) && isHex(s[end]); n++ {
		end++
	}
	return end
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// varName parses the name following '$' and advances past it.
func (p *parser) varName() (string, bool) {
	start := p.pos + 1
	if start < len(p.s) && p.s[start] == '{' {
		end := strings.IndexByte(p.s[start:], '}')
		if end < 0 {
			return "", false
		}
		p.pos = start + end + 1
		return p.s[start+1 : start+end], true
	}
	end := start
	for end < len(p.s) {
		if isNameChar(p.s[end]) {
			end++
			continue
		}
		if p.s[end] == ':' && end+1 < len(p.s) && p.s[end+1] == ':' {
			end += 2
			continue
		}
		break
	}
	if end == start {
		return "", false
	}
	p.pos = end
	return p.s[start:end], true
}

// bracket returns the script inside a [...] command substitution starting at
// p.pos and advances past the closing bracket.
func (p *parser) bracket() (string, error) {
	start := p.pos + 1
	depth := 1
	i := start
	for i < len(p.s) {
		switch p.s[i] {
		case '\\':
			i++
		case '{':
			n := 1
			for i++; i < len(p.s) && n > 0; i++ {
				switch p.s[i] {
				case '\\':
					i++
				case '{':
					n++
				case '}':
					n--
				}
			}
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				p.pos = i + 1
				return p.s[start:i], nil
			}
		}
		i++
	}
	return "", errorf("missing close-bracket")
}

// complete reports whether src has balanced braces, quotes and brackets, in
// the sense of Tcl's "info complete".
func complete(src string) bool {
	braces, brackets := 0, 0
	quoted := false
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			if !quoted {
				braces++
			}
		case '}':
			if !quoted {
				braces--
			}
		case '"':
			if braces == 0 {
				quoted = !quoted
			}
		case '[':
			if braces == 0 {
				brackets++
			}
		case ']':
			if braces == 0 {
				brackets--
			}
		}
	}
	return braces <= 0 && brackets <= 0 && !quoted
}
