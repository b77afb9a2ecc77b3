package lint

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// literalOrIdentifier textualizes an argument for error/warn rebuilding:
// raw source text for literals, the plain name for identifiers, "" for
// anything else (dropped by the caller).
func (e *Engine) literalOrIdentifier(node *sitter.Node) string {
	switch node.Kind() {
	case "string", "number", "true", "false", "null", "undefined", "regex", "template_string":
		return e.text(node)
	case "identifier":
		return e.text(node)
	default:
		return ""
	}
}

// cookedLiteralOrIdentifier textualizes an argument for info rebuilding.
// Template literals without interpolation are cooked into plain
// single-quoted strings; other literals keep their raw text.
func (e *Engine) cookedLiteralOrIdentifier(node *sitter.Node) string {
	if node.Kind() == "template_string" && !hasSubstitution(node) {
		inner := e.text(node)
		inner = strings.TrimPrefix(inner, "`")
		inner = strings.TrimSuffix(inner, "`")
		return singleQuote(cookEscapes(inner))
	}
	return e.literalOrIdentifier(node)
}

func hasSubstitution(template *sitter.Node) bool {
	for i := uint(0); i < template.NamedChildCount(); i++ {
		if child := template.NamedChild(i); child != nil && child.Kind() == "template_substitution" {
			return true
		}
	}
	return false
}

// cookEscapes interprets JavaScript escape sequences the way a template
// literal's cooked value does. Unknown escapes reduce to the escaped
// character itself.
func cookEscapes(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(raw) {
				if n, err := strconv.ParseUint(raw[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			if r, width, ok := cookUnicode(raw[i:]); ok {
				b.WriteRune(r)
				i += width
				continue
			}
			b.WriteByte('u')
		default:
			b.WriteByte(raw[i])
		}
	}

	return b.String()
}

// cookUnicode decodes \uXXXX and \u{...} forms. s starts at the 'u'; the
// returned width is the number of bytes consumed past it.
func cookUnicode(s string) (rune, int, bool) {
	if len(s) >= 2 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, false
		}
		n, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(n), end, true
	}
	if len(s) >= 5 {
		n, err := strconv.ParseUint(s[1:5], 16, 16)
		if err != nil {
			return 0, 0, false
		}
		return rune(n), 4, true
	}
	return 0, 0, false
}

// singleQuote wraps a cooked string in single quotes, re-escaping the
// characters that cannot appear bare in a JavaScript string literal.
func singleQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
