// Package jsonparse implements a strict RFC 8259 parser that builds
// order-preserving jsonvalue trees, and the balanced delimiter scan used to
// find JSON fragments inside free text.
package jsonparse

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
)

// MaxDepth is the deepest nesting of arrays and objects Parse accepts.
const MaxDepth = 10000

// Parse parses exactly one JSON value spanning text. Leading and trailing
// JSON whitespace is allowed; anything else after the value is an error.
// Errors are always *ParseError.
func Parse(text string) (jsonvalue.Value, error) {
	p := &parser{data: text}
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of JSON input")
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.pos < len(p.data) {
		return nil, p.errorf("invalid character %s after top-level value", quoteChar(p.data[p.pos]))
	}
	return v, nil
}

// ParseBytes is Parse for byte slices.
func ParseBytes(data []byte) (jsonvalue.Value, error) {
	return Parse(string(data))
}

// Valid reports whether text is exactly one valid JSON value.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

type parser struct {
	data  string
	pos   int
	depth int

	// Location of the value being parsed, for error messages
	path []string
}

func (p *parser) parseValue() (jsonvalue.Value, error) {
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of JSON input")
	}

	switch c := p.data[p.pos]; c {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return jsonvalue.String(s), nil
	case 't':
		return p.parseLiteral("true", jsonvalue.Bool(true))
	case 'f':
		return p.parseLiteral("false", jsonvalue.Bool(false))
	case 'n':
		return p.parseLiteral("null", jsonvalue.Null{})
	default:
		if c == '-' || isDigit(c) {
			return p.parseNumber()
		}
		return nil, p.errorf("invalid character %s looking for beginning of value", quoteChar(c))
	}
}

func (p *parser) parseObject() (jsonvalue.Value, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	p.pos++ // consume '{'
	obj := jsonvalue.NewObject()

	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		p.depth--
		return obj, nil
	}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of JSON input in object")
		}
		if p.data[p.pos] != '"' {
			return nil, p.errorf("invalid character %s looking for beginning of object key string", quoteChar(p.data[p.pos]))
		}

		key, err := p.parseString()
		if err != nil {
			return nil, err
		}

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of JSON input after object key")
		}
		if p.data[p.pos] != ':' {
			return nil, p.errorf("invalid character %s after object key", quoteChar(p.data[p.pos]))
		}
		p.pos++ // consume ':'
		p.skipWhitespace()

		p.path = append(p.path, key)
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.path = p.path[:len(p.path)-1]

		// Duplicate keys: last value wins, first position is kept
		obj.Set(key, value)

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of JSON input in object")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			p.depth--
			return obj, nil
		default:
			return nil, p.errorf("invalid character %s after object key:value pair", quoteChar(p.data[p.pos]))
		}
	}
}

func (p *parser) parseArray() (jsonvalue.Value, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	p.pos++ // consume '['
	arr := jsonvalue.NewArray()

	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		p.depth--
		return arr, nil
	}

	for index := 0; ; index++ {
		p.skipWhitespace()
		p.path = append(p.path, indexPath(index))
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.path = p.path[:len(p.path)-1]
		arr.Append(value)

		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of JSON input in array")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			p.depth--
			return arr, nil
		default:
			return nil, p.errorf("invalid character %s after array element", quoteChar(p.data[p.pos]))
		}
	}
}

// parseString parses a string literal starting at the opening quote and
// returns its decoded contents.
func (p *parser) parseString() (string, error) {
	p.pos++ // consume opening '"'
	start := p.pos

	// buf stays nil while the literal needs no decoding
	var buf []byte
	chunk := start

	for p.pos < len(p.data) {
		ch := p.data[p.pos]

		switch {
		case ch == '"':
			var s string
			if buf == nil {
				s = strings.Clone(p.data[start:p.pos])
			} else {
				buf = append(buf, p.data[chunk:p.pos]...)
				s = string(buf)
			}
			p.pos++ // consume closing '"'
			return s, nil

		case ch == '\\':
			if buf == nil {
				buf = make([]byte, 0, p.pos-start+16)
			}
			buf = append(buf, p.data[chunk:p.pos]...)
			var err error
			if buf, err = p.parseEscape(buf); err != nil {
				return "", err
			}
			chunk = p.pos

		case ch < 0x20:
			return "", p.errorf("invalid character %s in string literal", quoteChar(ch))

		case ch < utf8.RuneSelf:
			p.pos++

		default:
			r, size := utf8.DecodeRuneInString(p.data[p.pos:])
			if r == utf8.RuneError && size == 1 {
				// Invalid UTF-8 is replaced, as encoding/json does
				if buf == nil {
					buf = make([]byte, 0, p.pos-start+16)
				}
				buf = append(buf, p.data[chunk:p.pos]...)
				buf = utf8.AppendRune(buf, utf8.RuneError)
				p.pos++
				chunk = p.pos
				continue
			}
			p.pos += size
		}
	}

	return "", p.errorf("unexpected end of JSON input in string literal")
}

// parseEscape decodes the escape sequence at p.pos (a backslash) into buf.
func (p *parser) parseEscape(buf []byte) ([]byte, error) {
	p.pos++ // consume '\'
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of JSON input in string escape code")
	}

	esc := p.data[p.pos]
	p.pos++
	switch esc {
	case '"', '\\', '/':
		return append(buf, esc), nil
	case 'b':
		return append(buf, '\b'), nil
	case 'f':
		return append(buf, '\f'), nil
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case 'u':
		r, err := p.parseHex4()
		if err != nil {
			return nil, err
		}
		if utf16.IsSurrogate(r) {
			r2 := rune(-1)
			if p.pos+1 < len(p.data) && p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
				save := p.pos
				p.pos += 2
				lo, err := p.parseHex4()
				if err != nil {
					return nil, err
				}
				if dec := utf16.DecodeRune(r, lo); dec != utf8.RuneError {
					r2 = dec
				} else {
					// Not a valid pair; the second escape is decoded on its own
					p.pos = save
				}
			}
			if r2 < 0 {
				r2 = utf8.RuneError
			}
			r = r2
		}
		return utf8.AppendRune(buf, r), nil
	default:
		p.pos--
		return nil, p.errorf("invalid character %s in string escape code", quoteChar(esc))
	}
}

func (p *parser) parseHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		if p.pos >= len(p.data) {
			return 0, p.errorf("unexpected end of JSON input in \\u hexadecimal character escape")
		}
		c := p.data[p.pos]
		if !isHexDigit(c) {
			return 0, p.errorf("invalid character %s in \\u hexadecimal character escape", quoteChar(c))
		}
		r = r<<4 | rune(hexValue(c))
		p.pos++
	}
	return r, nil
}

func (p *parser) parseNumber() (jsonvalue.Value, error) {
	start := p.pos

	// Optional minus
	if p.data[p.pos] == '-' {
		p.pos++
	}
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of JSON input in numeric literal")
	}

	// Integer part
	switch c := p.data[p.pos]; {
	case c == '0':
		p.pos++
	case c >= '1' && c <= '9':
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
	default:
		return nil, p.errorf("invalid character %s in numeric literal", quoteChar(c))
	}

	// Decimal part
	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		p.pos++
		if err := p.requireDigits("after decimal point in numeric literal"); err != nil {
			return nil, err
		}
	}

	// Exponent part
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		if err := p.requireDigits("in exponent of numeric literal"); err != nil {
			return nil, err
		}
	}

	return jsonvalue.Number(strings.Clone(p.data[start:p.pos])), nil
}

func (p *parser) requireDigits(where string) error {
	if p.pos >= len(p.data) {
		return p.errorf("unexpected end of JSON input %s", where)
	}
	if !isDigit(p.data[p.pos]) {
		return p.errorf("invalid character %s %s", quoteChar(p.data[p.pos]), where)
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	return nil
}

func (p *parser) parseLiteral(lit string, v jsonvalue.Value) (jsonvalue.Value, error) {
	for i := 0; i < len(lit); i++ {
		if p.pos >= len(p.data) {
			return nil, p.errorf("unexpected end of JSON input in literal %s", lit)
		}
		if p.data[p.pos] != lit[i] {
			return nil, p.errorf("invalid character %s in literal %s (expecting %s)", quoteChar(p.data[p.pos]), lit, quoteChar(lit[i]))
		}
		p.pos++
	}
	return v, nil
}

func (p *parser) descend() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf("exceeded max depth of %d", MaxDepth)
	}
	return nil
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		ch := p.data[p.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		p.pos++
	}
}

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// quoteChar formats c the way encoding/json error messages do.
func quoteChar(c byte) string {
	if c == '\'' {
		return `'\''`
	}
	if c == '"' {
		return `'"'`
	}
	s := strconv.Quote(string(rune(c)))
	return "'" + s[1:len(s)-1] + "'"
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch byte) byte {
	switch {
	case isDigit(ch):
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
