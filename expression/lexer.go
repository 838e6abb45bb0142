package expression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/rdf"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokVar
	tokIRI
	tokPName
	tokBlank
	tokString
	tokNumber
	tokName
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	// lang holds the @tag suffix of a string token.
	lang string
	pos  int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

func (t token) isName(name string) bool {
	return t.kind == tokName && strings.EqualFold(t.text, name)
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

type lexer struct {
	src string
	pos int
}

func syntaxError(pos int, format string, args ...any) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s at offset %d", errors.ErrParsingFailed, fmt.Sprintf(format, args...), pos),
		"expression", "Parse", "expression parsing")
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '?' || c == '$':
		l.pos++
		name := l.scanWhile(isNameByte)
		if name == "" {
			return token{}, syntaxError(start, "empty variable name")
		}
		return token{kind: tokVar, text: "?" + name, pos: start}, nil
	case c == '"' || c == '\'':
		return l.scanString()
	case c == '<':
		if iri, ok := l.scanIRI(); ok {
			return token{kind: tokIRI, text: iri, pos: start}, nil
		}
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		return token{kind: tokNumber, text: l.scanNumber(), pos: start}, nil
	case c == '_' && l.peekByte(1) == ':':
		l.pos += 2
		id := l.scanWhile(isLocalByte)
		if id == "" {
			return token{}, syntaxError(start, "empty blank node label")
		}
		return token{kind: tokBlank, text: id, pos: start}, nil
	case isLetter(c):
		name := l.scanWhile(isPrefixByte)
		if l.peekByte(0) == ':' {
			l.pos++
			local := strings.TrimRight(l.scanWhile(isLocalByte), ".")
			l.pos = start + len(name) + 1 + len(local)
			return token{kind: tokPName, text: name + ":" + local, pos: start}, nil
		}
		// Builtin names never contain '.' or '-'.
		if i := strings.IndexAny(name, ".-"); i >= 0 {
			name = name[:i]
		}
		l.pos = start + len(name)
		return token{kind: tokName, text: name, pos: start}, nil
	case c == ':':
		l.pos++
		local := strings.TrimRight(l.scanWhile(isLocalByte), ".")
		l.pos = start + 1 + len(local)
		return token{kind: tokPName, text: ":" + local, pos: start}, nil
	}

	for _, op := range []string{"!=", "<=", ">=", "&&", "||", "^^"} {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return token{kind: tokPunct, text: op, pos: start}, nil
		}
	}
	if strings.ContainsRune("()[],+-*/=<>!", rune(c)) {
		l.pos++
		return token{kind: tokPunct, text: string(c), pos: start}, nil
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return token{}, syntaxError(start, "unexpected character %q", r)
}

func (l *lexer) scanWhile(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.src) && accept(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}

// scanIRI reads <iri>. It leaves the position untouched when the text after
// '<' is not an IRI, so the caller can read a less-than operator instead.
func (l *lexer) scanIRI() (string, bool) {
	end := strings.IndexByte(l.src[l.pos+1:], '>')
	if end < 0 {
		return "", false
	}
	iri := l.src[l.pos+1 : l.pos+1+end]
	if !rdf.IsAbsoluteIRI(iri) {
		return "", false
	}
	l.pos += end + 2
	return iri, true
}

func (l *lexer) scanNumber() string {
	start := l.pos
	l.scanWhile(isDigit)
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		l.pos++
		l.scanWhile(isDigit)
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		save := l.pos
		l.pos++
		if c := l.peekByte(0); c == '+' || c == '-' {
			l.pos++
		}
		if l.scanWhile(isDigit) == "" {
			l.pos = save
		}
	}
	return l.src[start:l.pos]
}

func (l *lexer) scanString() (token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, syntaxError(start, "unterminated string")
		}
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			tok := token{kind: tokString, text: b.String(), pos: start}
			if l.peekByte(0) == '@' {
				l.pos++
				tok.lang = l.scanWhile(func(c byte) bool { return isLetter(c) || isDigit(c) || c == '-' })
				if tok.lang == "" {
					return token{}, syntaxError(l.pos, "empty language tag")
				}
			}
			return tok, nil
		case c == '\n' || c == '\r':
			return token{}, syntaxError(l.pos, "line break in string")
		case c == '\\':
			r, err := l.scanEscape()
			if err != nil {
				return token{}, err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *lexer) scanEscape() (rune, error) {
	start := l.pos
	l.pos++
	if l.pos >= len(l.src) {
		return 0, syntaxError(start, "dangling escape")
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '"', '\'', '\\':
		return rune(c), nil
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		if l.pos+width > len(l.src) {
			return 0, syntaxError(start, "short unicode escape")
		}
		v, err := strconv.ParseUint(l.src[l.pos:l.pos+width], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, syntaxError(start, "invalid unicode escape")
		}
		l.pos += width
		return rune(v), nil
	default:
		return 0, syntaxError(start, "unknown escape \\%c", c)
	}
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isNameByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c >= utf8.RuneSelf
}

func isPrefixByte(c byte) bool {
	return isNameByte(c) || c == '.' || c == '-'
}

func isLocalByte(c byte) bool {
	return isNameByte(c) || c == '.' || c == '-'
}
