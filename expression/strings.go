package expression

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
)

func (e *Evaluator) registerStrings() {
	e.operators[KindStr] = e.str
	e.operators[KindStrLen] = e.strLen
	e.operators[KindConcat] = e.concat
	e.operators[KindContains] = e.stringTest(strings.Contains)
	e.operators[KindStrStarts] = e.stringTest(strings.HasPrefix)
	e.operators[KindStrEnds] = e.stringTest(strings.HasSuffix)
	e.operators[KindStrBefore] = e.split(true)
	e.operators[KindStrAfter] = e.split(false)
	e.operators[KindSubstr] = e.substr
	e.operators[KindUCase] = e.changeCase(cases.Upper)
	e.operators[KindLCase] = e.changeCase(cases.Lower)
	e.operators[KindEncodeForURI] = e.encodeForURI
	e.operators[KindRegex] = e.regex
	e.operators[KindReplace] = e.replace
}

// stringValue is the text of a string-valued term together with the shape
// results derived from it inherit.
type stringValue struct {
	text      string
	language  string
	direction rdf.Direction
	typed     bool
}

// stringOf returns the string value of a resource, a plain literal or a
// string-based typed literal.
func stringOf(t rdf.Term) (stringValue, bool) {
	switch v := t.(type) {
	case rdf.Resource:
		return stringValue{text: v.IRI()}, true
	case rdf.PlainLiteral:
		return stringValue{text: v.Text(), language: v.Language(), direction: v.Direction()}, true
	case rdf.TypedLiteral:
		if v.Category() == rdf.CategoryString {
			return stringValue{text: v.Text(), typed: true}, true
		}
	}
	return stringValue{}, false
}

// with builds a literal of the same shape as s holding text.
func (s stringValue) with(text string) rdf.Term {
	switch {
	case s.language != "":
		return rdf.NewDirLangLiteral(text, s.language, s.direction)
	case s.typed:
		return rdf.NewStringLiteral(text)
	default:
		return rdf.NewPlainLiteral(text)
	}
}

// compatible reports whether needle may be searched for in s: a tagged
// needle needs a haystack with the same tag.
func (s stringValue) compatible(needle stringValue) bool {
	return needle.language == "" || strings.EqualFold(s.language, needle.language)
}

func (e *Evaluator) stringArg(a Argument, row binding.Row) (stringValue, bool) {
	t, ok := e.value(a, row)
	if !ok {
		return stringValue{}, false
	}
	return stringOf(t)
}

func (e *Evaluator) str(x *Expression, row binding.Row) (rdf.Term, bool) {
	t, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	if r, ok := t.(rdf.Resource); ok && r.IsBlank() {
		return nil, false
	}
	return rdf.NewPlainLiteral(rdf.StringValue(t)), true
}

func (e *Evaluator) strLen(x *Expression, row binding.Row) (rdf.Term, bool) {
	s, ok := e.stringArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	return rdf.NewIntegerLiteral(int64(utf8.RuneCountInString(s.text))), true
}

// concat treats an operand without a value as the empty string. The result
// keeps a language tag shared by every operand, is xsd:string when every
// operand is, and is a plain literal otherwise.
func (e *Evaluator) concat(x *Expression, row binding.Row) (rdf.Term, bool) {
	var b strings.Builder
	var shape stringValue
	for i, a := range x.args {
		s := stringValue{}
		if t, ok := e.value(a, row); ok {
			if s, ok = stringOf(t); !ok {
				return nil, false
			}
		}
		b.WriteString(s.text)

		if i == 0 {
			shape = s
			continue
		}
		if !s.typed {
			shape.typed = false
		}
		if !strings.EqualFold(shape.language, s.language) || shape.direction != s.direction {
			shape.language, shape.direction = "", rdf.DirectionNone
		}
	}
	return shape.with(b.String()), true
}

// stringTest applies an ordinal test. An empty needle always matches.
func (e *Evaluator) stringTest(test func(s, needle string) bool) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		s, ok := e.stringArg(x.args[0], row)
		if !ok {
			return nil, false
		}
		needle, ok := e.stringArg(x.args[1], row)
		if !ok {
			return nil, false
		}
		if needle.text == "" {
			return rdf.True, true
		}
		return boolean(test(s.text, needle.text))
	}
}

// split implements STRBEFORE and STRAFTER. A missing needle yields the
// empty simple literal.
func (e *Evaluator) split(before bool) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		s, ok := e.stringArg(x.args[0], row)
		if !ok {
			return nil, false
		}
		needle, ok := e.stringArg(x.args[1], row)
		if !ok || !s.compatible(needle) {
			return nil, false
		}
		i := strings.Index(s.text, needle.text)
		switch {
		case i < 0:
			return emptyLiteral, true
		case before:
			return s.with(s.text[:i]), true
		default:
			return s.with(s.text[i+len(needle.text):]), true
		}
	}
}

// substr selects the characters at 1-based positions p with
// round(start) <= p < round(start) + round(length).
func (e *Evaluator) substr(x *Expression, row binding.Row) (rdf.Term, bool) {
	s, ok := e.stringArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	start, ok := e.numeric(x.args[1], row)
	if !ok {
		return nil, false
	}
	from := xpathRound(start.Float64())
	to := math.Inf(1)
	if len(x.args) == 3 {
		length, ok := e.numeric(x.args[2], row)
		if !ok {
			return nil, false
		}
		to = from + xpathRound(length.Float64())
	}

	var b strings.Builder
	p := 1.0
	for _, r := range s.text {
		if p >= from && p < to {
			b.WriteRune(r)
		}
		p++
	}
	return s.with(b.String()), true
}

func xpathRound(f float64) float64 {
	return math.Floor(f + 0.5)
}

func (e *Evaluator) changeCase(caser func(language.Tag, ...cases.Option) cases.Caser) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		s, ok := e.stringArg(x.args[0], row)
		if !ok {
			return nil, false
		}
		tag := language.Und
		if s.language != "" {
			if t, err := language.Parse(s.language); err == nil {
				tag = t
			}
		}
		return s.with(caser(tag).String(s.text)), true
	}
}

const upperHex = "0123456789ABCDEF"

func (e *Evaluator) encodeForURI(x *Expression, row binding.Row) (rdf.Term, bool) {
	s, ok := e.stringArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	var b strings.Builder
	for i := 0; i < len(s.text); i++ {
		c := s.text[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return rdf.NewPlainLiteral(b.String()), true
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '_' || c == '.' || c == '~'
}

func (e *Evaluator) regex(x *Expression, row binding.Row) (rdf.Term, bool) {
	t, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	// Same projection as STR: blank nodes have no string form.
	if r, ok := t.(rdf.Resource); ok && r.IsBlank() {
		return nil, false
	}
	return boolean(x.pattern.re.MatchString(rdf.StringValue(t)))
}

func (e *Evaluator) replace(x *Expression, row binding.Row) (rdf.Term, bool) {
	s, ok := e.stringArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	return s.with(x.pattern.re.ReplaceAllString(s.text, x.template)), true
}
