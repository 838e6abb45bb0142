package expression

import (
	"strings"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
)

func (e *Evaluator) registerLanguage() {
	e.operators[KindLang] = e.plainLiteralProperty(func(l rdf.PlainLiteral) rdf.Term {
		return rdf.NewPlainLiteral(l.Language())
	})
	e.operators[KindLangDir] = e.plainLiteralProperty(func(l rdf.PlainLiteral) rdf.Term {
		return rdf.NewPlainLiteral(l.Direction().String())
	})
	e.operators[KindHasLang] = e.literalTest(rdf.PlainLiteral.HasLanguage)
	e.operators[KindHasLangDir] = e.literalTest(rdf.PlainLiteral.HasDirection)
	e.operators[KindLangMatches] = e.langMatches
	e.operators[KindStrLang] = e.strLang
	e.operators[KindStrLangDir] = e.strLangDir
	e.operators[KindStrDT] = e.strDT
}

// plainLiteralProperty yields a value for plain literals only.
func (e *Evaluator) plainLiteralProperty(get func(rdf.PlainLiteral) rdf.Term) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		l, ok := t.(rdf.PlainLiteral)
		if !ok {
			return nil, false
		}
		return get(l), true
	}
}

// literalTest is false for typed literals and has no value for resources.
func (e *Evaluator) literalTest(test func(rdf.PlainLiteral) bool) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		switch v := t.(type) {
		case rdf.PlainLiteral:
			return boolean(test(v))
		case rdf.TypedLiteral:
			return rdf.False, true
		default:
			return nil, false
		}
	}
}

// languageOf reads a language tag or range written as a literal: a tagged
// literal gives its tag and a simple literal its text.
func languageOf(t rdf.Term) (string, bool) {
	if l, ok := t.(rdf.PlainLiteral); ok && l.HasLanguage() {
		return l.Language(), true
	}
	if rdf.IsSimpleLiteral(t) {
		return rdf.StringValue(t), true
	}
	return "", false
}

// MatchesLanguageRange implements RFC 4647 basic filtering. The range "*"
// matches any non-empty tag and the empty range matches only the empty tag.
func MatchesLanguageRange(tag, languageRange string) bool {
	switch languageRange {
	case "*":
		return tag != ""
	case "":
		return tag == ""
	}
	if strings.EqualFold(tag, languageRange) {
		return true
	}
	return len(tag) > len(languageRange) &&
		strings.EqualFold(tag[:len(languageRange)], languageRange) &&
		tag[len(languageRange)] == '-'
}

// langMatches normalizes its first operand through LANG. An operand that is
// already a LANG expression yields the tag as a simple literal.
func (e *Evaluator) langMatches(x *Expression, row binding.Row) (rdf.Term, bool) {
	t, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	var tag string
	if inner, isExpr := x.args[0].(*Expression); isExpr && inner.kind == KindLang {
		tag, ok = languageOf(t)
	} else {
		var l rdf.PlainLiteral
		if l, ok = t.(rdf.PlainLiteral); ok {
			tag = l.Language()
		}
	}
	if !ok {
		return nil, false
	}
	r, ok := e.value(x.args[1], row)
	if !ok {
		return nil, false
	}
	languageRange, ok := languageOf(r)
	if !ok {
		return nil, false
	}
	return boolean(MatchesLanguageRange(tag, languageRange))
}

// simpleText returns the text of a plain literal without language or a
// string-based typed literal.
func (e *Evaluator) simpleText(a Argument, row binding.Row) (string, bool) {
	t, ok := e.value(a, row)
	if !ok {
		return "", false
	}
	s, ok := stringOf(t)
	if !ok || s.language != "" || t.Kind() == rdf.KindResource {
		return "", false
	}
	return s.text, true
}

func (e *Evaluator) languageTag(a Argument, row binding.Row) (string, bool) {
	tag, ok := e.simpleText(a, row)
	if !ok || !rdf.LanguageTagPattern.MatchString(tag) {
		return "", false
	}
	return tag, true
}

func (e *Evaluator) strLang(x *Expression, row binding.Row) (rdf.Term, bool) {
	text, ok := e.simpleText(x.args[0], row)
	if !ok {
		return nil, false
	}
	tag, ok := e.languageTag(x.args[1], row)
	if !ok {
		return nil, false
	}
	return rdf.NewLangLiteral(text, tag), true
}

func (e *Evaluator) strLangDir(x *Expression, row binding.Row) (rdf.Term, bool) {
	text, ok := e.simpleText(x.args[0], row)
	if !ok {
		return nil, false
	}
	tag, ok := e.languageTag(x.args[1], row)
	if !ok {
		return nil, false
	}
	dir, ok := e.simpleText(x.args[2], row)
	if !ok {
		return nil, false
	}
	direction, ok := rdf.ParseDirection(dir)
	if !ok {
		return nil, false
	}
	return rdf.NewDirLangLiteral(text, tag, direction), true
}

// strDT assigns a datatype to a simple literal. The language-carrying
// datatypes cannot be assigned.
func (e *Evaluator) strDT(x *Expression, row binding.Row) (rdf.Term, bool) {
	text, ok := e.simpleText(x.args[0], row)
	if !ok {
		return nil, false
	}
	t, ok := e.value(x.args[1], row)
	if !ok {
		return nil, false
	}
	datatype, ok := t.(rdf.Resource)
	if !ok || datatype.IsBlank() || rdf.IsForbiddenDatatype(datatype.IRI()) {
		return nil, false
	}
	return rdf.NewTypedLiteral(text, datatype.IRI()), true
}
