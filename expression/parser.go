package expression

import (
	"strings"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// builtins maps upper-cased function names to their operators.
var builtins = func() map[string]Kind {
	m := map[string]Kind{"URI": KindIRI, "ISURI": KindIsIRI}
	for _, k := range Kinds() {
		if kinds[k].form == formCall {
			m[strings.ToUpper(kinds[k].name)] = k
		}
	}
	return m
}()

// functions maps function IRIs to their operators.
var functions = func() map[string]Kind {
	m := make(map[string]Kind)
	for _, k := range Kinds() {
		if iri := kinds[k].iri; iri != "" {
			m[iri] = k
		}
	}
	return m
}()

var relational = map[string]Kind{
	"=":  KindEqual,
	"!=": KindNotEqual,
	"<":  KindLess,
	"<=": KindLessOrEqual,
	">":  KindGreater,
	">=": KindGreaterOrEqual,
}

// Parse reads an expression in the syntax Render produces, which is the
// SPARQL expression grammar. Prefixed names are expanded against ns, or
// against the default namespaces when ns is nil. Syntax errors are invalid
// errors wrapping ErrParsingFailed; arguments that fail operator
// construction surface the construction error.
func Parse(text string, ns *vocabulary.Namespaces) (*Expression, error) {
	if ns == nil {
		ns = vocabulary.DefaultNamespaces()
	}
	p := &parser{lex: lexer{src: text}, ns: ns}
	if err := p.advance(); err != nil {
		return nil, err
	}
	arg, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, syntaxError(p.tok.pos, "unexpected %s", p.tok.describe())
	}
	x, ok := arg.(*Expression)
	if !ok {
		return nil, syntaxError(0, "%s is not an operator expression", strings.TrimSpace(text))
	}
	return x, nil
}

type parser struct {
	lex lexer
	tok token
	ns  *vocabulary.Namespaces
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(punct string) error {
	if !p.tok.is(punct) {
		return syntaxError(p.tok.pos, "expected %q, found %s", punct, p.tok.describe())
	}
	return p.advance()
}

func (p *parser) binary(kind Kind, left, right Argument) (Argument, error) {
	x, err := New(kind, left, right)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (p *parser) parseOr() (Argument, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.is("||") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(KindOr, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseAnd() (Argument, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.tok.is("&&") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(KindAnd, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseRelational() (Argument, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokPunct {
		if kind, ok := relational[p.tok.text]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return p.binary(kind, left, right)
		}
	}

	switch {
	case p.tok.isName("IN"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseMembership(KindIn, left)
	case p.tok.isName("NOT"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.tok.isName("IN") {
			return nil, syntaxError(p.tok.pos, "expected IN after NOT, found %s", p.tok.describe())
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseMembership(KindNotIn, left)
	}
	return left, nil
}

func (p *parser) parseMembership(kind Kind, left Argument) (Argument, error) {
	candidates, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if kind == KindIn {
		return NewIn(left, candidates...)
	}
	return NewNotIn(left, candidates...)
}

func (p *parser) parseAdditive() (Argument, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.is("+") || p.tok.is("-") {
		kind := KindAdd
		if p.tok.text == "-" {
			kind = KindSubtract
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(kind, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Argument, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.is("*") || p.tok.is("/") {
		kind := KindMultiply
		if p.tok.text == "/" {
			kind = KindDivide
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(kind, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

var zero = NewConstant(rdf.NewIntegerLiteral(0))

func (p *parser) parseUnary() (Argument, error) {
	switch {
	case p.tok.is("!"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return New(KindNot, arg)
	case p.tok.is("+"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	case p.tok.is("-"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokNumber {
			p.tok.text = "-" + p.tok.text
			return p.parsePrimary()
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.binary(KindSubtract, zero, arg)
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Argument, error) {
	tok := p.tok
	switch tok.kind {
	case tokPunct:
		if !tok.is("(") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return arg, p.expect(")")
	case tokVar:
		return NewVariable(tok.text), p.advance()
	case tokNumber:
		return NewConstant(numberLiteral(tok.text)), p.advance()
	case tokString:
		return p.parseLiteral()
	case tokBlank:
		return NewConstant(rdf.NewBlankNode(tok.text)), p.advance()
	case tokIRI, tokPName:
		iri, err := p.iri()
		if err != nil {
			return nil, err
		}
		if p.tok.is("(") {
			return p.parseFunction(tok, iri)
		}
		return NewConstant(rdf.NewResource(iri)), nil
	case tokName:
		switch tok.text {
		case "true":
			return NewConstant(rdf.True), p.advance()
		case "false":
			return NewConstant(rdf.False), p.advance()
		}
		kind, ok := builtins[strings.ToUpper(tok.text)]
		if !ok {
			return nil, syntaxError(tok.pos, "unknown function %s", tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseCall(kind)
	}
	return nil, syntaxError(tok.pos, "unexpected %s", tok.describe())
}

func numberLiteral(text string) rdf.TypedLiteral {
	switch {
	case strings.ContainsAny(text, "eE"):
		return rdf.NewTypedLiteral(text, vocabulary.XSDDouble)
	case strings.Contains(text, "."):
		return rdf.NewTypedLiteral(text, vocabulary.XSDDecimal)
	default:
		return rdf.NewTypedLiteral(text, vocabulary.XSDInteger)
	}
}

// iri consumes an IRI or prefixed name token and returns the full IRI.
func (p *parser) iri() (string, error) {
	tok := p.tok
	iri := tok.text
	if tok.kind == tokPName {
		expanded, ok := p.ns.Expand(tok.text)
		if !ok {
			return "", syntaxError(tok.pos, "unknown prefix in %s", tok.text)
		}
		iri = expanded
	}
	return iri, p.advance()
}

func (p *parser) parseLiteral() (Argument, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if tok.lang != "" {
		tag, dir, hasDir := strings.Cut(tok.lang, "--")
		if !rdf.LanguageTagPattern.MatchString(tag) {
			return nil, syntaxError(tok.pos, "invalid language tag %q", tok.lang)
		}
		if !hasDir {
			return NewConstant(rdf.NewLangLiteral(tok.text, tag)), nil
		}
		direction, ok := rdf.ParseDirection(dir)
		if !ok {
			return nil, syntaxError(tok.pos, "invalid base direction %q", dir)
		}
		return NewConstant(rdf.NewDirLangLiteral(tok.text, tag, direction)), nil
	}
	if !p.tok.is("^^") {
		return NewConstant(rdf.NewPlainLiteral(tok.text)), nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokIRI && p.tok.kind != tokPName {
		return nil, syntaxError(p.tok.pos, "expected datatype IRI, found %s", p.tok.describe())
	}
	datatype, err := p.iri()
	if err != nil {
		return nil, err
	}
	return NewConstant(rdf.NewTypedLiteral(tok.text, datatype)), nil
}

// parseArgList reads a parenthesized, comma separated list, which may be
// empty.
func (p *parser) parseArgList() ([]Argument, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var args []Argument
	if p.tok.is(")") {
		return args, p.advance()
	}
	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.tok.is(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return args, p.expect(")")
}

func (p *parser) parseCall(kind Kind) (Argument, error) {
	pos := p.tok.pos
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindRegex:
		if len(args) < 2 || len(args) > 3 {
			return nil, syntaxError(pos, "REGEX expects 2 or 3 arguments, got %d", len(args))
		}
		params, err := stringParams(pos, args[1:])
		if err != nil {
			return nil, err
		}
		flags := ""
		if len(params) == 2 {
			flags = params[1]
		}
		return NewRegex(args[0], params[0], flags)
	case KindReplace:
		if len(args) < 3 || len(args) > 4 {
			return nil, syntaxError(pos, "REPLACE expects 3 or 4 arguments, got %d", len(args))
		}
		params, err := stringParams(pos, args[1:])
		if err != nil {
			return nil, err
		}
		flags := ""
		if len(params) == 3 {
			flags = params[2]
		}
		return NewReplace(args[0], params[0], params[1], flags)
	}
	return New(kind, args...)
}

// stringParams reads fixed REGEX and REPLACE parameters, which must be
// string literals.
func stringParams(pos int, args []Argument) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		c, ok := a.(Constant)
		if !ok || !rdf.IsSimpleLiteral(c.term) {
			return nil, syntaxError(pos, "parameter %d must be a string literal", i+2)
		}
		out[i] = rdf.StringValue(c.term)
	}
	return out, nil
}

func (p *parser) parseFunction(tok token, iri string) (Argument, error) {
	kind, ok := functions[iri]
	if !ok {
		return nil, syntaxError(tok.pos, "unknown function <%s>", iri)
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if kind != KindGeoBuffer {
		return New(kind, args...)
	}

	if len(args) != 3 {
		return nil, syntaxError(tok.pos, "buffer expects 3 arguments, got %d", len(args))
	}
	distance, ok := constantTerm(args[1])
	n, isNumber := rdf.NumericOf(distance)
	if !ok || !isNumber {
		return nil, syntaxError(tok.pos, "buffer distance must be a numeric literal")
	}
	uom, ok := constantTerm(args[2])
	unit, isIRI := uom.(rdf.Resource)
	if !ok || !isIRI || unit.IsBlank() {
		return nil, syntaxError(tok.pos, "buffer unit must be an IRI")
	}
	return NewBuffer(args[0], n.Float64(), unit.IRI())
}

func constantTerm(a Argument) (rdf.Term, bool) {
	c, ok := a.(Constant)
	if !ok {
		return nil, false
	}
	return c.term, true
}
