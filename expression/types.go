// Package expression implements SPARQL scalar expressions: an immutable
// operator tree over variables and constant RDF terms, rendered back to
// SPARQL text and evaluated against one binding row at a time.
//
// Trees are built once, either with the New* constructors or by Parse, and
// may then be evaluated concurrently against any number of rows. A
// constructor rejects a missing argument or an unusable fixed parameter
// with a fatal error; evaluation never fails loudly and instead reports
// that the expression produced no value for the row.
package expression

import (
	"sort"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// Kind identifies an operator.
type Kind uint8

// Operators
const (
	KindInvalid Kind = iota

	// Arithmetic
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindAbs
	KindCeil
	KindFloor
	KindRound

	// Comparison
	KindEqual
	KindNotEqual
	KindLess
	KindLessOrEqual
	KindGreater
	KindGreaterOrEqual

	// Logic and term tests
	KindAnd
	KindOr
	KindNot
	KindIf
	KindCoalesce
	KindIn
	KindNotIn
	KindBound
	KindSameTerm
	KindIsIRI
	KindIsBlank
	KindIsLiteral
	KindIsNumeric

	// Strings
	KindStr
	KindStrLen
	KindConcat
	KindContains
	KindStrStarts
	KindStrEnds
	KindStrBefore
	KindStrAfter
	KindSubstr
	KindUCase
	KindLCase
	KindEncodeForURI
	KindRegex
	KindReplace

	// Hashes
	KindMD5
	KindSHA1
	KindSHA256
	KindSHA384
	KindSHA512

	// Term construction
	KindDatatype
	KindIRI
	KindBNode
	KindUUID
	KindStrUUID
	KindRand

	// Language
	KindLang
	KindLangDir
	KindLangMatches
	KindHasLang
	KindHasLangDir
	KindStrLang
	KindStrLangDir
	KindStrDT

	// Date and time
	KindNow
	KindYear
	KindMonth
	KindDay
	KindHours
	KindMinutes
	KindSeconds
	KindTimezone
	KindTZ

	// GeoSPARQL
	KindGeoBuffer
	KindGeoConvexHull
	KindGeoIsEmpty
	KindGeoEquals
	KindGeoDisjoint
	KindGeoIntersects
	KindGeoOverlaps
	KindGeoContains
	KindGeoWithin
	KindGeoTouches
	KindGeoCrosses

	kindCount
)

type form uint8

const (
	formCall    form = iota // NAME(args)
	formInfix               // (a op b)
	formPrefix              // (op a)
	formIRICall             // <iri>(args)
	formIn                  // (a IN (list))
)

// unbounded marks a variadic maximum argument count.
const unbounded = -1

type kindInfo struct {
	name    string
	symbol  string
	iri     string
	form    form
	minArgs int
	maxArgs int
	// special kinds carry fixed parameters and have their own constructor.
	special bool
}

var kinds = [kindCount]kindInfo{
	KindAdd:            {name: "ADD", symbol: "+", form: formInfix, minArgs: 2, maxArgs: 2},
	KindSubtract:       {name: "SUBTRACT", symbol: "-", form: formInfix, minArgs: 2, maxArgs: 2},
	KindMultiply:       {name: "MULTIPLY", symbol: "*", form: formInfix, minArgs: 2, maxArgs: 2},
	KindDivide:         {name: "DIVIDE", symbol: "/", form: formInfix, minArgs: 2, maxArgs: 2},
	KindAbs:            {name: "ABS", minArgs: 1, maxArgs: 1},
	KindCeil:           {name: "CEIL", minArgs: 1, maxArgs: 1},
	KindFloor:          {name: "FLOOR", minArgs: 1, maxArgs: 1},
	KindRound:          {name: "ROUND", minArgs: 1, maxArgs: 1},
	KindEqual:          {name: "EQUAL", symbol: "=", form: formInfix, minArgs: 2, maxArgs: 2},
	KindNotEqual:       {name: "NOTEQUAL", symbol: "!=", form: formInfix, minArgs: 2, maxArgs: 2},
	KindLess:           {name: "LESS", symbol: "<", form: formInfix, minArgs: 2, maxArgs: 2},
	KindLessOrEqual:    {name: "LESSOREQUAL", symbol: "<=", form: formInfix, minArgs: 2, maxArgs: 2},
	KindGreater:        {name: "GREATER", symbol: ">", form: formInfix, minArgs: 2, maxArgs: 2},
	KindGreaterOrEqual: {name: "GREATEROREQUAL", symbol: ">=", form: formInfix, minArgs: 2, maxArgs: 2},
	KindAnd:            {name: "AND", symbol: "&&", form: formInfix, minArgs: 2, maxArgs: 2},
	KindOr:             {name: "OR", symbol: "||", form: formInfix, minArgs: 2, maxArgs: 2},
	KindNot:            {name: "NOT", symbol: "!", form: formPrefix, minArgs: 1, maxArgs: 1},
	KindIf:             {name: "IF", minArgs: 3, maxArgs: 3},
	KindCoalesce:       {name: "COALESCE", minArgs: 1, maxArgs: unbounded},
	KindIn:             {name: "IN", symbol: "IN", form: formIn, minArgs: 1, maxArgs: 1, special: true},
	KindNotIn:          {name: "NOTIN", symbol: "NOT IN", form: formIn, minArgs: 1, maxArgs: 1, special: true},
	KindBound:          {name: "BOUND", minArgs: 1, maxArgs: 1},
	KindSameTerm:       {name: "sameTerm", minArgs: 2, maxArgs: 2},
	KindIsIRI:          {name: "isIRI", minArgs: 1, maxArgs: 1},
	KindIsBlank:        {name: "isBLANK", minArgs: 1, maxArgs: 1},
	KindIsLiteral:      {name: "isLITERAL", minArgs: 1, maxArgs: 1},
	KindIsNumeric:      {name: "isNUMERIC", minArgs: 1, maxArgs: 1},
	KindStr:            {name: "STR", minArgs: 1, maxArgs: 1},
	KindStrLen:         {name: "STRLEN", minArgs: 1, maxArgs: 1},
	KindConcat:         {name: "CONCAT", minArgs: 1, maxArgs: unbounded},
	KindContains:       {name: "CONTAINS", minArgs: 2, maxArgs: 2},
	KindStrStarts:      {name: "STRSTARTS", minArgs: 2, maxArgs: 2},
	KindStrEnds:        {name: "STRENDS", minArgs: 2, maxArgs: 2},
	KindStrBefore:      {name: "STRBEFORE", minArgs: 2, maxArgs: 2},
	KindStrAfter:       {name: "STRAFTER", minArgs: 2, maxArgs: 2},
	KindSubstr:         {name: "SUBSTR", minArgs: 2, maxArgs: 3},
	KindUCase:          {name: "UCASE", minArgs: 1, maxArgs: 1},
	KindLCase:          {name: "LCASE", minArgs: 1, maxArgs: 1},
	KindEncodeForURI:   {name: "ENCODE_FOR_URI", minArgs: 1, maxArgs: 1},
	KindRegex:          {name: "REGEX", minArgs: 1, maxArgs: 1, special: true},
	KindReplace:        {name: "REPLACE", minArgs: 1, maxArgs: 1, special: true},
	KindMD5:            {name: "MD5", minArgs: 1, maxArgs: 1},
	KindSHA1:           {name: "SHA1", minArgs: 1, maxArgs: 1},
	KindSHA256:         {name: "SHA256", minArgs: 1, maxArgs: 1},
	KindSHA384:         {name: "SHA384", minArgs: 1, maxArgs: 1},
	KindSHA512:         {name: "SHA512", minArgs: 1, maxArgs: 1},
	KindDatatype:       {name: "DATATYPE", minArgs: 1, maxArgs: 1},
	KindIRI:            {name: "IRI", minArgs: 1, maxArgs: 1},
	KindBNode:          {name: "BNODE", minArgs: 0, maxArgs: 1},
	KindUUID:           {name: "UUID"},
	KindStrUUID:        {name: "STRUUID"},
	KindRand:           {name: "RAND"},
	KindLang:           {name: "LANG", minArgs: 1, maxArgs: 1},
	KindLangDir:        {name: "LANGDIR", minArgs: 1, maxArgs: 1},
	KindLangMatches:    {name: "LANGMATCHES", minArgs: 2, maxArgs: 2},
	KindHasLang:        {name: "hasLANG", minArgs: 1, maxArgs: 1},
	KindHasLangDir:     {name: "hasLANGDIR", minArgs: 1, maxArgs: 1},
	KindStrLang:        {name: "STRLANG", minArgs: 2, maxArgs: 2},
	KindStrLangDir:     {name: "STRLANGDIR", minArgs: 3, maxArgs: 3},
	KindStrDT:          {name: "STRDT", minArgs: 2, maxArgs: 2},
	KindNow:            {name: "NOW"},
	KindYear:           {name: "YEAR", minArgs: 1, maxArgs: 1},
	KindMonth:          {name: "MONTH", minArgs: 1, maxArgs: 1},
	KindDay:            {name: "DAY", minArgs: 1, maxArgs: 1},
	KindHours:          {name: "HOURS", minArgs: 1, maxArgs: 1},
	KindMinutes:        {name: "MINUTES", minArgs: 1, maxArgs: 1},
	KindSeconds:        {name: "SECONDS", minArgs: 1, maxArgs: 1},
	KindTimezone:       {name: "TIMEZONE", minArgs: 1, maxArgs: 1},
	KindTZ:             {name: "TZ", minArgs: 1, maxArgs: 1},
	KindGeoBuffer:      {name: "GEO_BUFFER", iri: vocabulary.GEOFBuffer, form: formIRICall, minArgs: 1, maxArgs: 1, special: true},
	KindGeoConvexHull:  {name: "GEO_CONVEXHULL", iri: vocabulary.GEOFConvexHull, form: formIRICall, minArgs: 1, maxArgs: 1},
	KindGeoIsEmpty:     {name: "GEO_ISEMPTY", iri: vocabulary.GEOFIsEmpty, form: formIRICall, minArgs: 1, maxArgs: 1},
	KindGeoEquals:      {name: "GEO_EQUALS", iri: vocabulary.GEOFSfEquals, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoDisjoint:    {name: "GEO_DISJOINT", iri: vocabulary.GEOFSfDisjoint, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoIntersects:  {name: "GEO_INTERSECTS", iri: vocabulary.GEOFSfIntersects, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoOverlaps:    {name: "GEO_OVERLAPS", iri: vocabulary.GEOFSfOverlaps, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoContains:    {name: "GEO_CONTAINS", iri: vocabulary.GEOFSfContains, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoWithin:      {name: "GEO_WITHIN", iri: vocabulary.GEOFSfWithin, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoTouches:     {name: "GEO_TOUCHES", iri: vocabulary.GEOFSfTouches, form: formIRICall, minArgs: 2, maxArgs: 2},
	KindGeoCrosses:     {name: "GEO_CROSSES", iri: vocabulary.GEOFSfCrosses, form: formIRICall, minArgs: 2, maxArgs: 2},
}

// String returns the operator name used in logs and metric labels.
func (k Kind) String() string {
	if k == KindInvalid || k >= kindCount {
		return "INVALID"
	}
	return kinds[k].name
}

// IRI returns the function IRI of IRI-named operators, "" otherwise.
func (k Kind) IRI() string {
	if k >= kindCount {
		return ""
	}
	return kinds[k].iri
}

// Kinds returns every valid operator.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Argument is an operand slot: a Variable, a Constant or a nested
// *Expression.
type Argument interface {
	render(ns *vocabulary.Namespaces) string
	argument()
}

// Variable references a binding row column.
type Variable struct {
	name string
}

// NewVariable creates a variable reference. The name is normalized the way
// binding rows normalize columns: ?a, $a and A all become ?A.
func NewVariable(name string) Variable {
	return Variable{name: binding.NormalizeVariable(name)}
}

// Name returns the normalized variable name including the ? sigil.
func (v Variable) Name() string { return v.name }

func (v Variable) render(*vocabulary.Namespaces) string { return v.name }
func (Variable) argument()                               {}

// String returns the variable name.
func (v Variable) String() string { return v.name }

// Constant wraps a fixed RDF term.
type Constant struct {
	term rdf.Term
}

// NewConstant creates a constant argument.
func NewConstant(term rdf.Term) Constant {
	return Constant{term: term}
}

// Term returns the wrapped term.
func (c Constant) Term() rdf.Term { return c.term }

func (c Constant) render(ns *vocabulary.Namespaces) string { return rdf.Render(c.term, ns) }
func (Constant) argument()                                  {}

// String renders the constant without namespace contraction.
func (c Constant) String() string { return rdf.Render(c.term, nil) }

// Expression is an immutable operator node.
type Expression struct {
	kind Kind
	args []Argument

	// IN and NOT IN candidates
	candidates []Argument

	// REGEX and REPLACE
	pattern     *compiledPattern
	replacement string
	template    string

	// geof:buffer
	distance float64
	uom      string
	metres   float64
}

// Kind returns the operator.
func (x *Expression) Kind() Kind { return x.kind }

// Args returns a copy of the operands.
func (x *Expression) Args() []Argument {
	return append([]Argument(nil), x.args...)
}

// Candidates returns a copy of the IN / NOT IN candidate list.
func (x *Expression) Candidates() []Argument {
	return append([]Argument(nil), x.candidates...)
}

func (*Expression) argument() {}

// Variables returns the sorted, distinct variables the expression reads.
func (x *Expression) Variables() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(a Argument)
	walk = func(a Argument) {
		switch v := a.(type) {
		case Variable:
			if !seen[v.name] {
				seen[v.name] = true
				out = append(out, v.name)
			}
		case *Expression:
			for _, arg := range v.args {
				walk(arg)
			}
			for _, c := range v.candidates {
				walk(c)
			}
		}
	}
	walk(x)
	sort.Strings(out)
	return out
}
