// Package rdf provides the RDF term model used by the expression engine:
// resources (IRIs and blank nodes), plain literals carrying an optional
// language tag and base direction, and typed literals, together with the
// datatype registry that classifies typed literals.
package rdf

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the variant of a Term.
type Kind uint8

const (
	// KindResource is an IRI or a blank node.
	KindResource Kind = iota + 1
	// KindPlainLiteral is a literal with optional language tag and direction.
	KindPlainLiteral
	// KindTypedLiteral is a literal with a datatype IRI.
	KindTypedLiteral
)

// String returns the name of the term kind.
func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindPlainLiteral:
		return "plain-literal"
	case KindTypedLiteral:
		return "typed-literal"
	default:
		return "unknown"
	}
}

// Term is an immutable RDF term. String returns the serialized form used in
// binding rows, which Parse reads back.
type Term interface {
	Kind() Kind
	String() string
	Equal(other Term) bool
}

// BlankPrefix is the reserved scheme distinguishing blank nodes from IRIs.
const BlankPrefix = "bnode:"

// Resource is an IRI or, when its IRI carries BlankPrefix, a blank node.
type Resource struct {
	iri string
}

// NewResource creates a resource for the given IRI.
func NewResource(iri string) Resource {
	return Resource{iri: iri}
}

// NewBlankNode creates a blank node with the given identifier.
func NewBlankNode(id string) Resource {
	return Resource{iri: BlankPrefix + id}
}

// NewAnonymous creates a blank node with a fresh random identifier.
func NewAnonymous() Resource {
	return NewBlankNode(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Kind returns KindResource.
func (r Resource) Kind() Kind { return KindResource }

// IRI returns the resource IRI (including BlankPrefix for blank nodes).
func (r Resource) IRI() string { return r.iri }

// IsBlank reports whether the resource is a blank node.
func (r Resource) IsBlank() bool { return strings.HasPrefix(r.iri, BlankPrefix) }

// BlankID returns the blank node identifier, or "" for IRIs.
func (r Resource) BlankID() string {
	if !r.IsBlank() {
		return ""
	}
	return r.iri[len(BlankPrefix):]
}

// String returns the IRI.
func (r Resource) String() string { return r.iri }

// Equal compares resources by exact IRI.
func (r Resource) Equal(other Term) bool {
	o, ok := other.(Resource)
	return ok && o.iri == r.iri
}

// Direction is the base direction of a plain literal.
type Direction uint8

const (
	// DirectionNone means the literal has no base direction.
	DirectionNone Direction = iota
	// DirectionLTR is left-to-right.
	DirectionLTR
	// DirectionRTL is right-to-left.
	DirectionRTL
)

// String returns "ltr", "rtl" or "".
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	default:
		return ""
	}
}

// ParseDirection reads "ltr" or "rtl" case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "ltr":
		return DirectionLTR, true
	case "rtl":
		return DirectionRTL, true
	default:
		return DirectionNone, false
	}
}

// PlainLiteral is a literal without datatype, optionally language-tagged.
type PlainLiteral struct {
	text      string
	language  string
	direction Direction
}

// NewPlainLiteral creates a literal without language tag.
func NewPlainLiteral(text string) PlainLiteral {
	return PlainLiteral{text: text}
}

// NewLangLiteral creates a language-tagged literal. The tag case is preserved.
func NewLangLiteral(text, language string) PlainLiteral {
	return PlainLiteral{text: text, language: language}
}

// NewDirLangLiteral creates a language-tagged literal with a base direction.
// A direction without a language tag is dropped.
func NewDirLangLiteral(text, language string, direction Direction) PlainLiteral {
	if language == "" {
		direction = DirectionNone
	}
	return PlainLiteral{text: text, language: language, direction: direction}
}

// Kind returns KindPlainLiteral.
func (l PlainLiteral) Kind() Kind { return KindPlainLiteral }

// Text returns the literal text.
func (l PlainLiteral) Text() string { return l.text }

// Language returns the language tag, or "".
func (l PlainLiteral) Language() string { return l.language }

// Direction returns the base direction.
func (l PlainLiteral) Direction() Direction { return l.direction }

// HasLanguage reports whether the literal is language-tagged.
func (l PlainLiteral) HasLanguage() bool { return l.language != "" }

// HasDirection reports whether the literal carries a base direction.
func (l PlainLiteral) HasDirection() bool { return l.direction != DirectionNone }

// String returns text, text@lang or text@lang--dir.
func (l PlainLiteral) String() string {
	if l.language == "" {
		return l.text
	}
	if l.direction != DirectionNone {
		return l.text + "@" + l.language + "--" + l.direction.String()
	}
	return l.text + "@" + l.language
}

// Equal compares text exactly and language tags case-insensitively.
func (l PlainLiteral) Equal(other Term) bool {
	o, ok := other.(PlainLiteral)
	return ok &&
		o.text == l.text &&
		strings.EqualFold(o.language, l.language) &&
		o.direction == l.direction
}

// TypedLiteral is a lexical form paired with a datatype IRI. The lexical
// form is not validated at construction; see IsWellFormed.
type TypedLiteral struct {
	text     string
	datatype string
}

// NewTypedLiteral creates a typed literal.
func NewTypedLiteral(text, datatype string) TypedLiteral {
	return TypedLiteral{text: text, datatype: datatype}
}

// Kind returns KindTypedLiteral.
func (l TypedLiteral) Kind() Kind { return KindTypedLiteral }

// Text returns the lexical form.
func (l TypedLiteral) Text() string { return l.text }

// Datatype returns the datatype IRI.
func (l TypedLiteral) Datatype() string { return l.datatype }

// Category returns the registry category of the datatype.
func (l TypedLiteral) Category() Category { return CategoryOf(l.datatype) }

// String returns text^^datatype.
func (l TypedLiteral) String() string { return l.text + "^^" + l.datatype }

// Equal compares lexical form and datatype IRI exactly.
func (l TypedLiteral) Equal(other Term) bool {
	o, ok := other.(TypedLiteral)
	return ok && o.text == l.text && o.datatype == l.datatype
}

var (
	absoluteIRIPattern = regexp.MustCompile("^[A-Za-z][A-Za-z0-9+.-]*:[^\\s<>\"{}|\\\\^`]*$")
	langSuffixPattern  = regexp.MustCompile(`@([a-zA-Z]{1,8}(?:-[a-zA-Z0-9]{1,8})*)(?:--((?i:ltr|rtl)))?$`)
)

// IsAbsoluteIRI reports whether s looks like an absolute IRI (scheme:rest).
func IsAbsoluteIRI(s string) bool {
	return absoluteIRIPattern.MatchString(s)
}

// Parse reads the serialized form of a term, as produced by Term.String.
// Blank nodes may also be given as _:id. Anything that is neither an IRI,
// a typed literal nor a language-tagged literal is a plain literal.
func Parse(s string) Term {
	if strings.HasPrefix(s, "_:") && len(s) > 2 {
		return NewBlankNode(s[2:])
	}
	if strings.HasPrefix(s, BlankPrefix) {
		return NewResource(s)
	}
	if IsAbsoluteIRI(s) {
		return NewResource(s)
	}
	if i := strings.LastIndex(s, "^^"); i >= 0 {
		datatype := s[i+2:]
		if strings.HasPrefix(datatype, "<") && strings.HasSuffix(datatype, ">") {
			datatype = datatype[1 : len(datatype)-1]
		}
		if IsAbsoluteIRI(datatype) {
			return NewTypedLiteral(s[:i], datatype)
		}
	}
	if m := langSuffixPattern.FindStringSubmatchIndex(s); m != nil {
		text := s[:m[0]]
		language := s[m[2]:m[3]]
		if m[4] >= 0 {
			direction, _ := ParseDirection(s[m[4]:m[5]])
			return NewDirLangLiteral(text, language, direction)
		}
		return NewLangLiteral(text, language)
	}
	return NewPlainLiteral(s)
}

// IsSimpleLiteral reports whether t is a plain literal without language or
// an xsd:string typed literal.
func IsSimpleLiteral(t Term) bool {
	switch v := t.(type) {
	case PlainLiteral:
		return !v.HasLanguage()
	case TypedLiteral:
		return v.datatype == xsdString
	default:
		return false
	}
}

// IsLiteral reports whether t is a plain or typed literal.
func IsLiteral(t Term) bool {
	if t == nil {
		return false
	}
	k := t.Kind()
	return k == KindPlainLiteral || k == KindTypedLiteral
}

// StringValue returns the STR() projection of a term: the IRI of a resource
// or the text of a literal, ignoring language and datatype.
func StringValue(t Term) string {
	switch v := t.(type) {
	case Resource:
		return v.iri
	case PlainLiteral:
		return v.text
	case TypedLiteral:
		return v.text
	default:
		return ""
	}
}
