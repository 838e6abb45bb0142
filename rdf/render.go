package rdf

import (
	"strings"

	"github.com/c360/semsparql/vocabulary"
)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a SPARQL string literal.
func Quote(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

// RenderIRI renders an IRI as prefix:local when ns contracts it, <iri> otherwise.
func RenderIRI(iri string, ns *vocabulary.Namespaces) string {
	if qname, ok := ns.Contract(iri); ok {
		return qname
	}
	return "<" + iri + ">"
}

// Render returns the SPARQL textual form of a term. IRIs (including
// datatype IRIs) are contracted against ns when possible.
func Render(t Term, ns *vocabulary.Namespaces) string {
	switch v := t.(type) {
	case Resource:
		if v.IsBlank() {
			return "_:" + v.BlankID()
		}
		return RenderIRI(v.iri, ns)
	case PlainLiteral:
		out := Quote(v.text)
		if v.language != "" {
			out += "@" + v.language
			if v.direction != DirectionNone {
				out += "--" + v.direction.String()
			}
		}
		return out
	case TypedLiteral:
		return Quote(v.text) + "^^" + RenderIRI(v.datatype, ns)
	default:
		return ""
	}
}
