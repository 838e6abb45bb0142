package expression

import (
	"strings"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// String renders the expression with every IRI in full.
func (x *Expression) String() string {
	return x.render(nil)
}

// Render renders the expression, contracting the IRIs ns knows.
func (x *Expression) Render(ns *vocabulary.Namespaces) string {
	return x.render(ns)
}

func (x *Expression) render(ns *vocabulary.Namespaces) string {
	info := kinds[x.kind]
	var b strings.Builder
	b.WriteByte('(')

	switch info.form {
	case formInfix:
		b.WriteString(x.args[0].render(ns))
		b.WriteString(" " + info.symbol + " ")
		b.WriteString(x.args[1].render(ns))
	case formPrefix:
		b.WriteString(info.symbol)
		b.WriteString(x.args[0].render(ns))
	case formIn:
		b.WriteString(x.args[0].render(ns))
		b.WriteString(" " + info.symbol + " (")
		writeArgs(&b, x.candidates, ns)
		b.WriteByte(')')
	case formIRICall:
		b.WriteString(rdf.RenderIRI(info.iri, ns))
		b.WriteByte('(')
		writeArgs(&b, x.args, ns)
		if x.kind == KindGeoBuffer {
			b.WriteString(", ")
			b.WriteString(rdf.Render(rdf.NewDoubleLiteral(x.distance), ns))
			b.WriteString(", ")
			b.WriteString(rdf.RenderIRI(x.uom, ns))
		}
		b.WriteByte(')')
	default:
		b.WriteString(info.name)
		b.WriteByte('(')
		writeArgs(&b, x.args, ns)
		switch x.kind {
		case KindRegex:
			b.WriteString(", " + rdf.Quote(x.pattern.source))
			if x.pattern.flags != "" {
				b.WriteString(", " + rdf.Quote(x.pattern.flags))
			}
		case KindReplace:
			b.WriteString(", " + rdf.Quote(x.pattern.source))
			b.WriteString(", " + rdf.Quote(x.replacement))
			if x.pattern.flags != "" {
				b.WriteString(", " + rdf.Quote(x.pattern.flags))
			}
		}
		b.WriteByte(')')
	}

	b.WriteByte(')')
	return b.String()
}

func writeArgs(b *strings.Builder, args []Argument, ns *vocabulary.Namespaces) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.render(ns))
	}
}
