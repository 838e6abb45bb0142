package expression

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func (e *Evaluator) registerTerms() {
	e.operators[KindDatatype] = e.datatype
	e.operators[KindIRI] = e.iri
	e.operators[KindBNode] = e.bnode
	e.operators[KindUUID] = func(*Expression, binding.Row) (rdf.Term, bool) {
		return rdf.NewResource("urn:uuid:" + uuid.NewString()), true
	}
	e.operators[KindStrUUID] = func(*Expression, binding.Row) (rdf.Term, bool) {
		return rdf.NewPlainLiteral(uuid.NewString()), true
	}
	e.operators[KindRand] = e.rand
}

func (e *Evaluator) datatype(x *Expression, row binding.Row) (rdf.Term, bool) {
	t, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	switch v := t.(type) {
	case rdf.TypedLiteral:
		return rdf.NewResource(v.Datatype()), true
	case rdf.PlainLiteral:
		switch {
		case v.HasDirection():
			return rdf.NewResource(vocabulary.RDFDirLangString), true
		case v.HasLanguage():
			return rdf.NewResource(vocabulary.RDFLangString), true
		default:
			return rdf.NewResource(vocabulary.XSDString), true
		}
	default:
		return nil, false
	}
}

// iri accepts an IRI or a simple literal holding an absolute IRI.
func (e *Evaluator) iri(x *Expression, row binding.Row) (rdf.Term, bool) {
	t, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	if r, ok := t.(rdf.Resource); ok {
		if r.IsBlank() {
			return nil, false
		}
		return r, true
	}
	if !rdf.IsSimpleLiteral(t) {
		return nil, false
	}
	text := strings.TrimSpace(rdf.StringValue(t))
	if !rdf.IsAbsoluteIRI(text) {
		return nil, false
	}
	return rdf.NewResource(text), true
}

// bnode returns a fresh blank node, or with an argument a blank node whose
// label is derived from the argument's text so equal text gives equal nodes.
// Rows carry no solution identity, so the label is scoped to the text alone:
// the same text on two rows gives the same node. Callers that need per-row
// nodes should concatenate a row key into the argument.
func (e *Evaluator) bnode(x *Expression, row binding.Row) (rdf.Term, bool) {
	if len(x.args) == 0 {
		return rdf.NewAnonymous(), true
	}
	t, ok := e.value(x.args[0], row)
	if !ok || !rdf.IsSimpleLiteral(t) {
		return nil, false
	}
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(rdf.StringValue(t)))
	return rdf.NewBlankNode(strings.ReplaceAll(id.String(), "-", "")), true
}

func (e *Evaluator) rand(*Expression, binding.Row) (rdf.Term, bool) {
	return rdf.NewDecimalLiteral(decimal.NewFromFloat(e.random.Float64())), true
}
