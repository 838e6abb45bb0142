package expression

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func TestEvaluator_Datatype(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []evalCase{
		{"typed", Must(New(KindDatatype, twentyFive)), nil, rdf.NewResource(vocabulary.XSDInt)},
		{"simple", Must(New(KindDatatype, hello)), nil, rdf.NewResource(vocabulary.XSDString)},
		{"tagged", Must(New(KindDatatype, helloEN)), nil, rdf.NewResource(vocabulary.RDFLangString)},
		{"directional", Must(New(KindDatatype, NewConstant(rdf.NewDirLangLiteral("x", "ar", rdf.DirectionRTL)))), nil, rdf.NewResource(vocabulary.RDFDirLangString)},
		{"null", Must(New(KindDatatype, varA)), row(nil, "?A"), rdf.NewResource(vocabulary.XSDString)},
		{"iri", Must(New(KindDatatype, item)), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_IRI(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []evalCase{
		{"from_iri", Must(New(KindIRI, item)), nil, rdf.NewResource("http://example.org/item")},
		{"from_simple_literal", Must(New(KindIRI, plainLit("http://example.org/x"))), nil, rdf.NewResource("http://example.org/x")},
		{"from_xsd_string", Must(New(KindIRI, stringLit("urn:isbn:0451450523"))), nil, rdf.NewResource("urn:isbn:0451450523")},
		{"relative", Must(New(KindIRI, plainLit("x/y"))), nil, nil},
		{"tagged", Must(New(KindIRI, langLit("http://example.org/x", "en"))), nil, nil},
		{"blank_node", Must(New(KindIRI, NewConstant(rdf.NewBlankNode("b1")))), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_BNode(t *testing.T) {
	e := newTestEvaluator(t)
	labelled := Must(New(KindBNode, varA))
	r := row(map[string]string{"?A": "label"})

	first, ok := e.Evaluate(labelled, r)
	require.True(t, ok)
	second, ok := e.Evaluate(labelled, r)
	require.True(t, ok)
	assert.True(t, first.(rdf.Resource).IsBlank())
	assert.True(t, first.Equal(second), "the same label must give the same blank node")

	elsewhere, ok := e.Evaluate(labelled, row(map[string]string{"?A": "label", "?B": "x"}))
	require.True(t, ok)
	assert.True(t, first.Equal(elsewhere), "labels are scoped to the text, not the row")

	other, ok := e.Evaluate(labelled, row(map[string]string{"?A": "other"}))
	require.True(t, ok)
	assert.False(t, first.Equal(other))

	fresh := Must(New(KindBNode))
	a, ok := e.Evaluate(fresh, nil)
	require.True(t, ok)
	b, ok := e.Evaluate(fresh, nil)
	require.True(t, ok)
	assert.False(t, a.Equal(b))

	_, ok = e.Evaluate(Must(New(KindBNode, twentyFive)), nil)
	assert.False(t, ok)
}

func TestEvaluator_UUID(t *testing.T) {
	e := newTestEvaluator(t)
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	u, ok := e.Evaluate(Must(New(KindUUID)), nil)
	require.True(t, ok)
	r, isResource := u.(rdf.Resource)
	require.True(t, isResource)
	assert.Regexp(t, `^urn:uuid:`, r.IRI())
	assert.Regexp(t, pattern, r.IRI()[len("urn:uuid:"):])

	s, ok := e.Evaluate(Must(New(KindStrUUID)), nil)
	require.True(t, ok)
	assert.True(t, rdf.IsSimpleLiteral(s))
	assert.Regexp(t, pattern, rdf.StringValue(s))

	again, ok := e.Evaluate(Must(New(KindStrUUID)), nil)
	require.True(t, ok)
	assert.False(t, s.Equal(again))
}
