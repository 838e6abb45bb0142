package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaces_Contract(t *testing.T) {
	ns := DefaultNamespaces().With(Namespace{Prefix: "ex", URI: "http://example.org/"})

	tests := []struct {
		name     string
		iri      string
		expected string
		ok       bool
	}{
		{"xsd integer", XSDInteger, "xsd:integer", true},
		{"geof buffer", GEOFBuffer, "geof:buffer", true},
		{"custom namespace", "http://example.org/thing", "ex:thing", true},
		{"unknown namespace", "http://unknown.org/thing", "", false},
		{"namespace itself", "http://example.org/", "", false},
		{"local with slash", "http://example.org/a/b", "", false},
		{"local ending with dot", "http://example.org/a.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ns.Contract(tt.iri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNamespaces_LongestMatchWins(t *testing.T) {
	ns := NewNamespaces(
		Namespace{Prefix: "ex", URI: "http://example.org/"},
		Namespace{Prefix: "exv", URI: "http://example.org/vocab#"},
	)

	got, ok := ns.Contract("http://example.org/vocab#name")
	require.True(t, ok)
	assert.Equal(t, "exv:name", got)
}

func TestNamespaces_NilContractsNothing(t *testing.T) {
	var ns *Namespaces
	_, ok := ns.Contract(XSDString)
	assert.False(t, ok)
	assert.Equal(t, 0, ns.Len())
	assert.Nil(t, ns.List())
}

func TestNamespaces_Expand(t *testing.T) {
	ns := DefaultNamespaces()

	iri, ok := ns.Expand("xsd:double")
	require.True(t, ok)
	assert.Equal(t, XSDDouble, iri)

	_, ok = ns.Expand("nope:double")
	assert.False(t, ok)

	_, ok = ns.Expand("double")
	assert.False(t, ok)
}

func TestNamespaces_WithReplacesPrefix(t *testing.T) {
	base := NewNamespaces(Namespace{Prefix: "ex", URI: "http://example.org/"})
	replaced := base.With(Namespace{Prefix: "ex", URI: "http://example.com/"})

	uri, _ := base.Lookup("ex")
	assert.Equal(t, "http://example.org/", uri, "original table must not change")

	uri, _ = replaced.Lookup("ex")
	assert.Equal(t, "http://example.com/", uri)
	assert.Equal(t, 1, replaced.Len())
}

func TestNamespace_Validate(t *testing.T) {
	assert.NoError(t, Namespace{Prefix: "ex", URI: "http://example.org/"}.Validate())
	assert.Error(t, Namespace{Prefix: "1ex", URI: "http://example.org/"}.Validate())
	assert.Error(t, Namespace{Prefix: "ex", URI: ""}.Validate())
	assert.Error(t, Namespace{Prefix: "ex", URI: "http://exa mple.org/"}.Validate())
	assert.Equal(t, "PREFIX ex: <http://example.org/>", Namespace{Prefix: "ex", URI: "http://example.org/"}.String())
}
