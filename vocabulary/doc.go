// Package vocabulary provides the IRIs the expression engine recognises and
// the prefix tables used to expand and contract them.
//
// # Standard IRIs
//
// standards.go declares the namespace base IRIs (xsd, rdf, rdfs, owl, geo,
// geof, uom, sf) and one constant per datatype, function and unit the
// engine knows about:
//
//	vocabulary.XSDInteger    // http://www.w3.org/2001/XMLSchema#integer
//	vocabulary.GEOWktLiteral // http://www.opengis.net/ont/geosparql#wktLiteral
//	vocabulary.GEOFBuffer    // http://www.opengis.net/def/function/geosparql/buffer
//
// Code compares IRIs against these constants instead of repeating strings.
//
// # Namespaces
//
// A Namespaces value is an immutable, ordered list of prefix bindings. It
// expands prefixed names while parsing and contracts IRIs while rendering,
// picking the longest matching namespace:
//
//	ns := vocabulary.DefaultNamespaces().With(
//	    vocabulary.Namespace{Prefix: "ex", URI: "http://example.org/"},
//	)
//	iri, ok := ns.Expand("ex:item")        // "http://example.org/item", true
//	name, ok := ns.Contract(vocabulary.XSDInteger) // "xsd:integer", true
//
// With returns a new table, so a shared default is never modified. A nil
// *Namespaces is valid and contracts nothing, which makes every IRI render
// in full.
package vocabulary
