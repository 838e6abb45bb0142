// Package geometry bridges GeoSPARQL literals to the geometry libraries.
//
// An Engine parses wktLiteral and gmlLiteral lexical forms into Geometry
// values, answers the simple-features predicates over them, and computes
// geodesic buffers and convex hulls whose results are serialized back to
// WKT. Coordinates are read as longitude/latitude in CRS84.
//
// Parsed geometries are kept in an LRU cache keyed by datatype and lexical
// form, so a literal repeated across binding rows is parsed once.
//
//	engine, err := geometry.NewEngine(geometry.WithSegments(32))
//	if err != nil {
//		return err
//	}
//	g, err := engine.Parse(rdf.NewTypedLiteral("POINT(9.18854 45.464664)", vocabulary.GEOWktLiteral))
//	if err != nil {
//		return err
//	}
//	area, err := engine.Buffer(g, 150)
package geometry
