package expression

import (
	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/geometry"
	"github.com/c360/semsparql/rdf"
)

func (e *Evaluator) registerGeo() {
	e.operators[KindGeoBuffer] = e.buffer
	e.operators[KindGeoConvexHull] = e.convexHull
	e.operators[KindGeoIsEmpty] = e.isEmpty

	predicates := map[Kind]geometry.Predicate{
		KindGeoEquals:     geometry.PredicateEquals,
		KindGeoDisjoint:   geometry.PredicateDisjoint,
		KindGeoIntersects: geometry.PredicateIntersects,
		KindGeoOverlaps:   geometry.PredicateOverlaps,
		KindGeoContains:   geometry.PredicateContains,
		KindGeoWithin:     geometry.PredicateWithin,
		KindGeoTouches:    geometry.PredicateTouches,
		KindGeoCrosses:    geometry.PredicateCrosses,
	}
	for kind, p := range predicates {
		e.operators[kind] = e.relate(p)
	}
}

// geometryArg parses an operand holding a WKT or GML literal.
func (e *Evaluator) geometryArg(a Argument, row binding.Row) (geometry.Geometry, bool) {
	t, ok := e.value(a, row)
	if !ok || !geometry.IsGeometryLiteral(t) {
		return geometry.Geometry{}, false
	}
	g, err := e.geometry.Parse(t.(rdf.TypedLiteral))
	if err != nil {
		return geometry.Geometry{}, false
	}
	return g, true
}

func (e *Evaluator) buffer(x *Expression, row binding.Row) (rdf.Term, bool) {
	g, ok := e.geometryArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	buffered, err := e.geometry.Buffer(g, x.metres)
	if err != nil {
		e.logger.Debug("buffer failed", "expression", x.String(), "error", err)
		return nil, false
	}
	return buffered.Literal(), true
}

func (e *Evaluator) convexHull(x *Expression, row binding.Row) (rdf.Term, bool) {
	g, ok := e.geometryArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	return e.geometry.ConvexHull(g).Literal(), true
}

func (e *Evaluator) isEmpty(x *Expression, row binding.Row) (rdf.Term, bool) {
	g, ok := e.geometryArg(x.args[0], row)
	if !ok {
		return nil, false
	}
	return boolean(g.IsEmpty())
}

func (e *Evaluator) relate(p geometry.Predicate) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		a, ok := e.geometryArg(x.args[0], row)
		if !ok {
			return nil, false
		}
		b, ok := e.geometryArg(x.args[1], row)
		if !ok {
			return nil, false
		}
		holds, err := e.geometry.Relate(p, a, b)
		if err != nil {
			return nil, false
		}
		return boolean(holds)
	}
}
