package expression

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func wkt(text string) Constant { return typedLit(text, vocabulary.GEOWktLiteral) }

func TestEvaluator_Buffer(t *testing.T) {
	e := newTestEvaluator(t)
	buffered := Must(NewBuffer(point, 150, vocabulary.UOMMetre))

	got, ok := e.Evaluate(buffered, nil)
	require.True(t, ok)
	lit, isTyped := got.(rdf.TypedLiteral)
	require.True(t, isTyped)
	assert.Equal(t, vocabulary.GEOWktLiteral, lit.Datatype())
	assert.True(t, strings.HasPrefix(lit.Text(), "POLYGON"), lit.Text())

	contains := Must(New(KindGeoContains, buffered, point))
	runCases(t, e, []evalCase{
		{"buffer_contains_centre", contains, nil, rdf.True},
		{"buffer_kilometres", Must(New(KindGeoContains, Must(NewBuffer(point, 1, vocabulary.UOMKilometre)), buffered)), nil, rdf.True},
		{"buffer_empty", Must(New(KindGeoIsEmpty, Must(NewBuffer(wkt("POINT EMPTY"), 10, vocabulary.UOMMetre)))), nil, rdf.True},
		{"buffer_not_geometry", Must(NewBuffer(hello, 10, vocabulary.UOMMetre)), nil, nil},
		{"buffer_malformed", Must(NewBuffer(wkt("POINT(1"), 10, vocabulary.UOMMetre)), nil, nil},
	})
}

func TestEvaluator_ConvexHullAndIsEmpty(t *testing.T) {
	e := newTestEvaluator(t)
	square := wkt("POLYGON((0 0,2 0,2 2,0 2,0 0))")
	hull := Must(New(KindGeoConvexHull, wkt("MULTIPOINT((0 0),(2 0),(1 1),(2 2),(0 2))")))

	runCases(t, e, []evalCase{
		{"hull_equals_square", Must(New(KindGeoEquals, hull, square)), nil, rdf.True},
		{"is_empty", Must(New(KindGeoIsEmpty, wkt("POLYGON EMPTY"))), nil, rdf.True},
		{"is_not_empty", Must(New(KindGeoIsEmpty, square)), nil, rdf.False},
		{"is_empty_plain_literal", Must(New(KindGeoIsEmpty, plainLit("POINT(1 2)"))), nil, nil},
	})
}

func TestEvaluator_TopologicalPredicates(t *testing.T) {
	e := newTestEvaluator(t)
	square := wkt("POLYGON((0 0,2 0,2 2,0 2,0 0))")
	gmlSquare := typedLit(`<gml:Polygon xmlns:gml="http://www.opengis.net/gml/3.2"><gml:exterior><gml:LinearRing>`+
		`<gml:posList>0 0 2 0 2 2 0 2 0 0</gml:posList></gml:LinearRing></gml:exterior></gml:Polygon>`, vocabulary.GEOGmlLiteral)
	inside := wkt("POINT(1 1)")
	line := wkt("LINESTRING(-1 1,3 1)")

	runCases(t, e, []evalCase{
		{"equals_gml_and_wkt", Must(New(KindGeoEquals, square, gmlSquare)), nil, rdf.True},
		{"equals_crs_prefix", Must(New(KindGeoEquals, square, wkt("<http://www.opengis.net/def/crs/OGC/1.3/CRS84> POLYGON((0 0,2 0,2 2,0 2,0 0))"))), nil, rdf.True},
		{"disjoint", Must(New(KindGeoDisjoint, square, wkt("POINT(5 5)"))), nil, rdf.True},
		{"intersects", Must(New(KindGeoIntersects, square, inside)), nil, rdf.True},
		{"overlaps", Must(New(KindGeoOverlaps, square, wkt("POLYGON((1 1,3 1,3 3,1 3,1 1))"))), nil, rdf.True},
		{"contains", Must(New(KindGeoContains, square, inside)), nil, rdf.True},
		{"within", Must(New(KindGeoWithin, inside, gmlSquare)), nil, rdf.True},
		{"touches", Must(New(KindGeoTouches, square, wkt("POLYGON((2 0,4 0,4 2,2 2,2 0))"))), nil, rdf.True},
		{"crosses", Must(New(KindGeoCrosses, line, square)), nil, rdf.True},
		{"not_within", Must(New(KindGeoWithin, square, inside)), nil, rdf.False},
		{"malformed_operand", Must(New(KindGeoIntersects, square, wkt("POLYGON((0 0,1 1)"))), nil, nil},
		{"non_geometry_operand", Must(New(KindGeoContains, square, twentyFive)), nil, nil},
		{"absent_operand", Must(New(KindGeoContains, square, varA)), nil, nil},
	})
}
