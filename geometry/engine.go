package geometry

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/metric"
	"github.com/c360/semsparql/pkg/cache"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// EPSG4326 is accepted as a CRS prefix alongside CRS84. Its coordinates are
// still read longitude first.
const EPSG4326 = "http://www.opengis.net/def/crs/EPSG/0/4326"

// Geometry is a parsed geometry literal.
type Geometry struct {
	feature geom.Geometry
	// shape is the same geometry as an orb value; nil when orb cannot
	// represent it, which only rules out buffering.
	shape orb.Geometry
}

// WKT returns the canonical WKT serialization.
func (g Geometry) WKT() string { return g.feature.AsText() }

// IsEmpty reports whether the geometry has no points.
func (g Geometry) IsEmpty() bool { return g.feature.IsEmpty() }

// Dimension returns 0 for points, 1 for curves and 2 for surfaces.
func (g Geometry) Dimension() int { return g.feature.Dimension() }

// Literal returns the geometry as a geo:wktLiteral.
func (g Geometry) Literal() rdf.TypedLiteral {
	return rdf.NewTypedLiteral(g.WKT(), vocabulary.GEOWktLiteral)
}

// Predicate is a simple-features topological relation.
type Predicate uint8

// Supported predicates
const (
	PredicateEquals Predicate = iota + 1
	PredicateDisjoint
	PredicateIntersects
	PredicateOverlaps
	PredicateContains
	PredicateWithin
	PredicateTouches
	PredicateCrosses
)

// String returns the GeoSPARQL local name of the predicate.
func (p Predicate) String() string {
	switch p {
	case PredicateEquals:
		return "sfEquals"
	case PredicateDisjoint:
		return "sfDisjoint"
	case PredicateIntersects:
		return "sfIntersects"
	case PredicateOverlaps:
		return "sfOverlaps"
	case PredicateContains:
		return "sfContains"
	case PredicateWithin:
		return "sfWithin"
	case PredicateTouches:
		return "sfTouches"
	case PredicateCrosses:
		return "sfCrosses"
	default:
		return "unknown"
	}
}

// Engine parses geometry literals and runs geometry operations.
// It is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	segments    int
	cacheConfig cache.Config
	cache       cache.Cache[Geometry]
	registry    *metric.MetricsRegistry
	metrics     *metric.Metrics
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      slog.Default(),
		segments:    DefaultSegments,
		cacheConfig: cache.DefaultConfig(DefaultCacheSize),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	var cacheOpts []cache.Option[Geometry]
	if e.registry != nil {
		e.metrics = e.registry.CoreMetrics()
		cacheOpts = append(cacheOpts, cache.WithMetrics[Geometry](e.registry, "geometry"))
	}
	c, err := cache.NewFromConfig[Geometry](e.cacheConfig, cacheOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "geometry", "NewEngine", "parse cache creation")
	}
	e.cache = c
	return e, nil
}

// Segments returns the circle resolution used by Buffer.
func (e *Engine) Segments() int { return e.segments }

// CacheStats returns the parse cache statistics, nil when caching is off.
func (e *Engine) CacheStats() *cache.Statistics { return e.cache.Stats() }

// IsGeometryLiteral reports whether t is a wktLiteral or gmlLiteral.
func IsGeometryLiteral(t rdf.Term) bool {
	lit, ok := t.(rdf.TypedLiteral)
	if !ok {
		return false
	}
	switch lit.Datatype() {
	case vocabulary.GEOWktLiteral, vocabulary.GEOGmlLiteral:
		return true
	default:
		return false
	}
}

// Parse reads a wktLiteral or gmlLiteral.
func (e *Engine) Parse(lit rdf.TypedLiteral) (Geometry, error) {
	key := lit.Datatype() + "\x00" + lit.Text()
	g, err := cache.GetOrCreate(e.cache, key, func() (Geometry, error) {
		return parseLiteral(lit)
	})
	e.record("parse", err == nil)
	if err != nil {
		e.logger.Debug("geometry literal rejected", "datatype", lit.Datatype(), "error", err)
	}
	return g, err
}

func parseLiteral(lit rdf.TypedLiteral) (Geometry, error) {
	switch lit.Datatype() {
	case vocabulary.GEOWktLiteral:
		return parseWKT(lit.Text())
	case vocabulary.GEOGmlLiteral:
		return parseGML(lit.Text())
	default:
		return Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s is not a geometry datatype", errors.ErrUnsupported, lit.Datatype()),
			"geometry", "Parse", "datatype check")
	}
}

func parseWKT(text string) (Geometry, error) {
	body, err := stripCRS(text)
	if err != nil {
		return Geometry{}, err
	}
	feature, err := geom.UnmarshalWKT(body)
	if err != nil {
		return Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidData, err), "geometry", "Parse", "WKT decode")
	}
	g := Geometry{feature: feature}
	if !feature.IsEmpty() {
		if shape, err := wkt.Unmarshal(feature.AsText()); err == nil {
			g.shape = shape
		}
	}
	return g, nil
}

func parseGML(text string) (Geometry, error) {
	shape, err := decodeGML(text)
	if err != nil {
		return Geometry{}, err
	}
	feature, err := geom.UnmarshalWKT(wkt.MarshalString(shape))
	if err != nil {
		return Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidData, err), "geometry", "Parse", "GML geometry build")
	}
	return Geometry{feature: feature, shape: shape}, nil
}

// stripCRS removes a leading <crs-iri> from a WKT lexical form.
func stripCRS(text string) (string, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "<") {
		return text, nil
	}
	end := strings.IndexByte(text, '>')
	if end < 0 {
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: unterminated CRS IRI", errors.ErrInvalidData), "geometry", "Parse", "CRS prefix")
	}
	switch crs := text[1:end]; crs {
	case vocabulary.CRS84, EPSG4326:
	default:
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: coordinate reference system %s", errors.ErrUnsupported, crs),
			"geometry", "Parse", "CRS prefix")
	}
	return strings.TrimSpace(text[end+1:]), nil
}

// ConvexHull returns the smallest convex geometry containing g.
func (e *Engine) ConvexHull(g Geometry) Geometry {
	hull := g.feature.ConvexHull()
	e.record("convex_hull", true)
	out := Geometry{feature: hull}
	if !hull.IsEmpty() {
		if shape, err := wkt.Unmarshal(hull.AsText()); err == nil {
			out.shape = shape
		}
	}
	return out
}

// Relate evaluates a topological predicate between a and b.
func (e *Engine) Relate(p Predicate, a, b Geometry) (bool, error) {
	var (
		result bool
		err    error
	)
	switch p {
	case PredicateEquals:
		result, err = geom.Equals(a.feature, b.feature)
	case PredicateDisjoint:
		result = !geom.Intersects(a.feature, b.feature)
	case PredicateIntersects:
		result = geom.Intersects(a.feature, b.feature)
	case PredicateOverlaps:
		result, err = geom.Overlaps(a.feature, b.feature)
	case PredicateContains:
		result, err = geom.Contains(a.feature, b.feature)
	case PredicateWithin:
		result, err = geom.Within(a.feature, b.feature)
	case PredicateTouches:
		result, err = geom.Touches(a.feature, b.feature)
	case PredicateCrosses:
		result, err = geom.Crosses(a.feature, b.feature)
	default:
		err = fmt.Errorf("%w: predicate %d", errors.ErrUnsupported, p)
	}
	e.record(p.String(), err == nil)
	if err != nil {
		return false, errors.WrapInvalid(err, "geometry", "Relate", p.String())
	}
	return result, nil
}

func (e *Engine) record(operation string, ok bool) {
	if e.metrics != nil {
		e.metrics.RecordGeometryOperation(operation, ok)
	}
}
