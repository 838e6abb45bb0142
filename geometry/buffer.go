package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geo"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/vocabulary"
)

// MetresPer converts a distance in the given unit of measure to metres. It
// reports false for units that are not lengths.
func MetresPer(distance float64, uom string) (float64, bool) {
	switch uom {
	case vocabulary.UOMMetre, vocabulary.UOMMeter:
		return distance, true
	case vocabulary.UOMKilometre, vocabulary.UOMKilometer:
		return distance * 1000, true
	default:
		return 0, false
	}
}

// Buffer returns the area within metres of g, measured geodesically.
// Every vertex is surrounded by a circle of Segments() segments, every edge
// by the hull of its two end circles, and surfaces keep their interior.
// The parts are merged into a single polygonal geometry.
func (e *Engine) Buffer(g Geometry, metres float64) (Geometry, error) {
	out, err := e.buffer(g, metres)
	e.record("buffer", err == nil)
	return out, err
}

func (e *Engine) buffer(g Geometry, metres float64) (Geometry, error) {
	if math.IsNaN(metres) || math.IsInf(metres, 0) || metres < 0 {
		return Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: buffer distance %v", errors.ErrInvalidData, metres), "geometry", "Buffer", "distance check")
	}
	if metres == 0 || g.IsEmpty() {
		return g, nil
	}
	if g.shape == nil {
		return Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s cannot be buffered", errors.ErrUnsupported, g.feature.Type()),
			"geometry", "Buffer", "shape check")
	}

	b := bufferBuilder{segments: e.segments, metres: metres}
	if err := b.add(g.shape); err != nil {
		return Geometry{}, err
	}
	merged, err := b.merge()
	if err != nil {
		return Geometry{}, err
	}

	out := Geometry{feature: merged}
	if shape, err := wkt.Unmarshal(merged.AsText()); err == nil {
		out.shape = shape
	}
	return out, nil
}

type bufferBuilder struct {
	segments int
	metres   float64
	parts    []geom.Geometry
}

func (b *bufferBuilder) add(shape orb.Geometry) error {
	switch s := shape.(type) {
	case orb.Point:
		return b.addCircle(s)
	case orb.MultiPoint:
		for _, p := range s {
			if err := b.addCircle(p); err != nil {
				return err
			}
		}
	case orb.LineString:
		return b.addPath(s)
	case orb.Ring:
		if err := b.addPath(orb.LineString(s)); err != nil {
			return err
		}
		return b.addSurface(orb.Polygon{s})
	case orb.MultiLineString:
		for _, ls := range s {
			if err := b.addPath(ls); err != nil {
				return err
			}
		}
	case orb.Polygon:
		for _, ring := range s {
			if err := b.addPath(orb.LineString(ring)); err != nil {
				return err
			}
		}
		return b.addSurface(s)
	case orb.MultiPolygon:
		for _, p := range s {
			if err := b.add(p); err != nil {
				return err
			}
		}
	case orb.Bound:
		return b.add(s.ToPolygon())
	case orb.Collection:
		for _, member := range s {
			if err := b.add(member); err != nil {
				return err
			}
		}
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: geometry type %T", errors.ErrUnsupported, shape), "geometry", "Buffer", "shape walk")
	}
	return nil
}

// circle returns the ring of points at the buffer distance around centre,
// counter-clockwise starting due north. The ring is not closed.
func (b *bufferBuilder) circle(centre orb.Point) []orb.Point {
	ring := make([]orb.Point, b.segments)
	step := 360.0 / float64(b.segments)
	for i := range ring {
		bearing := math.Mod(360-float64(i)*step, 360)
		ring[i] = geo.PointAtBearingAndDistance(centre, bearing, b.metres)
	}
	return ring
}

func (b *bufferBuilder) addCircle(centre orb.Point) error {
	ring := b.circle(centre)
	ring = append(ring, ring[0])
	return b.addWKT("POLYGON((" + coordinates(ring) + "))")
}

// addPath buffers every edge of a path. A single-vertex path is a circle.
func (b *bufferBuilder) addPath(path orb.LineString) error {
	if len(path) == 1 {
		return b.addCircle(path[0])
	}
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			continue
		}
		hull := append(b.circle(path[i-1]), b.circle(path[i])...)
		points := make([]string, len(hull))
		for j, p := range hull {
			points[j] = "(" + coordinate(p) + ")"
		}
		mp, err := geom.UnmarshalWKT("MULTIPOINT(" + strings.Join(points, ",") + ")")
		if err != nil {
			return errors.WrapInvalid(err, "geometry", "Buffer", "edge hull")
		}
		b.parts = append(b.parts, mp.ConvexHull())
	}
	return nil
}

func (b *bufferBuilder) addSurface(p orb.Polygon) error {
	return b.addWKT(wkt.MarshalString(p))
}

func (b *bufferBuilder) addWKT(text string) error {
	g, err := geom.UnmarshalWKT(text)
	if err != nil {
		return errors.WrapInvalid(err, "geometry", "Buffer", "part build")
	}
	b.parts = append(b.parts, g)
	return nil
}

func (b *bufferBuilder) merge() (geom.Geometry, error) {
	if len(b.parts) == 0 {
		return geom.Geometry{}, errors.WrapInvalid(
			fmt.Errorf("%w: nothing to buffer", errors.ErrInvalidData), "geometry", "Buffer", "merge")
	}
	merged := b.parts[0]
	for _, part := range b.parts[1:] {
		var err error
		merged, err = geom.Union(merged, part)
		if err != nil {
			return geom.Geometry{}, errors.WrapInvalid(err, "geometry", "Buffer", "merge")
		}
	}
	return merged, nil
}

func coordinate(p orb.Point) string {
	return strconv.FormatFloat(p[0], 'f', -1, 64) + " " + strconv.FormatFloat(p[1], 'f', -1, 64)
}

func coordinates(points []orb.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = coordinate(p)
	}
	return strings.Join(parts, ",")
}
