package geometry

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/c360/semsparql/errors"
)

const gmlNamespacePrefix = "http://www.opengis.net/gml"

// gmlElement is a generic GML element tree.
type gmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Text     string       `xml:",chardata"`
	Children []gmlElement `xml:",any"`
}

func (el gmlElement) attr(name string) string {
	for _, a := range el.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (el gmlElement) child(names ...string) (gmlElement, bool) {
	for _, c := range el.Children {
		for _, n := range names {
			if c.XMLName.Local == n {
				return c, true
			}
		}
	}
	return gmlElement{}, false
}

// decodeGML reads a GML 2/3 geometry fragment. Supported roots are Point,
// LineString, LinearRing, Polygon, Envelope and their Multi forms.
func decodeGML(text string) (orb.Geometry, error) {
	var root gmlElement
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidData, err), "geometry", "Parse", "GML decode")
	}
	if !strings.HasPrefix(root.XMLName.Space, gmlNamespacePrefix) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: root element %q is not in the GML namespace", errors.ErrInvalidData, root.XMLName.Local),
			"geometry", "Parse", "GML decode")
	}
	g, err := gmlGeometry(root, dimension(root, 2))
	if err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidData, err), "geometry", "Parse", "GML decode")
	}
	return g, nil
}

func dimension(el gmlElement, fallback int) int {
	if d, err := strconv.Atoi(el.attr("srsDimension")); err == nil && d > 0 {
		return d
	}
	return fallback
}

func gmlGeometry(el gmlElement, dim int) (orb.Geometry, error) {
	dim = dimension(el, dim)
	switch el.XMLName.Local {
	case "Point":
		points, err := positions(el, dim)
		if err != nil {
			return nil, err
		}
		if len(points) != 1 {
			return nil, fmt.Errorf("point has %d positions", len(points))
		}
		return points[0], nil
	case "LineString", "LinearRing":
		points, err := positions(el, dim)
		if err != nil {
			return nil, err
		}
		if len(points) < 2 {
			return nil, fmt.Errorf("%s has %d positions", el.XMLName.Local, len(points))
		}
		return orb.LineString(points), nil
	case "Polygon":
		return gmlPolygon(el, dim)
	case "Envelope", "Box":
		return gmlEnvelope(el, dim)
	case "MultiPoint":
		var mp orb.MultiPoint
		err := members(el, dim, func(g orb.Geometry) error {
			p, ok := g.(orb.Point)
			if !ok {
				return fmt.Errorf("MultiPoint member is %s", g.GeoJSONType())
			}
			mp = append(mp, p)
			return nil
		})
		return mp, err
	case "MultiCurve", "MultiLineString":
		var mls orb.MultiLineString
		err := members(el, dim, func(g orb.Geometry) error {
			ls, ok := g.(orb.LineString)
			if !ok {
				return fmt.Errorf("%s member is %s", el.XMLName.Local, g.GeoJSONType())
			}
			mls = append(mls, ls)
			return nil
		})
		return mls, err
	case "MultiSurface", "MultiPolygon":
		var mp orb.MultiPolygon
		err := members(el, dim, func(g orb.Geometry) error {
			p, ok := g.(orb.Polygon)
			if !ok {
				return fmt.Errorf("%s member is %s", el.XMLName.Local, g.GeoJSONType())
			}
			mp = append(mp, p)
			return nil
		})
		return mp, err
	case "MultiGeometry":
		var c orb.Collection
		err := members(el, dim, func(g orb.Geometry) error {
			c = append(c, g)
			return nil
		})
		return c, err
	default:
		return nil, fmt.Errorf("unsupported GML element %s", el.XMLName.Local)
	}
}

// members walks the *Member and *Members children of a collection.
func members(el gmlElement, dim int, add func(orb.Geometry) error) error {
	for _, m := range el.Children {
		if !strings.HasSuffix(m.XMLName.Local, "Member") && !strings.HasSuffix(m.XMLName.Local, "Members") {
			continue
		}
		for _, c := range m.Children {
			g, err := gmlGeometry(c, dim)
			if err != nil {
				return err
			}
			if err := add(g); err != nil {
				return err
			}
		}
	}
	return nil
}

func gmlPolygon(el gmlElement, dim int) (orb.Polygon, error) {
	var poly orb.Polygon
	for _, boundary := range el.Children {
		name := boundary.XMLName.Local
		exterior := name == "exterior" || name == "outerBoundaryIs"
		interior := name == "interior" || name == "innerBoundaryIs"
		if !exterior && !interior {
			continue
		}
		ring, ok := boundary.child("LinearRing")
		if !ok {
			return nil, fmt.Errorf("%s without LinearRing", name)
		}
		points, err := positions(ring, dimension(ring, dim))
		if err != nil {
			return nil, err
		}
		if len(points) < 4 || points[0] != points[len(points)-1] {
			return nil, fmt.Errorf("%s ring is not closed", name)
		}
		if exterior {
			poly = append(orb.Polygon{orb.Ring(points)}, poly...)
		} else {
			poly = append(poly, orb.Ring(points))
		}
	}
	if len(poly) == 0 {
		return nil, fmt.Errorf("polygon without exterior")
	}
	return poly, nil
}

func gmlEnvelope(el gmlElement, dim int) (orb.Polygon, error) {
	lower, okLower := el.child("lowerCorner")
	upper, okUpper := el.child("upperCorner")
	if okLower && okUpper {
		lo, err := parseTuple(lower.Text, dim)
		if err != nil {
			return nil, err
		}
		hi, err := parseTuple(upper.Text, dim)
		if err != nil {
			return nil, err
		}
		return orb.Bound{Min: lo, Max: hi}.ToPolygon(), nil
	}
	points, err := positions(el, dim)
	if err != nil {
		return nil, err
	}
	if len(points) != 2 {
		return nil, fmt.Errorf("envelope needs two corners, got %d", len(points))
	}
	return orb.Bound{Min: points[0], Max: points[1]}.ToPolygon(), nil
}

// positions collects the coordinates of el from pos, posList, coordinates
// and GML 2 coord children.
func positions(el gmlElement, dim int) ([]orb.Point, error) {
	var points []orb.Point
	for _, c := range el.Children {
		switch c.XMLName.Local {
		case "pos":
			p, err := parseTuple(c.Text, dimension(c, dim))
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		case "posList":
			list, err := parsePosList(c.Text, dimension(c, dim))
			if err != nil {
				return nil, err
			}
			points = append(points, list...)
		case "coordinates":
			for _, tuple := range strings.Fields(c.Text) {
				p, err := parseTuple(strings.ReplaceAll(tuple, ",", " "), 0)
				if err != nil {
					return nil, err
				}
				points = append(points, p)
			}
		case "coord":
			x, okX := c.child("X")
			y, okY := c.child("Y")
			if !okX || !okY {
				return nil, fmt.Errorf("coord without X and Y")
			}
			p, err := parseTuple(x.Text+" "+y.Text, 2)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// parseTuple reads one position. dim 0 accepts any dimension of at least 2.
func parseTuple(text string, dim int) (orb.Point, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 || (dim > 0 && len(fields) != dim) {
		return orb.Point{}, fmt.Errorf("position %q does not have %d coordinates", text, dim)
	}
	var p orb.Point
	for i := 0; i < 2; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return orb.Point{}, fmt.Errorf("coordinate %q: %w", fields[i], err)
		}
		p[i] = v
	}
	return p, nil
}

func parsePosList(text string, dim int) ([]orb.Point, error) {
	fields := strings.Fields(text)
	if dim < 2 || len(fields)%dim != 0 {
		return nil, fmt.Errorf("posList of %d values is not a multiple of %d", len(fields), dim)
	}
	points := make([]orb.Point, 0, len(fields)/dim)
	for i := 0; i < len(fields); i += dim {
		p, err := parseTuple(strings.Join(fields[i:i+dim], " "), dim)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
