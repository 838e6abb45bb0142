package vocabulary

// Standard Vocabulary IRIs
//
// These constants provide the W3C and OGC namespaces the expression engine
// needs: the XSD datatype family, RDF/RDFS, OWL, and the GeoSPARQL
// vocabularies for geometry literals, functions and units of measure.
//
// References:
// - XSD: https://www.w3.org/TR/xmlschema11-2/
// - RDF 1.2: https://www.w3.org/TR/rdf12-concepts/
// - GeoSPARQL: https://docs.ogc.org/is/22-047r1/22-047r1.html

// Namespace base IRIs
const (
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	GEONamespace  = "http://www.opengis.net/ont/geosparql#"
	GEOFNamespace = "http://www.opengis.net/def/function/geosparql/"
	UOMNamespace  = "http://www.opengis.net/def/uom/OGC/1.0/"
	SFNamespace   = "http://www.opengis.net/ont/sf#"
)

// XSD string family
const (
	XSDString           = XSDNamespace + "string"
	XSDNormalizedString = XSDNamespace + "normalizedString"
	XSDToken            = XSDNamespace + "token"
	XSDLanguage         = XSDNamespace + "language"
	XSDName             = XSDNamespace + "Name"
	XSDNCName           = XSDNamespace + "NCName"
	XSDNMToken          = XSDNamespace + "NMTOKEN"
	XSDID               = XSDNamespace + "ID"
	XSDAnyURI           = XSDNamespace + "anyURI"
	XSDQName            = XSDNamespace + "QName"
	XSDNotation         = XSDNamespace + "NOTATION"
)

// XSD numeric family
const (
	XSDDecimal            = XSDNamespace + "decimal"
	XSDInteger            = XSDNamespace + "integer"
	XSDLong               = XSDNamespace + "long"
	XSDInt                = XSDNamespace + "int"
	XSDShort              = XSDNamespace + "short"
	XSDByte               = XSDNamespace + "byte"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDPositiveInteger    = XSDNamespace + "positiveInteger"
	XSDNonPositiveInteger = XSDNamespace + "nonPositiveInteger"
	XSDNegativeInteger    = XSDNamespace + "negativeInteger"
	XSDUnsignedLong       = XSDNamespace + "unsignedLong"
	XSDUnsignedInt        = XSDNamespace + "unsignedInt"
	XSDUnsignedShort      = XSDNamespace + "unsignedShort"
	XSDUnsignedByte       = XSDNamespace + "unsignedByte"
	XSDFloat              = XSDNamespace + "float"
	XSDDouble             = XSDNamespace + "double"
)

// XSD date, time and duration family
const (
	XSDDateTime          = XSDNamespace + "dateTime"
	XSDDateTimeStamp     = XSDNamespace + "dateTimeStamp"
	XSDDate              = XSDNamespace + "date"
	XSDTime              = XSDNamespace + "time"
	XSDGYear             = XSDNamespace + "gYear"
	XSDGMonth            = XSDNamespace + "gMonth"
	XSDGDay              = XSDNamespace + "gDay"
	XSDGYearMonth        = XSDNamespace + "gYearMonth"
	XSDGMonthDay         = XSDNamespace + "gMonthDay"
	XSDDuration          = XSDNamespace + "duration"
	XSDDayTimeDuration   = XSDNamespace + "dayTimeDuration"
	XSDYearMonthDuration = XSDNamespace + "yearMonthDuration"
)

// XSD miscellaneous
const (
	XSDBoolean      = XSDNamespace + "boolean"
	XSDBase64Binary = XSDNamespace + "base64Binary"
	XSDHexBinary    = XSDNamespace + "hexBinary"
)

// RDF and RDFS datatypes
const (
	// RDFLangString is the datatype of language-tagged strings. It is never a
	// valid target for STRDT.
	RDFLangString = RDFNamespace + "langString"

	// RDFDirLangString is the RDF 1.2 datatype of strings carrying both a
	// language tag and a base direction.
	RDFDirLangString = RDFNamespace + "dirLangString"

	// RDFPlainLiteral is the rdf:PlainLiteral datatype (rdf-plain-literal).
	RDFPlainLiteral = RDFNamespace + "PlainLiteral"

	RDFXMLLiteral = RDFNamespace + "XMLLiteral"
	RDFHTML       = RDFNamespace + "HTML"
	RDFJSON       = RDFNamespace + "JSON"
	RDFSLiteral   = RDFSNamespace + "Literal"
)

// OWL datatypes
const (
	OWLReal     = OWLNamespace + "real"
	OWLRational = OWLNamespace + "rational"
)

// GeoSPARQL literals
const (
	// GEOWktLiteral holds a Well-Known Text geometry, optionally prefixed by a CRS IRI.
	GEOWktLiteral = GEONamespace + "wktLiteral"

	// GEOGmlLiteral holds a GML 3 geometry fragment.
	GEOGmlLiteral = GEONamespace + "gmlLiteral"

	// CRS84 is the default coordinate reference system of wktLiteral values.
	CRS84 = "http://www.opengis.net/def/crs/OGC/1.3/CRS84"
)

// GeoSPARQL functions
const (
	GEOFBuffer       = GEOFNamespace + "buffer"
	GEOFConvexHull   = GEOFNamespace + "convexHull"
	GEOFIsEmpty      = GEOFNamespace + "isEmpty"
	GEOFSfEquals     = GEOFNamespace + "sfEquals"
	GEOFSfDisjoint   = GEOFNamespace + "sfDisjoint"
	GEOFSfOverlaps   = GEOFNamespace + "sfOverlaps"
	GEOFSfIntersects = GEOFNamespace + "sfIntersects"
	GEOFSfContains   = GEOFNamespace + "sfContains"
	GEOFSfWithin     = GEOFNamespace + "sfWithin"
	GEOFSfTouches    = GEOFNamespace + "sfTouches"
	GEOFSfCrosses    = GEOFNamespace + "sfCrosses"
)

// Units of measure
const (
	UOMMetre     = UOMNamespace + "metre"
	UOMMeter     = UOMNamespace + "meter"
	UOMKilometre = UOMNamespace + "kilometre"
	UOMKilometer = UOMNamespace + "kilometer"
)
