package rdf

import (
	"sort"
	"sync"

	"github.com/c360/semsparql/vocabulary"
)

const (
	xsdString  = vocabulary.XSDString
	xsdBoolean = vocabulary.XSDBoolean
	xsdInteger = vocabulary.XSDInteger
	xsdDecimal = vocabulary.XSDDecimal
	xsdFloat   = vocabulary.XSDFloat
	xsdDouble  = vocabulary.XSDDouble
)

// Category groups datatypes by the operations that accept them.
type Category int

const (
	// CategoryUnknown is any datatype IRI not in the registry. Such
	// datatypes remain usable as opaque datatypes (e.g. for STRDT).
	CategoryUnknown Category = iota
	// CategoryNumeric is the XSD numeric tower.
	CategoryNumeric
	// CategoryString is xsd:string and its derived types.
	CategoryString
	// CategoryBoolean is xsd:boolean.
	CategoryBoolean
	// CategoryTemporal is the XSD date, time and duration family.
	CategoryTemporal
	// CategoryGeographic is the GeoSPARQL WKT and GML literals.
	CategoryGeographic
	// CategoryOther is a registered datatype outside the groups above.
	CategoryOther
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategoryString:
		return "string"
	case CategoryBoolean:
		return "boolean"
	case CategoryTemporal:
		return "temporal"
	case CategoryGeographic:
		return "geographic"
	case CategoryOther:
		return "other"
	default:
		return "unknown"
	}
}

// NumericRank orders the numeric datatypes for type promotion.
type NumericRank int

const (
	// RankNone marks non-numeric datatypes.
	RankNone NumericRank = iota
	// RankInteger is xsd:integer and every type derived from it.
	RankInteger
	// RankDecimal is xsd:decimal.
	RankDecimal
	// RankFloat is xsd:float.
	RankFloat
	// RankDouble is xsd:double.
	RankDouble
)

// Datatype describes a registered datatype.
type Datatype struct {
	IRI         string
	Category    Category
	Rank        NumericRank
	Description string
	validate    func(string) bool
}

// Validate reports whether lexical is a valid lexical form for the datatype.
// Datatypes registered without a validator accept any lexical form.
func (d Datatype) Validate(lexical string) bool {
	if d.validate == nil {
		return true
	}
	return d.validate(lexical)
}

// Option is a functional option for configuring datatype registration.
type Option func(*Datatype)

// WithCategory sets the datatype category.
func WithCategory(category Category) Option {
	return func(d *Datatype) {
		d.Category = category
	}
}

// WithRank sets the numeric promotion rank and marks the datatype numeric.
func WithRank(rank NumericRank) Option {
	return func(d *Datatype) {
		d.Rank = rank
		d.Category = CategoryNumeric
	}
}

// WithValidator sets the lexical-form validator.
func WithValidator(validate func(string) bool) Option {
	return func(d *Datatype) {
		d.validate = validate
	}
}

// WithDescription sets the human-readable description.
func WithDescription(desc string) Option {
	return func(d *Datatype) {
		d.Description = desc
	}
}

// Global datatype registry
var (
	registryMu       sync.RWMutex
	datatypeRegistry = make(map[string]Datatype)
)

// Register adds or replaces a datatype in the registry. The built-in XSD,
// RDF and GeoSPARQL datatypes are registered at package initialization;
// applications may register their own before evaluating expressions.
//
// Example:
//
//	Register("http://example.org/dt#celsius",
//	    WithRank(RankDecimal),
//	    WithValidator(ValidDecimal),
//	    WithDescription("Temperature in degrees Celsius"))
func Register(iri string, opts ...Option) {
	dt := Datatype{IRI: iri, Category: CategoryOther}
	for _, opt := range opts {
		opt(&dt)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	datatypeRegistry[iri] = dt
}

// Lookup returns the registered datatype for iri.
func Lookup(iri string) (Datatype, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	dt, ok := datatypeRegistry[iri]
	return dt, ok
}

// CategoryOf returns the category of a datatype IRI, CategoryUnknown when
// the IRI is not registered.
func CategoryOf(iri string) Category {
	dt, ok := Lookup(iri)
	if !ok {
		return CategoryUnknown
	}
	return dt.Category
}

// RankOf returns the numeric rank of a datatype IRI.
func RankOf(iri string) NumericRank {
	dt, ok := Lookup(iri)
	if !ok {
		return RankNone
	}
	return dt.Rank
}

// IsWellFormed reports whether the literal's lexical form is valid for its
// datatype. Literals with unregistered datatypes are always well formed.
func IsWellFormed(lit TypedLiteral) bool {
	dt, ok := Lookup(lit.datatype)
	if !ok {
		return true
	}
	return dt.Validate(lit.text)
}

// IsForbiddenDatatype reports whether iri is one of the language-carrying
// datatypes that cannot be assigned through STRDT.
func IsForbiddenDatatype(iri string) bool {
	switch iri {
	case vocabulary.RDFPlainLiteral, vocabulary.RDFLangString, vocabulary.RDFDirLangString:
		return true
	default:
		return false
	}
}

// RegisteredDatatypes returns the sorted IRIs of every registered datatype.
func RegisteredDatatypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	iris := make([]string, 0, len(datatypeRegistry))
	for iri := range datatypeRegistry {
		iris = append(iris, iri)
	}
	sort.Strings(iris)
	return iris
}

func init() {
	registerBuiltins()
}

func registerBuiltins() {
	str := WithCategory(CategoryString)
	temporal := WithCategory(CategoryTemporal)
	geographic := WithCategory(CategoryGeographic)
	other := WithCategory(CategoryOther)

	// String family
	Register(vocabulary.XSDString, str, WithDescription("character string"))
	Register(vocabulary.XSDNormalizedString, str, WithValidator(ValidNormalizedString))
	Register(vocabulary.XSDToken, str, WithValidator(ValidToken))
	Register(vocabulary.XSDLanguage, str, WithValidator(ValidLanguageTag))
	Register(vocabulary.XSDName, str, WithValidator(ValidName))
	Register(vocabulary.XSDNCName, str, WithValidator(ValidNCName))
	Register(vocabulary.XSDNMToken, str, WithValidator(ValidNMToken))
	Register(vocabulary.XSDID, str, WithValidator(ValidNCName))
	Register(vocabulary.XSDAnyURI, str, WithValidator(ValidAnyURI))
	Register(vocabulary.XSDQName, str, WithValidator(ValidQName))
	Register(vocabulary.XSDNotation, str, WithValidator(ValidQName))

	// Numeric tower
	Register(vocabulary.XSDDecimal, WithRank(RankDecimal), WithValidator(ValidDecimal))
	Register(vocabulary.XSDFloat, WithRank(RankFloat), WithValidator(ValidFloat))
	Register(vocabulary.XSDDouble, WithRank(RankDouble), WithValidator(ValidFloat))
	for iri, bounds := range integerBounds {
		Register(iri, WithRank(RankInteger), WithValidator(integerValidator(bounds)))
	}

	Register(vocabulary.XSDBoolean, WithCategory(CategoryBoolean), WithValidator(ValidBoolean))

	// Date, time and duration family
	Register(vocabulary.XSDDateTime, temporal, WithValidator(matcher(dateTimePattern)))
	Register(vocabulary.XSDDateTimeStamp, temporal, WithValidator(matcher(dateTimeStampPattern)))
	Register(vocabulary.XSDDate, temporal, WithValidator(matcher(datePattern)))
	Register(vocabulary.XSDTime, temporal, WithValidator(matcher(timePattern)))
	Register(vocabulary.XSDGYear, temporal, WithValidator(matcher(gYearPattern)))
	Register(vocabulary.XSDGMonth, temporal, WithValidator(matcher(gMonthPattern)))
	Register(vocabulary.XSDGDay, temporal, WithValidator(matcher(gDayPattern)))
	Register(vocabulary.XSDGYearMonth, temporal, WithValidator(matcher(gYearMonthPattern)))
	Register(vocabulary.XSDGMonthDay, temporal, WithValidator(matcher(gMonthDayPattern)))
	Register(vocabulary.XSDDuration, temporal, WithValidator(ValidDuration))
	Register(vocabulary.XSDDayTimeDuration, temporal, WithValidator(ValidDayTimeDuration))
	Register(vocabulary.XSDYearMonthDuration, temporal, WithValidator(ValidYearMonthDuration))

	// Binary and markup
	Register(vocabulary.XSDHexBinary, other, WithValidator(ValidHexBinary))
	Register(vocabulary.XSDBase64Binary, other, WithValidator(ValidBase64Binary))
	Register(vocabulary.RDFXMLLiteral, other)
	Register(vocabulary.RDFHTML, other)
	Register(vocabulary.RDFJSON, other)

	// Language-carrying and generic literal datatypes
	Register(vocabulary.RDFLangString, other)
	Register(vocabulary.RDFDirLangString, other)
	Register(vocabulary.RDFPlainLiteral, other)
	Register(vocabulary.RDFSLiteral, other)

	// GeoSPARQL
	Register(vocabulary.GEOWktLiteral, geographic, WithValidator(ValidWKT))
	Register(vocabulary.GEOGmlLiteral, geographic, WithValidator(ValidGML))
}
