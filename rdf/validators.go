package rdf

import (
	"encoding/base64"
	"encoding/xml"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/c360/semsparql/vocabulary"
)

// Lexical patterns for the XSD datatypes. XSD collapses surrounding
// whitespace for every non-string type, so validators trim before matching.
var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	floatPattern   = regexp.MustCompile(`^([+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?|[+-]?INF|NaN)$`)
	booleanPattern = regexp.MustCompile(`^(true|false|1|0)$`)
	hexPattern     = regexp.MustCompile(`^([0-9a-fA-F]{2})*$`)

	// LanguageTagPattern accepts BCP47-like tags: a 1-8 letter primary subtag
	// followed by 1-8 alphanumeric subtags. Trailing hyphens are rejected.
	LanguageTagPattern = regexp.MustCompile(`^[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*$`)

	ncNamePattern  = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_.\-\x{B7}]*$`)
	namePattern    = regexp.MustCompile(`^[\p{L}_:][\p{L}\p{N}_.:\-\x{B7}]*$`)
	nmTokenPattern = regexp.MustCompile(`^[\p{L}\p{N}_.:\-\x{B7}]+$`)
	qNamePattern   = regexp.MustCompile(`^([\p{L}_][\p{L}\p{N}_.\-\x{B7}]*:)?[\p{L}_][\p{L}\p{N}_.\-\x{B7}]*$`)
)

const (
	yearPart  = `-?([1-9][0-9]{4,}|[0-9]{4})`
	monthPart = `(0[1-9]|1[0-2])`
	dayPart   = `(0[1-9]|[12][0-9]|3[01])`
	timePart  = `(([01][0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9](\.[0-9]+)?)|(24):(00):(00(\.0+)?))`
	tzPart    = `(Z|[+-]((0[0-9]|1[0-3]):[0-5][0-9]|14:00))`
)

var (
	dateTimePattern      = regexp.MustCompile(`^` + yearPart + `-` + monthPart + `-` + dayPart + `T` + timePart + tzPart + `?$`)
	dateTimeStampPattern = regexp.MustCompile(`^` + yearPart + `-` + monthPart + `-` + dayPart + `T` + timePart + tzPart + `$`)
	datePattern          = regexp.MustCompile(`^` + yearPart + `-` + monthPart + `-` + dayPart + tzPart + `?$`)
	timePattern          = regexp.MustCompile(`^` + timePart + tzPart + `?$`)
	gYearPattern         = regexp.MustCompile(`^` + yearPart + tzPart + `?$`)
	gMonthPattern        = regexp.MustCompile(`^--` + monthPart + tzPart + `?$`)
	gDayPattern          = regexp.MustCompile(`^---` + dayPart + tzPart + `?$`)
	gYearMonthPattern    = regexp.MustCompile(`^` + yearPart + `-` + monthPart + tzPart + `?$`)
	gMonthDayPattern     = regexp.MustCompile(`^--` + monthPart + `-` + dayPart + tzPart + `?$`)

	durationPattern          = regexp.MustCompile(`^-?P([0-9]+Y)?([0-9]+M)?([0-9]+D)?(T([0-9]+H)?([0-9]+M)?([0-9]+(\.[0-9]+)?S)?)?$`)
	dayTimeDurationPattern   = regexp.MustCompile(`^-?P([0-9]+D)?(T([0-9]+H)?([0-9]+M)?([0-9]+(\.[0-9]+)?S)?)?$`)
	yearMonthDurationPattern = regexp.MustCompile(`^-?P([0-9]+Y)?([0-9]+M)?$`)

	wktPattern = regexp.MustCompile(`(?is)^\s*(<[^>]*>\s*)?` +
		`(POINT|LINESTRING|POLYGON|MULTIPOINT|MULTILINESTRING|MULTIPOLYGON|GEOMETRYCOLLECTION|TRIANGLE|TIN|POLYHEDRALSURFACE)` +
		`(\s*(ZM|Z|M))?\s*(EMPTY|\(.*\))\s*$`)
)

func matcher(pattern *regexp.Regexp) func(string) bool {
	return func(s string) bool {
		return pattern.MatchString(strings.TrimSpace(s))
	}
}

// ValidNormalizedString rejects carriage returns, line feeds and tabs.
func ValidNormalizedString(s string) bool {
	return !strings.ContainsAny(s, "\r\n\t")
}

// ValidToken additionally rejects leading, trailing and doubled spaces.
func ValidToken(s string) bool {
	return ValidNormalizedString(s) &&
		!strings.HasPrefix(s, " ") &&
		!strings.HasSuffix(s, " ") &&
		!strings.Contains(s, "  ")
}

// ValidLanguageTag reports whether s is a well-formed language tag.
func ValidLanguageTag(s string) bool {
	return LanguageTagPattern.MatchString(s)
}

// ValidName matches xsd:Name.
func ValidName(s string) bool { return namePattern.MatchString(s) }

// ValidNCName matches xsd:NCName (and xsd:ID).
func ValidNCName(s string) bool { return ncNamePattern.MatchString(s) }

// ValidNMToken matches xsd:NMTOKEN.
func ValidNMToken(s string) bool { return nmTokenPattern.MatchString(s) }

// ValidQName matches xsd:QName.
func ValidQName(s string) bool { return qNamePattern.MatchString(s) }

// ValidAnyURI accepts absolute and relative URI references.
func ValidAnyURI(s string) bool {
	if strings.ContainsAny(s, " <>\"{}|\\^`\n\r\t") {
		return false
	}
	_, err := url.Parse(s)
	return err == nil
}

// ValidDecimal matches the xsd:decimal lexical space.
func ValidDecimal(s string) bool {
	return decimalPattern.MatchString(strings.TrimSpace(s))
}

// ValidFloat matches the xsd:float and xsd:double lexical space.
func ValidFloat(s string) bool {
	return floatPattern.MatchString(strings.TrimSpace(s))
}

// ValidBoolean matches true, false, 1 and 0.
func ValidBoolean(s string) bool {
	return booleanPattern.MatchString(strings.TrimSpace(s))
}

// ValidHexBinary matches an even-length hexadecimal string.
func ValidHexBinary(s string) bool {
	return hexPattern.MatchString(strings.TrimSpace(s))
}

// ValidBase64Binary accepts standard base64, ignoring embedded whitespace.
func ValidBase64Binary(s string) bool {
	compact := strings.Join(strings.Fields(s), "")
	_, err := base64.StdEncoding.DecodeString(compact)
	return err == nil
}

// ValidDuration matches xsd:duration. At least one component is required and
// a T designator must be followed by a time component.
func ValidDuration(s string) bool {
	return validDuration(durationPattern, strings.TrimSpace(s))
}

// ValidDayTimeDuration matches xsd:dayTimeDuration.
func ValidDayTimeDuration(s string) bool {
	return validDuration(dayTimeDurationPattern, strings.TrimSpace(s))
}

// ValidYearMonthDuration matches xsd:yearMonthDuration.
func ValidYearMonthDuration(s string) bool {
	return validDuration(yearMonthDurationPattern, strings.TrimSpace(s))
}

func validDuration(pattern *regexp.Regexp, s string) bool {
	if !pattern.MatchString(s) {
		return false
	}
	body := strings.TrimPrefix(s, "-")
	return body != "P" && !strings.HasSuffix(body, "T")
}

// ValidWKT performs a syntactic check of a (possibly CRS-prefixed) WKT
// geometry: a known geometry keyword followed by EMPTY or a balanced
// coordinate list.
func ValidWKT(s string) bool {
	if !wktPattern.MatchString(s) {
		return false
	}
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// ValidGML checks that s is a single well-formed XML element in a GML
// namespace (GML 3.1 or 3.2).
func ValidGML(s string) bool {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "<") || !strings.Contains(trimmed, gmlNamespace) {
		return false
	}
	dec := xml.NewDecoder(strings.NewReader(trimmed))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return depth == 0 && roots == 1
		}
		if err != nil {
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if !strings.HasPrefix(t.Name.Space, gmlNamespace) {
					return false
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

const gmlNamespace = "http://www.opengis.net/gml"

type intBounds struct {
	min, max *decimal.Decimal
}

func bound(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// integerBounds holds the value space of every registered integer type.
var integerBounds = map[string]intBounds{
	vocabulary.XSDInteger:            {},
	vocabulary.XSDLong:               {bound("-9223372036854775808"), bound("9223372036854775807")},
	vocabulary.XSDInt:                {bound("-2147483648"), bound("2147483647")},
	vocabulary.XSDShort:              {bound("-32768"), bound("32767")},
	vocabulary.XSDByte:               {bound("-128"), bound("127")},
	vocabulary.XSDNonNegativeInteger: {bound("0"), nil},
	vocabulary.XSDPositiveInteger:    {bound("1"), nil},
	vocabulary.XSDNonPositiveInteger: {nil, bound("0")},
	vocabulary.XSDNegativeInteger:    {nil, bound("-1")},
	vocabulary.XSDUnsignedLong:       {bound("0"), bound("18446744073709551615")},
	vocabulary.XSDUnsignedInt:        {bound("0"), bound("4294967295")},
	vocabulary.XSDUnsignedShort:      {bound("0"), bound("65535")},
	vocabulary.XSDUnsignedByte:       {bound("0"), bound("255")},
}

func (b intBounds) contains(d decimal.Decimal) bool {
	if b.min != nil && d.LessThan(*b.min) {
		return false
	}
	if b.max != nil && d.GreaterThan(*b.max) {
		return false
	}
	return true
}

func integerValidator(b intBounds) func(string) bool {
	return func(s string) bool {
		s = strings.TrimSpace(s)
		if !integerPattern.MatchString(s) {
			return false
		}
		d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
		if err != nil {
			return false
		}
		return b.contains(d)
	}
}

// InIntegerRange reports whether the integral value d lies in the value
// space of the integer datatype iri. Non-integer datatypes report false.
func InIntegerRange(iri string, d decimal.Decimal) bool {
	b, ok := integerBounds[iri]
	if !ok {
		return false
	}
	return b.contains(d)
}
