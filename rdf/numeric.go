package rdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/c360/semsparql/errors"
)

// Numeric is the parsed value of a numeric typed literal. Integer and
// decimal values are held exactly; float and double values carry their
// IEEE value and, when finite, the exact decimal of their lexical form.
type Numeric struct {
	datatype string
	rank     NumericRank
	exact    decimal.Decimal
	float    float64
	finite   bool
}

// ParseNumeric reads a numeric typed literal. Non-numeric datatypes and
// malformed or out-of-range lexical forms return an error wrapping
// errors.ErrParsingFailed.
func ParseNumeric(lit TypedLiteral) (Numeric, error) {
	rank := RankOf(lit.datatype)
	if rank == RankNone {
		return Numeric{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s is not a numeric datatype", errors.ErrParsingFailed, lit.datatype),
			"rdf", "ParseNumeric", "datatype check")
	}
	if !IsWellFormed(lit) {
		return Numeric{}, errors.WrapInvalid(
			fmt.Errorf("%w: %q is not a valid %s", errors.ErrParsingFailed, lit.text, lit.datatype),
			"rdf", "ParseNumeric", "lexical validation")
	}

	text := strings.TrimPrefix(strings.TrimSpace(lit.text), "+")
	n := Numeric{datatype: lit.datatype, rank: rank, finite: true}

	switch rank {
	case RankInteger, RankDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Numeric{}, errors.WrapInvalid(
				fmt.Errorf("%w: %v", errors.ErrParsingFailed, err), "rdf", "ParseNumeric", "decimal parse")
		}
		n.exact = d
		n.float = d.InexactFloat64()
	default:
		switch text {
		case "INF":
			n.float, n.finite = math.Inf(1), false
		case "-INF":
			n.float, n.finite = math.Inf(-1), false
		case "NaN":
			n.float, n.finite = math.NaN(), false
		default:
			bits := 64
			if rank == RankFloat {
				bits = 32
			}
			f, err := strconv.ParseFloat(text, bits)
			if err != nil {
				return Numeric{}, errors.WrapInvalid(
					fmt.Errorf("%w: %v", errors.ErrParsingFailed, err), "rdf", "ParseNumeric", "float parse")
			}
			d, err := decimal.NewFromString(text)
			if err != nil {
				d = decimal.NewFromFloat(f)
			}
			n.float, n.exact = f, d
		}
	}
	return n, nil
}

// NumericOf returns the numeric value of t when t is a well-formed numeric
// typed literal.
func NumericOf(t Term) (Numeric, bool) {
	lit, ok := t.(TypedLiteral)
	if !ok {
		return Numeric{}, false
	}
	n, err := ParseNumeric(lit)
	if err != nil {
		return Numeric{}, false
	}
	return n, true
}

// NewExactNumeric creates an integer or decimal-ranked value.
func NewExactNumeric(d decimal.Decimal, datatype string) Numeric {
	rank := RankOf(datatype)
	if rank != RankInteger {
		rank = RankDecimal
	}
	return Numeric{datatype: datatype, rank: rank, exact: d, float: d.InexactFloat64(), finite: true}
}

// NewFloatNumeric creates a float or double-ranked value.
func NewFloatNumeric(f float64, datatype string) Numeric {
	rank := RankOf(datatype)
	if rank != RankFloat {
		rank = RankDouble
	}
	if rank == RankFloat {
		f = float64(float32(f))
	}
	n := Numeric{datatype: datatype, rank: rank, float: f}
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		n.finite = true
		n.exact = decimal.NewFromFloat(f)
	}
	return n
}

// Datatype returns the datatype IRI of the value.
func (n Numeric) Datatype() string { return n.datatype }

// Rank returns the promotion rank of the value.
func (n Numeric) Rank() NumericRank { return n.rank }

// IsApproximate reports whether the value is a float or double.
func (n Numeric) IsApproximate() bool { return n.rank >= RankFloat }

// IsFinite reports whether the value is neither NaN nor infinite.
func (n Numeric) IsFinite() bool { return n.finite }

// IsNaN reports whether the value is NaN.
func (n Numeric) IsNaN() bool { return !n.finite && math.IsNaN(n.float) }

// Float64 returns the value as an IEEE double.
func (n Numeric) Float64() float64 { return n.float }

// Decimal returns the exact value. It is only meaningful for finite values.
func (n Numeric) Decimal() decimal.Decimal { return n.exact }

// IsZero reports whether the value equals zero.
func (n Numeric) IsZero() bool {
	if n.finite {
		return n.exact.IsZero()
	}
	return false
}

// Compare orders two numeric values by value: -1, 0 or +1. The second
// result is false when either side is NaN.
func (n Numeric) Compare(other Numeric) (int, bool) {
	if n.IsNaN() || other.IsNaN() {
		return 0, false
	}
	if n.finite && other.finite {
		return n.exact.Cmp(other.exact), true
	}
	switch {
	case n.float < other.float:
		return -1, true
	case n.float > other.float:
		return 1, true
	default:
		return 0, true
	}
}

// BaseDatatype returns the primitive datatype of a numeric rank.
func BaseDatatype(rank NumericRank) string {
	switch rank {
	case RankInteger:
		return xsdInteger
	case RankDecimal:
		return xsdDecimal
	case RankFloat:
		return xsdFloat
	default:
		return xsdDouble
	}
}

// Promote returns the datatype and rank arithmetic on a and b is carried out
// in. Equal datatypes are kept; otherwise the wider rank wins, and two
// distinct types of the same rank fall back to that rank's primitive type.
func Promote(a, b Numeric) (string, NumericRank) {
	if a.datatype == b.datatype {
		return a.datatype, a.rank
	}
	switch {
	case a.rank > b.rank:
		return a.datatype, a.rank
	case b.rank > a.rank:
		return b.datatype, b.rank
	default:
		return BaseDatatype(a.rank), a.rank
	}
}

// Literal serializes the value in the canonical lexical form of its
// datatype. Integer values outside the range of a derived integer type are
// widened to xsd:integer.
func (n Numeric) Literal() TypedLiteral {
	switch n.rank {
	case RankInteger:
		datatype := n.datatype
		if _, bounded := integerBounds[datatype]; bounded && !InIntegerRange(datatype, n.exact) {
			datatype = xsdInteger
		}
		return NewTypedLiteral(n.exact.Truncate(0).String(), datatype)
	case RankDecimal:
		return NewTypedLiteral(FormatDecimal(n.exact), n.datatype)
	case RankFloat:
		return NewTypedLiteral(FormatFloat(n.float, 32), n.datatype)
	default:
		return NewTypedLiteral(FormatFloat(n.float, 64), n.datatype)
	}
}

// FormatDecimal returns d with trailing fractional zeros trimmed.
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}

// FormatFloat returns the shortest lexical form of an IEEE value of the
// given bit size: plain notation for ordinary magnitudes, E notation for
// very small or very large ones, and NaN, INF or -INF for special values.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'E', -1, bitSize)
		return strings.Replace(s, "E+", "E", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// NewIntegerLiteral creates an xsd:integer literal.
func NewIntegerLiteral(v int64) TypedLiteral {
	return NewTypedLiteral(strconv.FormatInt(v, 10), xsdInteger)
}

// NewDecimalLiteral creates an xsd:decimal literal in canonical form.
func NewDecimalLiteral(d decimal.Decimal) TypedLiteral {
	return NewTypedLiteral(FormatDecimal(d), xsdDecimal)
}

// NewDoubleLiteral creates an xsd:double literal in canonical form.
func NewDoubleLiteral(f float64) TypedLiteral {
	return NewTypedLiteral(FormatFloat(f, 64), xsdDouble)
}

// NewBooleanLiteral creates an xsd:boolean literal.
func NewBooleanLiteral(v bool) TypedLiteral {
	return NewTypedLiteral(strconv.FormatBool(v), xsdBoolean)
}

// NewStringLiteral creates an xsd:string literal.
func NewStringLiteral(s string) TypedLiteral {
	return NewTypedLiteral(s, xsdString)
}

// True and False are the two xsd:boolean constants.
var (
	True  = NewBooleanLiteral(true)
	False = NewBooleanLiteral(false)
)

// ParseBoolean returns the value of an xsd:boolean literal.
func ParseBoolean(t Term) (bool, bool) {
	lit, ok := t.(TypedLiteral)
	if !ok || lit.datatype != xsdBoolean {
		return false, false
	}
	switch strings.TrimSpace(lit.text) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}
