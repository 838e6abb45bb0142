package rdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/vocabulary"
)

var temporalComponents = regexp.MustCompile(
	`^(-?[0-9]{4,})-([0-9]{2})-([0-9]{2})` +
		`(?:T([0-9]{2}):([0-9]{2}):([0-9]{2}(?:\.[0-9]+)?))?` +
		`(Z|[+-][0-9]{2}:[0-9]{2})?$`)

// Temporal holds the components of an xsd:dateTime, xsd:dateTimeStamp or
// xsd:date literal. Seconds keep their lexical form so that fractional
// precision survives extraction.
type Temporal struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      string
	HasTime     bool
	HasTimezone bool
	// Offset is the timezone offset in minutes east of UTC.
	Offset int

	zone string
}

// ParseTemporal reads a dateTime, dateTimeStamp or date literal.
func ParseTemporal(lit TypedLiteral) (Temporal, error) {
	switch lit.datatype {
	case vocabulary.XSDDateTime, vocabulary.XSDDateTimeStamp, vocabulary.XSDDate:
	default:
		return Temporal{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s is not a date or dateTime datatype", errors.ErrParsingFailed, lit.datatype),
			"rdf", "ParseTemporal", "datatype check")
	}
	if !IsWellFormed(lit) {
		return Temporal{}, errors.WrapInvalid(
			fmt.Errorf("%w: %q is not a valid %s", errors.ErrParsingFailed, lit.text, lit.datatype),
			"rdf", "ParseTemporal", "lexical validation")
	}

	m := temporalComponents.FindStringSubmatch(strings.TrimSpace(lit.text))
	if m == nil {
		return Temporal{}, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrParsingFailed, lit.text), "rdf", "ParseTemporal", "component match")
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Temporal{}, errors.WrapInvalid(
			fmt.Errorf("%w: year %q: %v", errors.ErrParsingFailed, m[1], err), "rdf", "ParseTemporal", "year parse")
	}
	t := Temporal{Year: year, Second: "00"}
	t.Month, _ = strconv.Atoi(m[2])
	t.Day, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		t.HasTime = true
		t.Hour, _ = strconv.Atoi(m[4])
		t.Minute, _ = strconv.Atoi(m[5])
		t.Second = m[6]
	}
	if m[7] != "" {
		t.HasTimezone = true
		t.zone = m[7]
		if m[7] != "Z" {
			h, _ := strconv.Atoi(m[7][1:3])
			mm, _ := strconv.Atoi(m[7][4:6])
			t.Offset = h*60 + mm
			if m[7][0] == '-' {
				t.Offset = -t.Offset
			}
		}
	}
	return t, nil
}

// TemporalOf returns the components of t when t is a well-formed date or
// dateTime literal.
func TemporalOf(t Term) (Temporal, bool) {
	lit, ok := t.(TypedLiteral)
	if !ok {
		return Temporal{}, false
	}
	v, err := ParseTemporal(lit)
	if err != nil {
		return Temporal{}, false
	}
	return v, true
}

// Seconds returns the seconds component as a decimal lexical form that keeps
// the fractional digits of the source: "24.612", "24.0", "0.417", "0.0".
func (t Temporal) Seconds() string {
	whole, frac, _ := strings.Cut(t.Second, ".")
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	if frac == "" {
		frac = "0"
	}
	return whole + "." + frac
}

// TimezoneDuration returns the timezone offset as an xsd:dayTimeDuration
// lexical form ("PT0S", "PT2H", "-PT5H30M"). It reports false when the value
// has no timezone.
func (t Temporal) TimezoneDuration() (string, bool) {
	if !t.HasTimezone {
		return "", false
	}
	if t.Offset == 0 {
		return "PT0S", true
	}
	var b strings.Builder
	abs := t.Offset
	if abs < 0 {
		b.WriteByte('-')
		abs = -abs
	}
	b.WriteString("PT")
	if h := abs / 60; h > 0 {
		b.WriteString(strconv.Itoa(h))
		b.WriteByte('H')
	}
	if m := abs % 60; m > 0 {
		b.WriteString(strconv.Itoa(m))
		b.WriteByte('M')
	}
	return b.String(), true
}

// Zone returns the lexical timezone ("Z", "+02:00") or "" when absent.
func (t Temporal) Zone() string { return t.zone }

// Time returns the instant denoted by the value. Values without timezone are
// placed in UTC; callers compare them only with other local values.
func (t Temporal) Time() time.Time {
	loc := time.UTC
	if t.HasTimezone && t.Offset != 0 {
		loc = time.FixedZone(t.zone, t.Offset*60)
	}
	secs, err := decimal.NewFromString(t.Second)
	if err != nil {
		secs = decimal.Zero
	}
	whole := secs.IntPart()
	nanos := secs.Sub(decimal.NewFromInt(whole)).Shift(9).IntPart()
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, int(whole), int(nanos), loc)
}

// CompareTemporal orders two values by instant. The second result is false
// when exactly one side carries a timezone, which leaves them incomparable.
func CompareTemporal(a, b Temporal) (int, bool) {
	if a.HasTimezone != b.HasTimezone {
		return 0, false
	}
	ta, tb := a.Time(), b.Time()
	switch {
	case ta.Before(tb):
		return -1, true
	case ta.After(tb):
		return 1, true
	default:
		return 0, true
	}
}

// FormatDateTime renders t as an xsd:dateTime lexical form.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.999999999Z07:00")
}

// NewDateTimeLiteral creates an xsd:dateTime literal for t.
func NewDateTimeLiteral(t time.Time) TypedLiteral {
	return NewTypedLiteral(FormatDateTime(t), vocabulary.XSDDateTime)
}
