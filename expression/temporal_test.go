package expression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func TestEvaluator_DateTimeComponents(t *testing.T) {
	e := newTestEvaluator(t)
	r := row(map[string]string{
		"?A": "2024-02-29T10:15:24.612+05:30^^" + vocabulary.XSDDateTime,
		"?B": "2024-02-29^^" + vocabulary.XSDDate,
		"?C": "2024-02-29T10:15:24^^" + vocabulary.XSDDateTime,
	})
	integer := func(v int64) rdf.Term { return rdf.NewIntegerLiteral(v) }

	tests := []evalCase{
		{"year", Must(New(KindYear, varA)), r, integer(2024)},
		{"month", Must(New(KindMonth, varA)), r, integer(2)},
		{"day", Must(New(KindDay, varA)), r, integer(29)},
		{"hours", Must(New(KindHours, varA)), r, integer(10)},
		{"minutes", Must(New(KindMinutes, varA)), r, integer(15)},
		{"seconds", Must(New(KindSeconds, varA)), r, rdf.NewTypedLiteral("24.612", vocabulary.XSDDecimal)},
		{"timezone", Must(New(KindTimezone, varA)), r, rdf.NewTypedLiteral("PT5H30M", vocabulary.XSDDayTimeDuration)},
		{"tz", Must(New(KindTZ, varA)), r, rdf.NewPlainLiteral("+05:30")},
		{"date_year", Must(New(KindYear, varB)), r, integer(2024)},
		{"date_hours", Must(New(KindHours, varB)), r, nil},
		{"local_timezone", Must(New(KindTimezone, varC)), r, nil},
		{"local_tz", Must(New(KindTZ, varC)), r, rdf.NewPlainLiteral("")},
		{"not_temporal", Must(New(KindYear, hello)), nil, nil},
		{"malformed", Must(New(KindMonth, typedLit("2024-13-01T00:00:00Z", vocabulary.XSDDateTime))), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_NowRoundTrips(t *testing.T) {
	ts := time.Date(2025, 7, 4, 8, 30, 0, 0, time.UTC)
	e := newTestEvaluator(t, WithClock(func() time.Time { return ts }))

	year, ok := e.Evaluate(Must(New(KindYear, Must(New(KindNow)))), nil)
	require.True(t, ok)
	assert.True(t, rdf.NewIntegerLiteral(2025).Equal(year))

	tz, ok := e.Evaluate(Must(New(KindTZ, Must(New(KindNow)))), nil)
	require.True(t, ok)
	assert.Equal(t, "Z", rdf.StringValue(tz))
}
