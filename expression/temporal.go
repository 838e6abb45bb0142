package expression

import (
	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func (e *Evaluator) registerTemporal() {
	e.operators[KindNow] = func(*Expression, binding.Row) (rdf.Term, bool) {
		return rdf.NewDateTimeLiteral(e.now()), true
	}
	e.operators[KindYear] = e.component(false, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewIntegerLiteral(int64(v.Year)), true
	})
	e.operators[KindMonth] = e.component(false, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewIntegerLiteral(int64(v.Month)), true
	})
	e.operators[KindDay] = e.component(false, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewIntegerLiteral(int64(v.Day)), true
	})
	e.operators[KindHours] = e.component(true, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewIntegerLiteral(int64(v.Hour)), true
	})
	e.operators[KindMinutes] = e.component(true, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewIntegerLiteral(int64(v.Minute)), true
	})
	e.operators[KindSeconds] = e.component(true, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewTypedLiteral(v.Seconds(), vocabulary.XSDDecimal), true
	})
	e.operators[KindTimezone] = e.component(false, func(v rdf.Temporal) (rdf.Term, bool) {
		d, ok := v.TimezoneDuration()
		if !ok {
			return nil, false
		}
		return rdf.NewTypedLiteral(d, vocabulary.XSDDayTimeDuration), true
	})
	e.operators[KindTZ] = e.component(false, func(v rdf.Temporal) (rdf.Term, bool) {
		return rdf.NewPlainLiteral(v.Zone()), true
	})
}

// component extracts a value from a date or dateTime operand. Components
// that need a time of day reject plain dates.
func (e *Evaluator) component(needsTime bool, get func(rdf.Temporal) (rdf.Term, bool)) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		v, ok := rdf.TemporalOf(t)
		if !ok || (needsTime && !v.HasTime) {
			return nil, false
		}
		return get(v)
	}
}
