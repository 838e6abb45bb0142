package expression

import (
	"strings"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
)

func (e *Evaluator) registerComparison() {
	for _, kind := range []Kind{KindEqual, KindNotEqual, KindLess, KindLessOrEqual, KindGreater, KindGreaterOrEqual} {
		e.operators[kind] = e.comparison(kind)
	}
}

func (e *Evaluator) comparison(kind Kind) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		a, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		b, ok := e.value(x.args[1], row)
		if !ok {
			return nil, false
		}

		if an, ok := rdf.NumericOf(a); ok {
			if bn, ok := rdf.NumericOf(b); ok {
				cmp, ok := an.Compare(bn)
				if !ok {
					// NaN compares false with everything, itself included.
					return boolean(kind == KindNotEqual)
				}
				return boolean(holds(kind, cmp))
			}
		}

		cmp, ordered, ok := compareTerms(a, b)
		if !ok {
			return nil, false
		}
		if !ordered && kind != KindEqual && kind != KindNotEqual {
			return nil, false
		}
		return boolean(holds(kind, cmp))
	}
}

func holds(kind Kind, cmp int) bool {
	switch kind {
	case KindEqual:
		return cmp == 0
	case KindNotEqual:
		return cmp != 0
	case KindLess:
		return cmp < 0
	case KindLessOrEqual:
		return cmp <= 0
	case KindGreater:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// compareTerms orders two non-numeric terms. ordered is false for pairs that
// only support (in)equality, in which case cmp is 0 for equal terms and 1
// otherwise. ok is false when the pair cannot be compared at all.
func compareTerms(a, b rdf.Term) (cmp int, ordered, ok bool) {
	if at, ok := rdf.TemporalOf(a); ok {
		if bt, ok := rdf.TemporalOf(b); ok {
			cmp, ok := rdf.CompareTemporal(at, bt)
			return cmp, ok, ok
		}
	}
	if av, ok := rdf.ParseBoolean(a); ok {
		if bv, ok := rdf.ParseBoolean(b); ok {
			return compareBool(av, bv), true, true
		}
	}
	if rdf.IsSimpleLiteral(a) && rdf.IsSimpleLiteral(b) {
		return strings.Compare(rdf.StringValue(a), rdf.StringValue(b)), true, true
	}
	if la, ok := a.(rdf.PlainLiteral); ok && la.HasLanguage() {
		if lb, ok := b.(rdf.PlainLiteral); ok && strings.EqualFold(la.Language(), lb.Language()) && la.Direction() == lb.Direction() {
			return strings.Compare(la.Text(), lb.Text()), true, true
		}
	}
	if a.Equal(b) {
		return 0, false, true
	}
	return 1, false, true
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
