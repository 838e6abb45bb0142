package expression

import (
	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func (e *Evaluator) registerLogic() {
	e.operators[KindAnd] = e.and
	e.operators[KindOr] = e.or
	e.operators[KindNot] = e.not
	e.operators[KindIf] = e.ifThenElse
	e.operators[KindCoalesce] = e.coalesce
	e.operators[KindIn] = e.membership(true)
	e.operators[KindNotIn] = e.membership(false)
	e.operators[KindBound] = e.bound
	e.operators[KindSameTerm] = e.sameTerm

	e.operators[KindIsIRI] = e.termTest(func(t rdf.Term) bool {
		r, ok := t.(rdf.Resource)
		return ok && !r.IsBlank()
	})
	e.operators[KindIsBlank] = e.termTest(func(t rdf.Term) bool {
		r, ok := t.(rdf.Resource)
		return ok && r.IsBlank()
	})
	e.operators[KindIsLiteral] = e.termTest(rdf.IsLiteral)
	e.operators[KindIsNumeric] = e.termTest(func(t rdf.Term) bool {
		_, ok := rdf.NumericOf(t)
		return ok
	})
}

// EffectiveBooleanValue reduces a term to a truth value. Booleans give their
// value, numerics are true unless zero or NaN, and string literals are true
// unless empty. Other terms have no truth value.
func EffectiveBooleanValue(t rdf.Term) (bool, bool) {
	switch v := t.(type) {
	case rdf.PlainLiteral:
		return v.Text() != "", true
	case rdf.TypedLiteral:
		switch {
		case v.Datatype() == vocabulary.XSDBoolean:
			b, ok := rdf.ParseBoolean(v)
			return b && ok, true
		case rdf.RankOf(v.Datatype()) != rdf.RankNone:
			n, ok := rdf.NumericOf(v)
			return ok && !n.IsZero() && !n.IsNaN(), true
		case v.Category() == rdf.CategoryString:
			return v.Text() != "", true
		}
	}
	return false, false
}

func (e *Evaluator) truth(a Argument, row binding.Row) (bool, bool) {
	t, ok := e.value(a, row)
	if !ok {
		return false, false
	}
	return EffectiveBooleanValue(t)
}

// and evaluates both sides. A false side decides the result even when the
// other side has no value.
func (e *Evaluator) and(x *Expression, row binding.Row) (rdf.Term, bool) {
	l, lok := e.truth(x.args[0], row)
	r, rok := e.truth(x.args[1], row)
	switch {
	case (lok && !l) || (rok && !r):
		return rdf.False, true
	case lok && rok:
		return rdf.True, true
	default:
		return nil, false
	}
}

// or evaluates both sides. A true side decides the result even when the
// other side has no value.
func (e *Evaluator) or(x *Expression, row binding.Row) (rdf.Term, bool) {
	l, lok := e.truth(x.args[0], row)
	r, rok := e.truth(x.args[1], row)
	switch {
	case (lok && l) || (rok && r):
		return rdf.True, true
	case lok && rok:
		return rdf.False, true
	default:
		return nil, false
	}
}

func (e *Evaluator) not(x *Expression, row binding.Row) (rdf.Term, bool) {
	v, ok := e.truth(x.args[0], row)
	if !ok {
		return nil, false
	}
	return boolean(!v)
}

// ifThenElse evaluates only the branch selected by the condition.
func (e *Evaluator) ifThenElse(x *Expression, row binding.Row) (rdf.Term, bool) {
	cond, ok := e.truth(x.args[0], row)
	if !ok {
		return nil, false
	}
	if cond {
		return e.value(x.args[1], row)
	}
	return e.value(x.args[2], row)
}

func (e *Evaluator) coalesce(x *Expression, row binding.Row) (rdf.Term, bool) {
	for _, a := range x.args {
		if t, ok := e.boundValue(a, row); ok {
			return t, true
		}
	}
	return nil, false
}

// membership tests the left operand against the candidates by term
// equality. Candidates without a value never match.
func (e *Evaluator) membership(in bool) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		for _, c := range x.candidates {
			if ct, ok := e.boundValue(c, row); ok && ct.Equal(t) {
				return boolean(in)
			}
		}
		return boolean(!in)
	}
}

func (e *Evaluator) bound(x *Expression, row binding.Row) (rdf.Term, bool) {
	v := x.args[0].(Variable)
	_, _, bound := row.Lookup(v.name)
	return boolean(bound)
}

func (e *Evaluator) sameTerm(x *Expression, row binding.Row) (rdf.Term, bool) {
	a, ok := e.value(x.args[0], row)
	if !ok {
		return nil, false
	}
	b, ok := e.value(x.args[1], row)
	if !ok {
		return nil, false
	}
	return boolean(a.Equal(b))
}

func (e *Evaluator) termTest(test func(rdf.Term) bool) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		return boolean(test(t))
	}
}
