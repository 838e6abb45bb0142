package expression

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// divisionScale bounds the fractional digits of an exact quotient.
const divisionScale = 18

type arithmeticOp uint8

const (
	opAdd arithmeticOp = iota
	opSubtract
	opMultiply
	opDivide
)

var half = decimal.New(5, -1)

func (e *Evaluator) registerArithmetic() {
	e.operators[KindAdd] = e.binaryNumeric(opAdd)
	e.operators[KindSubtract] = e.binaryNumeric(opSubtract)
	e.operators[KindMultiply] = e.binaryNumeric(opMultiply)
	e.operators[KindDivide] = e.binaryNumeric(opDivide)

	e.operators[KindAbs] = e.unaryNumeric(decimal.Decimal.Abs, math.Abs)
	e.operators[KindCeil] = e.unaryNumeric(decimal.Decimal.Ceil, math.Ceil)
	e.operators[KindFloor] = e.unaryNumeric(decimal.Decimal.Floor, math.Floor)
	e.operators[KindRound] = e.unaryNumeric(
		func(d decimal.Decimal) decimal.Decimal { return d.Add(half).Floor() },
		func(f float64) float64 { return math.Floor(f + 0.5) },
	)
}

func (e *Evaluator) numeric(a Argument, row binding.Row) (rdf.Numeric, bool) {
	t, ok := e.value(a, row)
	if !ok {
		return rdf.Numeric{}, false
	}
	return rdf.NumericOf(t)
}

func (e *Evaluator) binaryNumeric(op arithmeticOp) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		a, ok := e.numeric(x.args[0], row)
		if !ok {
			return nil, false
		}
		b, ok := e.numeric(x.args[1], row)
		if !ok {
			return nil, false
		}
		n, ok := arithmetic(op, a, b)
		if !ok {
			return nil, false
		}
		return n.Literal(), true
	}
}

// arithmetic applies op after promoting both operands to a common type.
// Integer and decimal operands stay exact and integer division yields a
// decimal. Finite float and double operands are added, subtracted and
// multiplied exactly before converting back, so 25 + 5.1 is 30.1.
func arithmetic(op arithmeticOp, a, b rdf.Numeric) (rdf.Numeric, bool) {
	datatype, rank := rdf.Promote(a, b)
	if rank >= rdf.RankFloat {
		if op != opDivide && a.IsFinite() && b.IsFinite() {
			d, _ := exact(op, a.Decimal(), b.Decimal())
			return rdf.NewFloatNumeric(d.InexactFloat64(), datatype), true
		}
		return rdf.NewFloatNumeric(approximate(op, a.Float64(), b.Float64()), datatype), true
	}

	if op == opDivide && rank == rdf.RankInteger {
		datatype = vocabulary.XSDDecimal
	}
	d, ok := exact(op, a.Decimal(), b.Decimal())
	if !ok {
		return rdf.Numeric{}, false
	}
	return rdf.NewExactNumeric(d, datatype), true
}

func exact(op arithmeticOp, a, b decimal.Decimal) (decimal.Decimal, bool) {
	switch op {
	case opAdd:
		return a.Add(b), true
	case opSubtract:
		return a.Sub(b), true
	case opMultiply:
		return a.Mul(b), true
	default:
		if b.IsZero() {
			return decimal.Decimal{}, false
		}
		return a.DivRound(b, divisionScale), true
	}
}

func approximate(op arithmeticOp, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSubtract:
		return a - b
	case opMultiply:
		return a * b
	default:
		return a / b
	}
}

// unaryNumeric keeps the operand's datatype. Infinite and NaN operands go
// through the float function, everything else through the exact one.
func (e *Evaluator) unaryNumeric(exactFn func(decimal.Decimal) decimal.Decimal, floatFn func(float64) float64) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		n, ok := e.numeric(x.args[0], row)
		if !ok {
			return nil, false
		}
		switch {
		case !n.IsFinite():
			n = rdf.NewFloatNumeric(floatFn(n.Float64()), n.Datatype())
		case n.IsApproximate():
			n = rdf.NewFloatNumeric(exactFn(n.Decimal()).InexactFloat64(), n.Datatype())
		default:
			n = rdf.NewExactNumeric(exactFn(n.Decimal()), n.Datatype())
		}
		return n.Literal(), true
	}
}
