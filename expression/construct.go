package expression

import (
	"fmt"
	"math"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/geometry"
)

// isNil reports whether a is missing: a nil interface, a nil *Expression,
// a Constant without term or a Variable without name.
func isNil(a Argument) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *Expression:
		return v == nil
	case Constant:
		return v.term == nil
	case Variable:
		return v.name == "" || v.name == "?"
	default:
		return false
	}
}

func argName(i int) string {
	switch i {
	case 0:
		return "left"
	case 1:
		return "right"
	default:
		return fmt.Sprintf("argument %d", i+1)
	}
}

func checkArgs(kind Kind, args []Argument) error {
	info := kinds[kind]
	if len(args) < info.minArgs || (info.maxArgs != unbounded && len(args) > info.maxArgs) {
		want := fmt.Sprintf("%d", info.minArgs)
		switch {
		case info.maxArgs == unbounded:
			want = fmt.Sprintf("at least %d", info.minArgs)
		case info.maxArgs != info.minArgs:
			want = fmt.Sprintf("%d to %d", info.minArgs, info.maxArgs)
		}
		return errors.InvalidParameter(kind.String(), fmt.Sprintf("expects %s arguments, got %d", want, len(args)))
	}
	for i, a := range args {
		if isNil(a) {
			return errors.NilArgument(kind.String(), argName(i))
		}
	}
	return nil
}

// New builds an expression for any operator without fixed parameters.
// REGEX, REPLACE, IN, NOT IN and geof:buffer have their own constructors.
func New(kind Kind, args ...Argument) (*Expression, error) {
	if kind == KindInvalid || kind >= kindCount {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %d", errors.ErrUnknownOperator, kind), "expression", "New", "operator lookup")
	}
	if kinds[kind].special {
		return nil, errors.InvalidParameter(kind.String(), "operator has fixed parameters, use its dedicated constructor")
	}
	if err := checkArgs(kind, args); err != nil {
		return nil, err
	}
	if kind == KindBound {
		if _, ok := args[0].(Variable); !ok {
			return nil, errors.InvalidParameter(kind.String(), "argument must be a variable")
		}
	}
	return &Expression{kind: kind, args: append([]Argument(nil), args...)}, nil
}

// NewRegex builds REGEX(arg, pattern, flags). Flags are any of i, s, m, x.
func NewRegex(arg Argument, pattern, flags string) (*Expression, error) {
	if err := checkArgs(KindRegex, []Argument{arg}); err != nil {
		return nil, err
	}
	compiled, err := compilePattern(pattern, flags)
	if err != nil {
		return nil, errors.InvalidParameter(KindRegex.String(), err.Error())
	}
	return &Expression{kind: KindRegex, args: []Argument{arg}, pattern: compiled}, nil
}

// NewReplace builds REPLACE(arg, pattern, replacement, flags). The
// replacement may reference groups as $1..$n.
func NewReplace(arg Argument, pattern, replacement, flags string) (*Expression, error) {
	if err := checkArgs(KindReplace, []Argument{arg}); err != nil {
		return nil, err
	}
	compiled, err := compilePattern(pattern, flags)
	if err != nil {
		return nil, errors.InvalidParameter(KindReplace.String(), err.Error())
	}
	if compiled.re.MatchString("") {
		return nil, errors.InvalidParameter(KindReplace.String(), fmt.Sprintf("pattern %q matches the empty string", pattern))
	}
	expanded, err := sparqlReplacement(replacement)
	if err != nil {
		return nil, errors.InvalidParameter(KindReplace.String(), err.Error())
	}
	return &Expression{kind: KindReplace, args: []Argument{arg}, pattern: compiled,
		replacement: replacement, template: expanded}, nil
}

// NewIn builds (arg IN (candidates...)). An empty candidate list is allowed
// and evaluates to false.
func NewIn(arg Argument, candidates ...Argument) (*Expression, error) {
	return newMembership(KindIn, arg, candidates)
}

// NewNotIn builds (arg NOT IN (candidates...)).
func NewNotIn(arg Argument, candidates ...Argument) (*Expression, error) {
	return newMembership(KindNotIn, arg, candidates)
}

func newMembership(kind Kind, arg Argument, candidates []Argument) (*Expression, error) {
	if err := checkArgs(kind, []Argument{arg}); err != nil {
		return nil, err
	}
	for i, c := range candidates {
		if isNil(c) {
			return nil, errors.NilArgument(kind.String(), fmt.Sprintf("candidate %d", i+1))
		}
	}
	return &Expression{kind: kind, args: []Argument{arg}, candidates: append([]Argument(nil), candidates...)}, nil
}

// NewBuffer builds geof:buffer(arg, distance, uom). The unit must be a
// length; distance must be finite and not negative.
func NewBuffer(arg Argument, distance float64, uom string) (*Expression, error) {
	if err := checkArgs(KindGeoBuffer, []Argument{arg}); err != nil {
		return nil, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return nil, errors.InvalidParameter(KindGeoBuffer.String(), fmt.Sprintf("distance %v", distance))
	}
	metres, ok := geometry.MetresPer(distance, uom)
	if !ok {
		return nil, errors.InvalidParameter(KindGeoBuffer.String(), fmt.Sprintf("unit of measure %q is not a length", uom))
	}
	return &Expression{kind: KindGeoBuffer, args: []Argument{arg}, distance: distance, uom: uom, metres: metres}, nil
}

// Must returns x or panics when err is not nil. It is intended for trees
// built from fixed arguments, like regexp.MustCompile.
func Must(x *Expression, err error) *Expression {
	if err != nil {
		panic(err)
	}
	return x
}
