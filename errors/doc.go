// Package errors provides the error classification shared by every package of
// the expression engine.
//
// # Overview
//
// Errors fall into three classes: Invalid (bad input, do not retry), Fatal
// (a structural fault that must stop the caller) and Transient (a temporary
// condition such as an exhausted resource). The class travels with the error
// through wrapping chains, so callers decide on the standard errors.Is and
// the Is* helpers rather than on message text.
//
// Two failure channels exist in the engine and only one of them uses errors:
//
//   - Building an expression tree with a missing argument or an unusable fixed
//     parameter (a nil regex, a negative buffer distance) returns a Fatal error
//     wrapping ErrNilArgument or ErrInvalidParameter.
//   - Evaluating a tree against a binding row never returns an error. A row
//     that cannot produce a value yields "no result", which is ordinary SPARQL
//     semantics and not a fault.
//
// Parsing helpers in the rdf, geometry and config packages return Invalid
// errors wrapping ErrParsingFailed, ErrInvalidData or ErrInvalidConfig.
//
// # Quick Start
//
// Wrap errors with component context:
//
//	if err := json.Unmarshal(data, &cfg); err != nil {
//	    return errors.WrapInvalid(err, "config", "Load", "JSON decode")
//	}
//
// Report construction failures:
//
//	if left == nil {
//	    return nil, errors.NilArgument("ADD", "left")
//	}
//
// Check classification:
//
//	expr, err := expression.NewAdd(left, right)
//	if errors.IsFatal(err) && stderrors.Is(err, errors.ErrNilArgument) {
//	    // the query builder produced an incomplete tree
//	}
//
// # Message Format
//
// Wrapped errors read "component.method: action failed: cause", for example
// "ADD.New: argument validation failed: mandatory argument is nil: left".
//
// # Thread Safety
//
// All functions are safe for concurrent use. ClassifiedError values are
// immutable after creation.
package errors
