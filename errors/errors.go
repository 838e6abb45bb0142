package errors

import (
	"errors"
	"fmt"
)

// ErrorClass tells a caller what to do with a failure.
type ErrorClass int

const (
	// ErrorTransient may succeed when retried.
	ErrorTransient ErrorClass = iota
	// ErrorInvalid is bad input; retrying with the same input fails again.
	ErrorInvalid
	// ErrorFatal is a structural fault; the caller must stop.
	ErrorFatal
)

var classNames = [...]string{
	ErrorTransient: "transient",
	ErrorInvalid:   "invalid",
	ErrorFatal:     "fatal",
}

func (ec ErrorClass) String() string {
	if ec < 0 || int(ec) >= len(classNames) {
		return "unknown"
	}
	return classNames[ec]
}

// Construction errors. A tree built with one of these can never evaluate.
var (
	ErrNilArgument      = errors.New("mandatory argument is nil")
	ErrInvalidParameter = errors.New("invalid expression parameter")
	ErrUnknownOperator  = errors.New("unknown operator")
)

// Input errors raised while reading terms, geometries, rows or config.
var (
	ErrInvalidData   = errors.New("invalid data format")
	ErrParsingFailed = errors.New("parsing failed")
	ErrUnsupported   = errors.New("unsupported datatype")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// sentinelClass classifies errors that were never wrapped in a
// ClassifiedError. Order matters: the first match wins.
var sentinelClass = []struct {
	err   error
	class ErrorClass
}{
	{ErrNilArgument, ErrorFatal},
	{ErrInvalidParameter, ErrorFatal},
	{ErrUnknownOperator, ErrorFatal},
	{ErrInvalidConfig, ErrorFatal},
	{ErrInvalidData, ErrorInvalid},
	{ErrParsingFailed, ErrorInvalid},
	{ErrUnsupported, ErrorInvalid},
}

// ClassifiedError carries a class and the component and operation that
// raised it. Message, when set, replaces the wrapped error's text.
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// classOf reports the class of err. The outermost ClassifiedError wins over
// any sentinel further down the chain.
func classOf(err error) (ErrorClass, bool) {
	if err == nil {
		return 0, false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class, true
	}
	for _, s := range sentinelClass {
		if errors.Is(err, s.err) {
			return s.class, true
		}
	}
	return 0, false
}

// IsTransient reports whether err was explicitly classified as transient.
func IsTransient(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorTransient
}

// IsFatal reports whether err is fatal, either by classification or because
// it wraps a construction sentinel or ErrInvalidConfig.
func IsFatal(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorFatal
}

// IsInvalid reports whether err is an input error.
func IsInvalid(err error) bool {
	class, ok := classOf(err)
	return ok && class == ErrorInvalid
}

// Classify returns the class of err. Unclassified errors count as invalid;
// nil is transient so that a retry loop treats it as nothing to act on.
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorTransient
	}
	if class, ok := classOf(err); ok {
		return class
	}
	return ErrorInvalid
}

// Wrap adds context in the form "component.method: action failed: cause".
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

func wrapAs(class ErrorClass, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{
		Class:     class,
		Err:       wrapped,
		Message:   wrapped.Error(),
		Component: component,
		Operation: method,
	}
}

// WrapTransient is Wrap plus the transient class.
func WrapTransient(err error, component, method, action string) error {
	return wrapAs(ErrorTransient, err, component, method, action)
}

// WrapFatal is Wrap plus the fatal class.
func WrapFatal(err error, component, method, action string) error {
	return wrapAs(ErrorFatal, err, component, method, action)
}

// WrapInvalid is Wrap plus the invalid class.
func WrapInvalid(err error, component, method, action string) error {
	return wrapAs(ErrorInvalid, err, component, method, action)
}

// NilArgument is the error an operator constructor returns when a mandatory
// argument is missing.
func NilArgument(operator, argument string) error {
	return WrapFatal(fmt.Errorf("%w: %s", ErrNilArgument, argument), operator, "New", "argument validation")
}

// InvalidParameter is the error an operator constructor returns when a fixed
// parameter (regex, flags, distance) is unusable.
func InvalidParameter(operator, detail string) error {
	return WrapFatal(fmt.Errorf("%w: %s", ErrInvalidParameter, detail), operator, "New", "parameter validation")
}
