package expression

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/geometry"
	"github.com/c360/semsparql/metric"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// OperatorFunc evaluates one operator node against a row. The second result
// is false when the node produces no value for the row.
type OperatorFunc func(x *Expression, row binding.Row) (rdf.Term, bool)

// RandomSource yields uniformly distributed values in [0, 1). It must be
// safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// lockedRandom serializes access to a seeded generator.
type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// NewSeededRandom returns a reproducible RandomSource.
func NewSeededRandom(seed uint64) RandomSource {
	return &lockedRandom{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Evaluator evaluates expression trees against binding rows. It holds no
// per-row state and is safe for concurrent use.
type Evaluator struct {
	operators map[Kind]OperatorFunc
	random    RandomSource
	now       func() time.Time
	geometry  *geometry.Engine
	logger    *slog.Logger
	metrics   *metric.Metrics
}

// Option is a functional option for configuring the Evaluator
type Option func(*Evaluator) error

// WithRandomSource sets the generator behind RAND
func WithRandomSource(src RandomSource) Option {
	return func(e *Evaluator) error {
		if src == nil {
			return errors.NilArgument("Evaluator", "random source")
		}
		e.random = src
		return nil
	}
}

// WithRandomSeed makes RAND reproducible
func WithRandomSeed(seed uint64) Option {
	return func(e *Evaluator) error {
		e.random = NewSeededRandom(seed)
		return nil
	}
}

// WithClock sets the time source behind NOW
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) error {
		if now == nil {
			return errors.NilArgument("Evaluator", "clock")
		}
		e.now = now
		return nil
	}
}

// WithGeometryEngine sets the engine behind the GeoSPARQL functions
func WithGeometryEngine(engine *geometry.Engine) Option {
	return func(e *Evaluator) error {
		if engine == nil {
			return errors.NilArgument("Evaluator", "geometry engine")
		}
		e.geometry = engine
		return nil
	}
}

// WithLogger sets the logger. Rows without a value are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMetrics records every Evaluate call in registry
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(e *Evaluator) error {
		if registry != nil {
			e.metrics = registry.CoreMetrics()
		}
		return nil
	}
}

// NewEvaluator creates an evaluator with every operator registered.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		operators: make(map[Kind]OperatorFunc, kindCount),
		random:    globalRandom{},
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.geometry == nil {
		engine, err := geometry.NewEngine(geometry.WithLogger(e.logger))
		if err != nil {
			return nil, errors.Wrap(err, "Evaluator", "NewEvaluator", "geometry engine creation")
		}
		e.geometry = engine
	}

	e.registerArithmetic()
	e.registerComparison()
	e.registerLogic()
	e.registerStrings()
	e.registerHashes()
	e.registerTerms()
	e.registerLanguage()
	e.registerTemporal()
	e.registerGeo()

	return e, nil
}

// Evaluate evaluates x against row. The second result is false when the
// expression produces no value for the row, which is ordinary SPARQL
// error propagation rather than a fault.
func (e *Evaluator) Evaluate(x *Expression, row binding.Row) (rdf.Term, bool) {
	if x == nil {
		return nil, false
	}
	if row == nil {
		row = binding.Empty
	}

	var start time.Time
	if e.metrics != nil {
		start = time.Now()
	}

	term, ok := e.eval(x, row)

	if e.metrics != nil {
		e.metrics.RecordEvaluation(x.kind.String(), ok, time.Since(start))
	}
	if !ok && e.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.logger.Debug("expression produced no value", "expression", x.String())
	}
	return term, ok
}

// Compile parses text like Parse and counts rejected trees by operator.
// Syntax errors are counted under "parse".
func (e *Evaluator) Compile(text string, ns *vocabulary.Namespaces) (*Expression, error) {
	x, err := Parse(text, ns)
	if err != nil && e.metrics != nil {
		operator := "parse"
		var classified *errors.ClassifiedError
		if errors.IsFatal(err) && stderrors.As(err, &classified) {
			operator = classified.Component
		}
		e.metrics.RecordConstructionError(operator)
	}
	return x, err
}

// Evaluate evaluates x against row with a shared default Evaluator.
func (x *Expression) Evaluate(row binding.Row) (rdf.Term, bool) {
	e, err := defaultEvaluator()
	if err != nil {
		return nil, false
	}
	return e.Evaluate(x, row)
}

var defaultEvaluator = sync.OnceValues(func() (*Evaluator, error) {
	return NewEvaluator()
})

func (e *Evaluator) eval(x *Expression, row binding.Row) (rdf.Term, bool) {
	op, ok := e.operators[x.kind]
	if !ok {
		return nil, false
	}
	return op(x, row)
}

var emptyLiteral = rdf.NewPlainLiteral("")

// value resolves an argument. A null cell reads as the empty plain literal;
// a column missing from the row leaves the argument unresolved.
func (e *Evaluator) value(a Argument, row binding.Row) (rdf.Term, bool) {
	switch v := a.(type) {
	case Variable:
		text, present, bound := row.Lookup(v.name)
		if !present {
			return nil, false
		}
		if !bound {
			return emptyLiteral, true
		}
		return rdf.Parse(text), true
	case Constant:
		return v.term, v.term != nil
	case *Expression:
		return e.eval(v, row)
	default:
		return nil, false
	}
}

// boundValue resolves an argument like value but leaves null cells
// unresolved. BOUND, COALESCE and IN candidates use it.
func (e *Evaluator) boundValue(a Argument, row binding.Row) (rdf.Term, bool) {
	if v, ok := a.(Variable); ok {
		text, _, bound := row.Lookup(v.name)
		if !bound {
			return nil, false
		}
		return rdf.Parse(text), true
	}
	return e.value(a, row)
}

func boolean(v bool) (rdf.Term, bool) {
	if v {
		return rdf.True, true
	}
	return rdf.False, true
}
