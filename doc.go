// Package semsparql evaluates SPARQL 1.1 / 1.2 scalar expressions against
// rows of variable bindings.
//
// # Architecture
//
// The module is a library with a thin command on top:
//
//	┌─────────────────────────────────────┐
//	│        cmd/sparqlexpr               │  Flags, logging, output
//	└─────────────────────────────────────┘
//	           ↓ compiles and evaluates
//	┌─────────────────────────────────────┐
//	│         expression                  │  Expression trees, parser,
//	│   (construct, parse, evaluate)      │  operator semantics
//	└─────────────────────────────────────┘
//	           ↓ reads terms from
//	┌─────────────────────────────────────┐
//	│   binding      rdf      geometry    │  Rows, RDF terms and
//	│                                     │  datatypes, GeoSPARQL
//	└─────────────────────────────────────┘
//
// Supporting packages:
//   - vocabulary: standard IRIs and prefix tables
//   - config: layered JSON/YAML configuration with schema validation
//   - errors: error classification (Invalid, Fatal, Transient)
//   - metric: Prometheus registry and core engine metrics
//   - pkg/cache: LRU caches for parsed geometries and compiled patterns
//   - pkg/worker: worker pool and order-preserving parallel Map
//
// # Two failure channels
//
// Building an expression tree can fail with an error: a missing argument or
// an unusable fixed parameter is a Fatal error wrapping ErrNilArgument or
// ErrInvalidParameter. Evaluating a tree never fails. A row that cannot
// produce a value yields "no result" (the second return of Evaluate is
// false) and the caller leaves that row's projection unbound.
//
// # Quick Start
//
//	evaluator, err := expression.NewEvaluator()
//	if err != nil {
//	    return err
//	}
//	x, err := evaluator.Compile(`CONCAT(?name, "@", ?domain)`, vocabulary.DefaultNamespaces())
//	if err != nil {
//	    return err
//	}
//	row := binding.NewRow(map[string]string{"?name": "ada", "?domain": "example.org"})
//	term, ok := evaluator.Evaluate(x, row)
//
// The same flow from the command line:
//
//	sparqlexpr -expr 'CONCAT(?name, "@", ?domain)' -rows results.json
//
// # Testing
//
//	go test ./...
//	go test -race ./pkg/... ./expression/...
//	go test ./expression -update   # regenerate golden renderings
package semsparql
