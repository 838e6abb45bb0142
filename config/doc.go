// Package config loads the expression engine configuration.
//
// Configuration files are JSON or YAML. The Loader reads one or more layers,
// merges them over the defaults, applies SPARQLEXPR_* environment overrides
// and validates the result twice: structurally against an embedded JSON
// schema and semantically with Config.Validate.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("engine.yaml")
//	loader.EnableValidation(true)
//
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ns, err := cfg.NamespaceTable()
//
// # Layout
//
//	namespaces:            # merged over the default prefixes
//	  - prefix: ex
//	    uri: http://example.org/
//	evaluator:
//	  rand_seed: 42        # optional, makes RAND reproducible
//	  buffer_segments: 32  # circle resolution for geof:buffer
//	  geometry_cache_size: 256
//	metrics:
//	  enabled: true
//	logging:
//	  level: info          # debug, info, warn, error
//	  format: json         # json, text
//
// # Thread-Safe Access
//
// SafeConfig guards a Config with an RWMutex and hands out deep copies, so
// callers can never mutate the shared value.
package config
