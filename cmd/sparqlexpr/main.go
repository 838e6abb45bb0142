// Package main implements sparqlexpr, a command that evaluates one SPARQL
// expression against each row of a result table.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/config"
	"github.com/c360/semsparql/expression"
	"github.com/c360/semsparql/geometry"
	"github.com/c360/semsparql/metric"
	"github.com/c360/semsparql/pkg/worker"
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sparqlexpr"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("Evaluation failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

// result is one line of output
type result struct {
	Row   int     `json:"row"`
	Value *string `json:"value"`
}

func run(args []string, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		return nil
	}

	cfg, err := loadConfig(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	ns, err := cfg.NamespaceTable()
	if err != nil {
		return fmt.Errorf("namespaces: %w", err)
	}

	var registry *metric.MetricsRegistry
	if cfg.Metrics.Enabled {
		registry = metric.NewMetricsRegistry()
	}

	evaluator, err := newEvaluator(cfg, logger, registry)
	if err != nil {
		return err
	}

	x, err := evaluator.Compile(cliCfg.Expression, ns)
	if err != nil {
		return fmt.Errorf("parse expression: %w", err)
	}
	logger.Debug("Expression parsed", "expression", x.Render(ns))

	if cliCfg.Validate {
		logger.Info("Expression is valid", "expression", x.Render(ns))
		return nil
	}

	rows, err := loadRows(cliCfg.RowsPath)
	if err != nil {
		return err
	}

	var poolOpts []worker.Option
	if registry != nil {
		poolOpts = append(poolOpts, worker.WithMetricsRegistry(registry, "sparqlexpr_rows"))
	}

	ctx := context.Background()
	err = evaluateRows(ctx, stdout, evaluator, x, rows, renderer(cliCfg.Render, ns), cliCfg.Workers, poolOpts...)
	if err != nil {
		return err
	}

	if registry != nil {
		if err := registry.WriteText(stderr); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// loadConfig layers the config file, the environment and the CLI flags.
func loadConfig(cliCfg *CLIConfig) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(true)
	if cliCfg.ConfigPath != "" {
		loader.AddLayer(cliCfg.ConfigPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cliCfg.LogLevel != "" {
		cfg.Logging.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Logging.Format = cliCfg.LogFormat
	}
	if cliCfg.Metrics {
		cfg.Metrics.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newEvaluator(cfg *config.Config, logger *slog.Logger, registry *metric.MetricsRegistry) (*expression.Evaluator, error) {
	engine, err := geometry.NewEngine(
		geometry.WithLogger(logger),
		geometry.WithSegments(cfg.Evaluator.BufferSegments),
		geometry.WithCacheSize(cfg.Evaluator.GeometryCacheSize),
		geometry.WithMetrics(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create geometry engine: %w", err)
	}

	opts := []expression.Option{
		expression.WithLogger(logger),
		expression.WithGeometryEngine(engine),
		expression.WithMetrics(registry),
	}
	if cfg.Evaluator.RandSeed != nil {
		opts = append(opts, expression.WithRandomSeed(*cfg.Evaluator.RandSeed))
	}

	evaluator, err := expression.NewEvaluator(opts...)
	if err != nil {
		return nil, fmt.Errorf("create evaluator: %w", err)
	}
	return evaluator, nil
}

// loadRows returns a single empty row when no table is given, so constant
// expressions still print one value.
func loadRows(path string) ([]binding.Row, error) {
	if path == "" {
		return []binding.Row{binding.Empty}, nil
	}

	table, err := binding.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}

	rows := make([]binding.Row, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = r
	}
	slog.Debug("Rows loaded", "path", path, "rows", len(rows), "columns", table.Columns)
	return rows, nil
}

func renderer(render bool, ns *vocabulary.Namespaces) func(rdf.Term) string {
	if render {
		return func(t rdf.Term) string { return rdf.Render(t, ns) }
	}
	return rdf.Term.String
}

// evaluateRows evaluates rows concurrently and writes results in row order.
func evaluateRows(ctx context.Context, w io.Writer, evaluator *expression.Evaluator, x *expression.Expression,
	rows []binding.Row, format func(rdf.Term) string, workers int, opts ...worker.Option,
) error {
	values, err := worker.Map(ctx, workers, rows, func(_ context.Context, row binding.Row) *string {
		term, ok := evaluator.Evaluate(x, row)
		if !ok {
			return nil
		}
		text := format(term)
		return &text
	}, opts...)
	if err != nil {
		return fmt.Errorf("evaluate rows: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, v := range values {
		if err := enc.Encode(result{Row: i, Value: v}); err != nil {
			return fmt.Errorf("write result %d: %w", i, err)
		}
	}
	return nil
}
