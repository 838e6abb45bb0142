package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Expression  string
	RowsPath    string
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Render      bool
	Workers     int
	Metrics     bool
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.Expression, "expr",
		getEnv("SPARQLEXPR_EXPR", ""),
		"Expression to evaluate (env: SPARQLEXPR_EXPR)")

	fs.StringVar(&cfg.Expression, "e",
		getEnv("SPARQLEXPR_EXPR", ""),
		"Expression to evaluate (env: SPARQLEXPR_EXPR)")

	fs.StringVar(&cfg.RowsPath, "rows",
		getEnv("SPARQLEXPR_ROWS", ""),
		"Result table to evaluate against, JSON or YAML (env: SPARQLEXPR_ROWS)")

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("SPARQLEXPR_CONFIG", ""),
		"Path to configuration file (env: SPARQLEXPR_CONFIG)")

	fs.StringVar(&cfg.ConfigPath, "c",
		getEnv("SPARQLEXPR_CONFIG", ""),
		"Path to configuration file (env: SPARQLEXPR_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")

	fs.StringVar(&cfg.LogFormat, "log-format", "",
		"Log format: json, text (default from config)")

	fs.BoolVar(&cfg.Render, "render",
		getEnvBool("SPARQLEXPR_RENDER", false),
		"Print values in SPARQL syntax with prefixed names (env: SPARQLEXPR_RENDER)")

	fs.IntVar(&cfg.Workers, "workers",
		getEnvInt("SPARQLEXPR_WORKERS", runtime.NumCPU()),
		"Rows evaluated concurrently (env: SPARQLEXPR_WORKERS)")

	fs.BoolVar(&cfg.Metrics, "metrics", false,
		"Print Prometheus metrics to stderr after evaluation")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Parse the expression and configuration, then exit")

	fs.Usage = func() {
		printDetailedHelp(fs, stderr)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowHelp {
		fs.Usage()
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.Expression == "" {
		return fmt.Errorf("no expression given, use -expr")
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.RowsPath != "" {
		if _, err := os.Stat(cfg.RowsPath); err != nil {
			return fmt.Errorf("rows file not found: %s", cfg.RowsPath)
		}
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("invalid worker count: %d", cfg.Workers)
	}

	if cfg.LogLevel != "" && !contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "" && !contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `%s - SPARQL expression evaluator

Usage: %s [options]

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Evaluate a constant expression
  %s -expr '1 + 2'

  # Evaluate against every row of a result table
  %s -expr 'CONCAT(?name, "@", ?domain)' -rows results.json

  # Use namespaces and a fixed RAND seed from a config file
  %s -config engine.yaml -expr 'xsd:integer(?v) * 2' -rows rows.yaml -render

  # Check that an expression parses
  %s -expr 'REGEX(?s, "^a", "i")' --validate

Output is one JSON object per row: {"row": n, "value": "..."} with a null
value when the expression produces nothing for that row.

Version: %s
Build: %s
`, appName, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
