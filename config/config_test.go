package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semsparql/errors"
	"github.com/c360/semsparql/vocabulary"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.Evaluator.BufferSegments)
	assert.Equal(t, 256, cfg.Evaluator.GeometryCacheSize)
	assert.Nil(t, cfg.Evaluator.RandSeed)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "engine.json", `{
		"namespaces": [{"prefix": "ex", "uri": "http://example.org/"}],
		"evaluator": {"rand_seed": 42, "buffer_segments": 64},
		"metrics": {"enabled": true},
		"logging": {"level": "debug"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Evaluator.RandSeed)
	assert.Equal(t, uint64(42), *cfg.Evaluator.RandSeed)
	assert.Equal(t, 64, cfg.Evaluator.BufferSegments)
	assert.Equal(t, 256, cfg.Evaluator.GeometryCacheSize, "unset fields keep their defaults")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []vocabulary.Namespace{{Prefix: "ex", URI: "http://example.org/"}}, cfg.Namespaces)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "engine.yaml", `
namespaces:
  - prefix: ex
    uri: http://example.org/
evaluator:
  geometry_cache_size: 0
logging:
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Evaluator.GeometryCacheSize)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Len(t, cfg.Namespaces, 1)
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_Layers(t *testing.T) {
	base := writeFile(t, "base.json", `{"evaluator": {"buffer_segments": 16}, "logging": {"level": "warn"}}`)
	override := writeFile(t, "override.yaml", "logging:\n  level: error\n")

	loader := NewLoader()
	loader.AddLayer(base)
	loader.AddLayer(override)
	loader.EnableValidation(true)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Evaluator.BufferSegments)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("SPARQLEXPR_LOG_LEVEL", "DEBUG")
	t.Setenv("SPARQLEXPR_LOG_FORMAT", "text")
	t.Setenv("SPARQLEXPR_METRICS_ENABLED", "true")
	t.Setenv("SPARQLEXPR_RAND_SEED", "7")

	cfg, err := Load(writeFile(t, "engine.json", `{}`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	require.NotNil(t, cfg.Evaluator.RandSeed)
	assert.Equal(t, uint64(7), *cfg.Evaluator.RandSeed)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown top-level key", `{"server": {}}`},
		{"unknown evaluator key", `{"evaluator": {"workers": 4}}`},
		{"segments too small", `{"evaluator": {"buffer_segments": 2}}`},
		{"negative seed", `{"evaluator": {"rand_seed": -1}}`},
		{"fractional cache size", `{"evaluator": {"geometry_cache_size": 1.5}}`},
		{"unknown level", `{"logging": {"level": "trace"}}`},
		{"namespace without uri", `{"namespaces": [{"prefix": "ex"}]}`},
		{"metrics not boolean", `{"metrics": {"enabled": "yes"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "engine.json", tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err), err.Error())
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"custom namespace", func(c *Config) {
			c.Namespaces = []vocabulary.Namespace{{Prefix: "ex", URI: "http://example.org/"}}
		}, true},
		{"bad prefix", func(c *Config) {
			c.Namespaces = []vocabulary.Namespace{{Prefix: "1ex", URI: "http://example.org/"}}
		}, false},
		{"bad uri", func(c *Config) {
			c.Namespaces = []vocabulary.Namespace{{Prefix: "ex", URI: "http://example.org/<x>"}}
		}, false},
		{"duplicate prefix", func(c *Config) {
			c.Namespaces = []vocabulary.Namespace{
				{Prefix: "ex", URI: "http://example.org/"},
				{Prefix: "ex", URI: "http://example.com/"},
			}
		}, false},
		{"too few segments", func(c *Config) { c.Evaluator.BufferSegments = 3 }, false},
		{"negative cache", func(c *Config) { c.Evaluator.GeometryCacheSize = -1 }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestConfig_NamespaceTable(t *testing.T) {
	cfg := Default()
	cfg.Namespaces = []vocabulary.Namespace{
		{Prefix: "ex", URI: "http://example.org/"},
		{Prefix: "xsd", URI: "http://example.org/xsd#"},
	}

	ns, err := cfg.NamespaceTable()
	require.NoError(t, err)

	uri, ok := ns.Lookup("ex")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/", uri)

	uri, ok = ns.Lookup("xsd")
	assert.True(t, ok)
	assert.Equal(t, "http://example.org/xsd#", uri, "configured prefixes replace defaults")

	_, ok = ns.Lookup("geof")
	assert.True(t, ok)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode([]byte("metrics:\n  enabled: true\n"), true)
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)

	_, err = Decode([]byte(`{"logging": {"format": "xml"}}`), false)
	assert.Error(t, err)

	_, err = Decode([]byte(`{`), false)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestSchema_ReturnsCopy(t *testing.T) {
	a := Schema()
	a[0] = 'x'
	assert.Equal(t, byte('{'), Schema()[0])
}
