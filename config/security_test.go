package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"json", filepath.Join(dir, "engine.json"), ""},
		{"yaml", filepath.Join(dir, "engine.yaml"), ""},
		{"yml upper case", filepath.Join(dir, "ENGINE.YML"), ""},
		{"empty", "", "empty config path"},
		{"too long", "/" + strings.Repeat("a", maxPathLen) + ".json", "path too long"},
		{"wrong extension", filepath.Join(dir, "engine.toml"), "only JSON or YAML"},
		{"relative escape", "../../engine.json", "path traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSafeReadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := safeReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "cannot stat")

	sub := filepath.Join(dir, "dir.json")
	require.NoError(t, os.Mkdir(sub, 0700))
	_, err = safeReadFile(sub)
	assert.ErrorContains(t, err, "not a regular file")

	path := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))
	data, err := safeReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestValidateJSONDepth(t *testing.T) {
	assert.NoError(t, validateJSONDepth([]byte(`{"a": [1, {"b": "}]{["}]}`)))
	assert.ErrorContains(t, validateJSONDepth([]byte(strings.Repeat("[", maxJSONDepth+1))), "too deep")
	assert.NoError(t, validateJSONDepth([]byte(strings.Repeat("[", maxJSONDepth)+strings.Repeat("]", maxJSONDepth))))
	assert.ErrorContains(t, validateJSONDepth([]byte(`{"a": 1}}`)), "malformed JSON")
	assert.ErrorContains(t, validateJSONDepth([]byte(`{"a": [1}`)), "malformed JSON")
	assert.ErrorContains(t, validateJSONDepth([]byte(`{"a": [1`)), "unclosed")
}

func TestValidateEnvVar(t *testing.T) {
	assert.NoError(t, validateEnvVar("K", ""))
	assert.NoError(t, validateEnvVar("K", "debug"))
	assert.ErrorContains(t, validateEnvVar("K", "a\x00b"), "null byte")
	assert.Error(t, validateEnvVar("K", strings.Repeat("x", maxEnvVarLen+1)))
}
