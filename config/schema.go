package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/semsparql/errors"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the JSON schema every configuration layer must satisfy.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

// validateSchema checks a decoded layer against the embedded schema.
func validateSchema(raw map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.WrapFatal(err, "config", "validateSchema", "schema compilation")
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return invalid(fmt.Errorf("validation error: %w", err), "validateSchema")
	}
	if result.Valid() {
		return nil
	}

	var b strings.Builder
	b.WriteString("schema validation failed:")
	for _, desc := range result.Errors() {
		fmt.Fprintf(&b, "\n  - %s: %s", desc.Field(), desc.Description())
	}
	return invalid(fmt.Errorf("%s", b.String()), "validateSchema")
}
