package spritepack

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pets/internal/graph"
)

//go:embed schema/pack.schema.json
var packSchemaJSON []byte

const packSchemaURL = "https://tui-pets.dev/schemas/pack.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the embedded schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packSchemaURL, bytes.NewReader(packSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("spritepack: cannot load schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(packSchemaURL)
	})
	return schema, schemaErr
}

// Parse validates YAML data against the pack schema and decodes it.
// Schema violations come back as *graph.ConfigError with code SCHEMA.
func Parse(data []byte) (*Pack, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: "empty pack document"}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	// Round-trip through JSON so the validator sees float64 and
	// map[string]any, as it would for a JSON document.
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: fmt.Sprintf("pack is not JSON-compatible: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: err.Error()}
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		msg := err.Error()
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			msg = leafMessage(verr)
		}
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: msg}
	}

	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &graph.ConfigError{Code: graph.CodeSchema, Message: err.Error()}
	}
	title := d.Title
	if title == "" {
		title = d.ID
	}
	return &Pack{ID: d.ID, Title: title, Doc: d}, nil
}

// leafMessage digs down to the most specific cause of a validation error.
func leafMessage(e *jsonschema.ValidationError) string {
	for len(e.Causes) > 0 {
		e = e.Causes[0]
	}
	return fmt.Sprintf("%s: %s", e.InstanceLocation, e.Message)
}
