package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/homestead-go/internal/domain/settings"
)

//go:embed tuning.schema.json
var schemaJSON []byte

const schemaURL = "tuning.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add tuning schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Schema returns the embedded JSON schema document
func Schema() []byte {
	return schemaJSON
}

// Load reads a tuning document from path. An empty path returns the built-in table.
func Load(path string) (*settings.Table, error) {
	if strings.TrimSpace(path) == "" {
		return settings.Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse validates a YAML tuning document against the schema and converts it into a table
// that has passed its semantic checks.
func Parse(raw []byte) (*settings.Table, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode tuning: %w", err)
	}
	t, err := doc.table()
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// validate checks the generic document. YAML is round-tripped through JSON so the schema
// sees the same value types it would for a JSON document.
func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to parse tuning: %w", err)
	}
	if generic == nil {
		return fmt.Errorf("tuning document is empty")
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("tuning document is not JSON compatible: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to re-read tuning: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("tuning does not match schema: %w", err)
	}
	return nil
}

func lower(s string) string {
	return strings.ToLower(s)
}
