package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/easeltools/easel/errors"
)

//go:embed easel.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates a configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("easel.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("easel.json")
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a loaded config against the schema. The config is passed
// through JSON so the schema sees plain objects.
func (v *Validator) Validate(cfg *Config) error {
	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "configuration failed schema validation")
	}
	return nil
}
