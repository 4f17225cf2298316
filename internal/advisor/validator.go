package advisor

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

// Validator checks raw advisory payloads against the embedded JSON
// schema before they are decoded.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded intent response schema.
func NewValidator() (*Validator, error) {
	data, err := schemaFiles.ReadFile("schemas/intent_response.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read intent schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := "https://holdem-advisor.dev/schemas/intent_response.json"
	if err := compiler.AddResource(url, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add intent schema: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile intent schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidatePayload checks raw JSON against the intent response schema.
func (v *Validator) ValidatePayload(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	return nil
}

// Decode validates and decodes a raw payload, then runs the
// structural checks that the schema cannot express (entry count and
// positional indices).
func (v *Validator) Decode(data []byte, botCount int) (*IntentResponse, error) {
	if err := v.ValidatePayload(data); err != nil {
		return nil, err
	}
	var resp IntentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	if err := resp.Validate(botCount); err != nil {
		return nil, err
	}
	return &resp, nil
}
