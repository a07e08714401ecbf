// Package jsonschema validates JSON documents against JSON Schemas.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate validates a JSON string against a JSON Schema. It returns
// whether the document is valid; schema or JSON parse problems are
// reported as an error instead.
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, doc, err := compile(jsonStr, schemaStr)
	if err != nil {
		return false, err
	}
	return schema.Validate(doc) == nil, nil
}

// ValidateWithErrors validates a JSON string against a JSON Schema and
// also returns the individual validation errors when it is invalid.
func ValidateWithErrors(jsonStr, schemaStr string) (bool, ValidationErrors) {
	schema, doc, err := compile(jsonStr, schemaStr)
	if err != nil {
		return false, ValidationErrors{err}
	}

	verr := schema.Validate(doc)
	if verr == nil {
		return true, nil
	}

	var errs ValidationErrors
	if ve, ok := verr.(*jsonschema.ValidationError); ok {
		for _, cause := range flatten(ve) {
			errs = append(errs, fmt.Errorf("%s: %s", cause.InstanceLocation, cause.Message))
		}
	} else {
		errs = append(errs, verr)
	}
	return false, errs
}

func compile(jsonStr, schemaStr string) (*jsonschema.Schema, any, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return schema, doc, nil
}

// flatten collects the leaf causes of a validation error tree.
func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, flatten(cause)...)
	}
	return leaves
}
