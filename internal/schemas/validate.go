// Package schemas validates resume documents and tool arguments against JSON Schemas.
package schemas

import (
	_ "embed"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchema string

// Schema names used in errors
const (
	NameDocument = "document"
	NameTool     = "tool"
)

// Schema is a compiled JSON Schema
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

var compiledDocument = sync.OnceValues(func() (*Schema, error) {
	return compile(NameDocument, gojsonschema.NewStringLoader(documentSchema))
})

// DocumentSchema returns the JSON Schema source of a resume document
func DocumentSchema() string {
	return documentSchema
}

// Compile compiles a schema given as a decoded JSON Schema document
func Compile(name string, schema map[string]any) (*Schema, error) {
	return compile(name, gojsonschema.NewGoLoader(schema))
}

// ValidateDocument validates raw JSON against the embedded resume document schema
func ValidateDocument(jsonContent []byte) error {
	s, err := compiledDocument()
	if err != nil {
		return err
	}
	return s.validate(gojsonschema.NewBytesLoader(jsonContent))
}

// Validate checks a decoded Go value against the schema
func (s *Schema) Validate(value any) error {
	return s.validate(gojsonschema.NewGoLoader(value))
}

func compile(name string, loader gojsonschema.JSONLoader) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}
	return &Schema{name: name, schema: compiled}, nil
}

func (s *Schema) validate(input gojsonschema.JSONLoader) error {
	result, err := s.schema.Validate(input)
	if err != nil {
		return &SchemaLoadError{Name: s.name, Message: "input could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: s.name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   field,
			Kind:    desc.Type(),
			Message: desc.Description(),
		})
	}
	return verr
}
