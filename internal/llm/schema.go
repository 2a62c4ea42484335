package llm

// SchemaType is the JSON type of a schema node
type SchemaType string

// Schema types
const (
	TypeObject SchemaType = "object"
	TypeString SchemaType = "string"
)

// Schema is the provider-neutral subset of JSON Schema used for tool parameters
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Properties  map[string]*Schema
	Required    []string
}

// JSONSchema returns the schema as a JSON Schema document
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			enum[i] = v
		}
		out["enum"] = enum
	}
	if len(s.Properties) > 0 {
		out["properties"] = s.PropertiesJSON()
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, v := range s.Required {
			required[i] = v
		}
		out["required"] = required
	}
	return out
}

// PropertiesJSON returns the JSON Schema of each property
func (s *Schema) PropertiesJSON() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, prop := range s.Properties {
		props[name] = prop.JSONSchema()
	}
	return props
}
