package resumefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// Format is a document file encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and validates a document file
func Load(path string) (types.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return types.Document{}, &LoadError{Path: path, Message: "unknown format", Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	doc, err := Decode(data, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return types.Document{}, err
	}
	return doc, nil
}

// Save writes doc to path in the format implied by its extension
func Save(path string, doc types.Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Decode parses and validates a document. YAML input is converted to JSON
// first so both formats go through the same schema.
func Decode(data []byte, format Format) (types.Document, error) {
	jsonData := data
	if format == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return types.Document{}, &LoadError{Message: "invalid YAML", Cause: err}
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return types.Document{}, &LoadError{Message: "YAML does not map to JSON", Cause: err}
		}
		jsonData = converted
	}

	if err := schemas.ValidateDocument(jsonData); err != nil {
		return types.Document{}, &LoadError{Message: "document failed schema validation", Cause: err}
	}

	var doc types.Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return types.Document{}, &LoadError{Message: "failed to decode document", Cause: err}
	}
	if err := CheckIDs(doc); err != nil {
		return types.Document{}, &LoadError{Message: "invalid identifiers", Cause: err}
	}
	return doc.Normalize(), nil
}

// Encode serializes doc in the given format
func Encode(doc types.Document, format Format) ([]byte, error) {
	doc = doc.Normalize()
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// CheckIDs rejects documents whose section ids, or item ids within one
// section, are not unique
func CheckIDs(doc types.Document) error {
	sections := make(map[string]struct{}, len(doc.Sections))
	for _, s := range doc.Sections {
		if _, dup := sections[s.ID]; dup {
			return &DuplicateIDError{Scope: "section", ID: s.ID}
		}
		sections[s.ID] = struct{}{}

		items := make(map[string]struct{}, len(s.Items))
		for _, it := range s.Items {
			if _, dup := items[it.ID]; dup {
				return &DuplicateIDError{Scope: "item", ID: it.ID}
			}
			items[it.ID] = struct{}{}
		}
	}
	return nil
}
