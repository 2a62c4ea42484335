// Package prompts holds the assistant's prompt texts. They live in embedded JSON
// files so wording can change without touching the adapter.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

const assistantFile = "assistant.json"

// Assistant is the prompt catalog of the resume assistant
type Assistant struct {
	SystemInstruction  string `json:"system-instruction"`
	Greeting           string `json:"greeting"`
	ToolDescription    string `json:"tool-description"`
	ActionDescription  string `json:"action-description"`
	SectionDescription string `json:"section-type-description"`
	DataDescription    string `json:"data-description"`

	system *template.Template
}

// SystemData is the data the system instruction template is executed with
type SystemData struct {
	// CVContext is the current document serialized as JSON
	CVContext string
}

var loadAssistant = sync.OnceValues(func() (*Assistant, error) {
	return parseAssistant(assistantFile)
})

// LoadAssistant returns the assistant catalog, parsed once per process
func LoadAssistant() (*Assistant, error) {
	return loadAssistant()
}

// MustAssistant is LoadAssistant for callers that cannot proceed without prompts
func MustAssistant() *Assistant {
	a, err := LoadAssistant()
	if err != nil {
		panic(fmt.Sprintf("failed to load prompts: %v", err))
	}
	return a
}

// System renders the system instruction for one turn
func (a *Assistant) System(data SystemData) (string, error) {
	var buf bytes.Buffer
	if err := a.system.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render system instruction: %w", err)
	}
	return buf.String(), nil
}

func parseAssistant(filename string) (*Assistant, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var a Assistant
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	missing := map[string]string{
		"system-instruction":       a.SystemInstruction,
		"greeting":                 a.Greeting,
		"tool-description":         a.ToolDescription,
		"action-description":       a.ActionDescription,
		"section-type-description": a.SectionDescription,
		"data-description":         a.DataDescription,
	}
	for key, text := range missing {
		if text == "" {
			return nil, fmt.Errorf("prompt key %q not found in %s", key, filename)
		}
	}

	a.system, err = template.New("system-instruction").Option("missingkey=error").Parse(a.SystemInstruction)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system instruction in %s: %w", filename, err)
	}
	return &a, nil
}
