// Package assistant adapts a chat model to the resume document through the update_cv tool.
package assistant

import (
	"sync"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ToolName is the single tool exposed to the model
const ToolName = "update_cv"

var (
	toolOnce sync.Once
	tool     llm.Tool
	toolJSON map[string]any
)

// Tool returns the update_cv declaration
func Tool() llm.Tool {
	toolOnce.Do(buildTool)
	return tool
}

var compiledTool = sync.OnceValues(func() (*schemas.Schema, error) {
	return schemas.Compile(schemas.NameTool, ToolJSONSchema())
})

// ToolJSONSchema returns the update_cv argument schema as a JSON Schema document
func ToolJSONSchema() map[string]any {
	toolOnce.Do(buildTool)
	return toolJSON
}

func buildTool() {
	p := prompts.MustAssistant()
	dataKeys := []string{
		"title", "subtitle", "date", "description", "location",
		"fullName", "email", "summary", "linkedin", "phone", "website",
	}
	data := make(map[string]*llm.Schema, len(dataKeys))
	for _, key := range dataKeys {
		data[key] = &llm.Schema{Type: llm.TypeString}
	}

	sectionTypes := make([]string, 0, len(types.SectionTypes))
	for _, t := range types.SectionTypes {
		if t != types.SectionCustom {
			sectionTypes = append(sectionTypes, string(t))
		}
	}

	tool = llm.Tool{
		Name:        ToolName,
		Description: p.ToolDescription,
		Parameters: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"action": {
					Type:        llm.TypeString,
					Description: p.ActionDescription,
					Enum: []string{
						string(types.ActionAddItem),
						string(types.ActionUpdatePersonal),
						string(types.ActionAddSection),
					},
				},
				"sectionType": {
					Type:        llm.TypeString,
					Description: p.SectionDescription,
					Enum:        sectionTypes,
				},
				"data": {
					Type:        llm.TypeObject,
					Description: p.DataDescription,
					Properties:  data,
				},
			},
			Required: []string{"action", "data"},
		},
	}
	toolJSON = tool.Parameters.JSONSchema()
}

// Greeting returns the assistant's opening message
func Greeting() string {
	return prompts.MustAssistant().Greeting
}
