package assistant

import (
	"fmt"
	"maps"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/mitchellh/mapstructure"
)

// ParseInvocation turns a raw function call into a validated update_cv invocation.
// Arguments are checked against the tool's JSON Schema, decoded into the closed
// argument record, and validated. Unrecognized data keys are discarded and
// reported in the second result.
func ParseInvocation(call llm.FunctionCall) (*types.ToolInvocation, []string, error) {
	if call.Name != ToolName {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	args := call.Args
	if args == nil {
		args = map[string]any{}
	}
	args = dropUnusedSectionType(args)

	schema, err := compiledTool()
	if err != nil {
		return nil, nil, &InvocationError{Tool: ToolName, Message: "tool schema is invalid", Cause: err}
	}
	if err := schema.Validate(args); err != nil {
		return nil, nil, &InvocationError{Tool: ToolName, Message: "arguments do not match schema", Cause: err}
	}

	var decoded types.UpdateCVArgs
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &decoded,
		TagName:  "mapstructure",
		Metadata: &md,
	})
	if err != nil {
		return nil, nil, &InvocationError{Tool: ToolName, Message: "failed to build decoder", Cause: err}
	}
	if err := decoder.Decode(args); err != nil {
		return nil, nil, &InvocationError{Tool: ToolName, Message: "failed to decode arguments", Cause: err}
	}

	if err := decoded.Validate(); err != nil {
		return nil, nil, &InvocationError{Tool: ToolName, Message: "arguments failed validation", Cause: err}
	}

	return &types.ToolInvocation{Name: ToolName, Args: decoded}, md.Unused, nil
}

// dropUnusedSectionType removes sectionType from calls whose action ignores it, so a
// stray value such as "" or "PERSONAL" does not fail the schema. args is not modified.
func dropUnusedSectionType(args map[string]any) map[string]any {
	if action, _ := args["action"].(string); action == string(types.ActionAddItem) {
		return args
	}
	if _, ok := args["sectionType"]; !ok {
		return args
	}
	out := maps.Clone(args)
	delete(out, "sectionType")
	return out
}
