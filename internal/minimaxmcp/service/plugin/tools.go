package plugin

import (
	"context"
	"fmt"
)

// ToolDefinition describes a tool registered by a plugin.
type ToolDefinition struct {
	// Name is the tool's unique name. (e.g. "web_search")
	Name string
	// Description tells the calling model when to use the tool.
	Description string
	// Parameters defines the input schema for the tool.
	Parameters []ParameterDef
	// Handler is the function that is called when the tool is invoked.
	Handler ToolHandler
}

// ParameterDef defines a single parameter for a tool.
type ParameterDef struct {
	// Name is the parameter's unique name. (e.g. "query")
	Name string
	// Type is the JSON schema type: "string", "number", "integer", "boolean".
	Type string
	// Description is a brief description of the parameter's purpose.
	Description string
	// Required indicates whether the parameter is mandatory.
	Required bool
	// Minimum and Maximum bound numeric parameters when non-nil.
	Minimum *float64
	Maximum *float64
	// Default is advertised in the schema. Handlers apply it themselves.
	Default interface{}
}

// ToolResult is what a tool hands back to the host: markdown for the model
// and user, a structured detail object, and an error flag.
type ToolResult struct {
	Text    string
	Details interface{}
	IsError bool
}

// NewTextResult creates a successful result.
func NewTextResult(text string, details interface{}) *ToolResult {
	return &ToolResult{Text: text, Details: details}
}

// NewErrorResult creates a failed result.
func NewErrorResult(text string, details interface{}) *ToolResult {
	return &ToolResult{Text: text, Details: details, IsError: true}
}

// ToolHandler is called when the tool is invoked. Failures the user should
// see are returned as a ToolResult with IsError set; a non-nil error is
// reserved for faults the handler could not render itself.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (*ToolResult, error)

// ToolProvider is an optional plugin interface for plugins that want to
// contribute Tools declaratively.
type ToolProvider interface {
	Plugin
	// Tools returns the Tools contributed by this plugin.
	Tools() []ToolDefinition
}

// StringParam returns params[name] as a string.
func StringParam(params map[string]interface{}, name string) (string, bool) {
	v, ok := params[name].(string)
	return v, ok
}

// NumberParam returns params[name] as a float64. JSON numbers decode as
// float64; integer kinds are accepted for in-process callers.
func NumberParam(params map[string]interface{}, name string) (float64, bool, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("parameter %q must be a number, got %T", name, raw)
	}
}

// Float returns a pointer to f, for ParameterDef bounds.
func Float(f float64) *float64 {
	return &f
}
