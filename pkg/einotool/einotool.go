// Package einotool exposes the MiniMax tools to eino agents as tool.InvokableTool.
package einotool

import (
	"context"
	"fmt"
	"sort"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/json"
)

// PluginTool adapts a plugin.ToolDefinition to eino's tool.InvokableTool.
// Calls go through the Framework so hooks and metrics apply.
type PluginTool struct {
	fw  *plugin.Framework
	def plugin.ToolDefinition
}

var _ tool.InvokableTool = (*PluginTool)(nil)

// New adapts the named tool.
func New(fw *plugin.Framework, name string) (*PluginTool, error) {
	def, ok := fw.Registry().GetTool(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", plugin.ErrToolNotFound, name)
	}
	return &PluginTool{fw: fw, def: def}, nil
}

// Info returns the eino ToolInfo for this tool.
func (p *PluginTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	params := make(map[string]*schema.ParameterInfo, len(p.def.Parameters))

	for _, param := range p.def.Parameters {
		params[param.Name] = &schema.ParameterInfo{
			Desc:     describe(param),
			Type:     toSchemaDataType(param.Type),
			Required: param.Required,
		}
	}

	return &schema.ToolInfo{
		Name:        p.def.Name,
		Desc:        p.def.Description,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}, nil
}

// InvokableRun invokes the plugin tool with JSON arguments and returns the
// markdown text. Tool failures come back as text so the model can read them;
// only malformed arguments and unknown tools return an error.
func (p *PluginTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var params map[string]interface{}
	if argumentsInJSON != "" && argumentsInJSON != "{}" {
		if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
			return "", fmt.Errorf("failed to unmarshal arguments JSON: %w", err)
		}
	}

	if params == nil {
		params = make(map[string]interface{})
	}

	result, err := p.fw.CallTool(ctx, p.def.Name, params)
	if err != nil {
		return "", fmt.Errorf("failed to invoke plugin tool: %w", err)
	}
	return result.Text, nil
}

// Adapt converts plugin-registered tools matching the given names to eino tools,
// ordered by name. If toolNames is empty, all registered tools are adapted.
func Adapt(fw *plugin.Framework, toolNames []string) []tool.BaseTool {
	allTools := fw.Registry().SortedTools()
	tools := make([]tool.BaseTool, 0, len(allTools))

	nameSet := make(map[string]struct{}, len(toolNames))
	for _, name := range toolNames {
		nameSet[name] = struct{}{}
	}

	for _, def := range allTools {
		if _, ok := nameSet[def.Name]; ok || len(toolNames) == 0 {
			tools = append(tools, &PluginTool{fw: fw, def: def})
		}
	}

	return tools
}

// describe folds bounds and defaults into the description, since
// schema.ParameterInfo has no fields for them.
func describe(p plugin.ParameterDef) string {
	desc := p.Description
	var extra []string
	if p.Minimum != nil && p.Maximum != nil {
		extra = append(extra, fmt.Sprintf("range %g-%g", *p.Minimum, *p.Maximum))
	}
	if p.Default != nil {
		extra = append(extra, fmt.Sprintf("default %v", p.Default))
	}
	sort.Strings(extra)
	for i, e := range extra {
		if i == 0 {
			desc += " ("
		} else {
			desc += ", "
		}
		desc += e
	}
	if len(extra) > 0 {
		desc += ")"
	}
	return desc
}

// toSchemaDataType converts a string type name to the corresponding eino schema.DataType.
func toSchemaDataType(t string) schema.DataType {
	switch t {
	case "string":
		return schema.String
	case "number":
		return schema.Number
	case "integer":
		return schema.Integer
	case "boolean":
		return schema.Boolean
	case "object":
		return schema.Object
	case "array":
		return schema.Array
	default:
		return schema.String
	}
}
