package mcp

import (
	"context"
	"fmt"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toMCPTool converts a plugin tool definition into an MCP tool with a JSON schema.
func toMCPTool(def plugin.ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(def.Description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}
	for _, p := range def.Parameters {
		opts = append(opts, toolParam(p))
	}
	return mcp.NewTool(def.Name, opts...)
}

func toolParam(p plugin.ParameterDef) mcp.ToolOption {
	var props []mcp.PropertyOption
	if p.Description != "" {
		props = append(props, mcp.Description(p.Description))
	}
	if p.Required {
		props = append(props, mcp.Required())
	}

	switch p.Type {
	case "number", "integer":
		if p.Minimum != nil {
			props = append(props, mcp.Min(*p.Minimum))
		}
		if p.Maximum != nil {
			props = append(props, mcp.Max(*p.Maximum))
		}
		if d, ok := toFloat(p.Default); ok {
			props = append(props, mcp.DefaultNumber(d))
		}
		return mcp.WithNumber(p.Name, props...)
	case "boolean":
		if d, ok := p.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(d))
		}
		return mcp.WithBoolean(p.Name, props...)
	default:
		if d, ok := p.Default.(string); ok {
			props = append(props, mcp.DefaultString(d))
		}
		return mcp.WithString(p.Name, props...)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// toolHandler routes an MCP tools/call through the plugin framework.
func toolHandler(fw *plugin.Framework, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := fw.CallTool(ctx, name, req.GetArguments())
		if err != nil {
			logger.Warn("[MCP] tools/call %s: %v", name, err)
			return mcp.NewToolResultError(fmt.Sprintf("**Error:** %v", err)), nil
		}
		return toCallToolResult(res), nil
	}
}

// toCallToolResult carries the markdown as text content and the details as
// structuredContent.
func toCallToolResult(res *plugin.ToolResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(res.Text)},
		StructuredContent: res.Details,
		IsError:           res.IsError,
	}
}
