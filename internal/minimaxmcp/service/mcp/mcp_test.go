package mcp

import (
	"context"
	"testing"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calcPlugin struct{}

func (calcPlugin) Name() string { return "calc" }

func (calcPlugin) Tools() []plugin.ToolDefinition {
	return []plugin.ToolDefinition{
		{
			Name:        "double",
			Description: "Double a number.",
			Parameters: []plugin.ParameterDef{
				{Name: "n", Type: "number", Description: "Input.", Required: true, Minimum: plugin.Float(0), Maximum: plugin.Float(100), Default: 1},
				{Name: "label", Type: "string", Description: "Label.", Default: "result"},
			},
			Handler: func(_ context.Context, params map[string]interface{}) (*plugin.ToolResult, error) {
				n, ok, err := plugin.NumberParam(params, "n")
				if err != nil || !ok {
					return plugin.NewErrorResult("**Error:** n is required", map[string]string{"kind": "InvalidInput"}), nil
				}
				return plugin.NewTextResult("doubled", map[string]float64{"value": n * 2}), nil
			},
		},
	}
}

func newTestModule(t *testing.T) *Module {
	t.Helper()
	m := (&Config{Name: "test", Version: "1.0.0"}).Complete().New()

	fw := (&plugin.Config{RuntimeAPI: plugin.NewRuntimeAPI(m.Notifier())}).Complete().New()
	require.NoError(t, fw.RegisterFactory(plugin.Definition{ID: "calc"}, func(plugin.PluginArgs, plugin.Handle) (plugin.Plugin, error) {
		return calcPlugin{}, nil
	}, nil))
	require.NoError(t, fw.Init())
	m.Bind(fw)
	return m
}

func newTestClient(t *testing.T, m *Module) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(m.Server)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "0.0.1"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func TestListToolsExposesSchema(t *testing.T) {
	m := newTestModule(t)
	c := newTestClient(t, m)

	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)

	tool := res.Tools[0]
	assert.Equal(t, "double", tool.Name)
	assert.Equal(t, "Double a number.", tool.Description)
	assert.Equal(t, []string{"n"}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, "n")
	assert.Contains(t, tool.InputSchema.Properties, "label")
	assert.Equal(t, []string{"double"}, m.Tools())
}

func TestCallTool(t *testing.T) {
	c := newTestClient(t, newTestModule(t))

	req := mcp.CallToolRequest{}
	req.Params.Name = "double"
	req.Params.Arguments = map[string]any{"n": 21}

	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "doubled", text.Text)
}

func TestCallToolErrorFlag(t *testing.T) {
	c := newTestClient(t, newTestModule(t))

	req := mcp.CallToolRequest{}
	req.Params.Name = "double"
	req.Params.Arguments = map[string]any{}

	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestToolSchemaBounds(t *testing.T) {
	tool := toMCPTool(calcPlugin{}.Tools()[0])

	n, ok := tool.InputSchema.Properties["n"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", n["type"])
	assert.Equal(t, 0.0, n["minimum"])
	assert.Equal(t, 100.0, n["maximum"])
	assert.Equal(t, 1.0, n["default"])

	label, ok := tool.InputSchema.Properties["label"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "result", label["default"])
}

func TestToCallToolResult(t *testing.T) {
	details := map[string]string{"error": "boom", "kind": "Network"}
	res := toCallToolResult(plugin.NewErrorResult("**Error (Network):** boom", details))

	assert.True(t, res.IsError)
	assert.Equal(t, details, res.StructuredContent)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "**Error (Network):** boom", res.Content[0].(mcp.TextContent).Text)
}

func TestNotifierWithoutSession(t *testing.T) {
	m := (&Config{}).Complete().New()
	assert.NoError(t, m.Notifier().Notify(context.Background(), plugin.NotifyInfo, "hello"))
}

func TestLoggingLevel(t *testing.T) {
	assert.Equal(t, mcp.LoggingLevelWarning, toLoggingLevel(plugin.NotifyWarning))
	assert.Equal(t, mcp.LoggingLevelError, toLoggingLevel(plugin.NotifyError))
	assert.Equal(t, mcp.LoggingLevelInfo, toLoggingLevel(plugin.NotifyInfo))
}
