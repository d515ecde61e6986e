package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPlugin struct {
	started, stopped *[]string
	name             string
}

func (p *echoPlugin) Name() string { return p.name }

func (p *echoPlugin) Init(api PluginAPI) error {
	api.RegisterTool(ToolDefinition{
		Name: p.name + "_echo",
		Parameters: []ParameterDef{
			{Name: "text", Type: "string", Required: true},
		},
		Handler: func(_ context.Context, params map[string]interface{}) (*ToolResult, error) {
			text, _ := StringParam(params, "text")
			return NewTextResult(text, map[string]string{"text": text}), nil
		},
	})
	return nil
}

func (p *echoPlugin) Start(context.Context) error {
	*p.started = append(*p.started, p.name)
	return nil
}

func (p *echoPlugin) Stop(context.Context) error {
	*p.stopped = append(*p.stopped, p.name)
	return nil
}

type toolsOnly struct{}

func (toolsOnly) Name() string { return "tools-only" }

func (toolsOnly) Tools() []ToolDefinition {
	return []ToolDefinition{
		{Name: "boom", Handler: func(context.Context, map[string]interface{}) (*ToolResult, error) {
			panic("kaboom")
		}},
		{Name: "fail", Handler: func(context.Context, map[string]interface{}) (*ToolResult, error) {
			return nil, errors.New("upstream down")
		}},
		{Name: "empty", Handler: func(context.Context, map[string]interface{}) (*ToolResult, error) {
			return nil, nil
		}},
	}
}

func newTestFramework(t *testing.T, started, stopped *[]string) *Framework {
	t.Helper()
	fw := (&Config{}).Complete().New()
	for _, name := range []string{"alpha", "beta"} {
		name := name
		require.NoError(t, fw.RegisterFactory(Definition{ID: name}, func(PluginArgs, Handle) (Plugin, error) {
			return &echoPlugin{name: name, started: started, stopped: stopped}, nil
		}, nil))
	}
	require.NoError(t, fw.RegisterFactory(Definition{ID: "tools-only"}, func(PluginArgs, Handle) (Plugin, error) {
		return toolsOnly{}, nil
	}, nil))
	require.NoError(t, fw.Init())
	return fw
}

func TestFrameworkLifecycleOrder(t *testing.T) {
	var started, stopped []string
	fw := newTestFramework(t, &started, &stopped)

	assert.Equal(t, []string{"alpha", "beta", "tools-only"}, fw.Registry().PluginNames())

	require.NoError(t, fw.Start(context.Background()))
	require.NoError(t, fw.Stop(context.Background()))
	assert.Equal(t, []string{"alpha", "beta"}, started)
	assert.Equal(t, []string{"beta", "alpha"}, stopped)
}

func TestFrameworkRejectsDuplicateFactory(t *testing.T) {
	fw := (&Config{}).Complete().New()
	factory := func(PluginArgs, Handle) (Plugin, error) { return toolsOnly{}, nil }
	require.NoError(t, fw.RegisterFactory(Definition{ID: "x"}, factory, nil))
	assert.Error(t, fw.RegisterFactory(Definition{ID: "x"}, factory, nil))
	assert.Error(t, fw.RegisterFactory(Definition{}, factory, nil))
}

func TestFrameworkInitFailureRecordsStatus(t *testing.T) {
	fw := (&Config{}).Complete().New()
	require.NoError(t, fw.RegisterFactory(Definition{ID: "broken"}, func(PluginArgs, Handle) (Plugin, error) {
		return nil, errors.New("bad args")
	}, nil))

	require.Error(t, fw.Init())
	s, ok := fw.Registry().Status("broken")
	require.True(t, ok)
	assert.Equal(t, Error, s.Code())
	assert.Contains(t, s.Message(), "bad args")
}

func TestCallToolRunsHooks(t *testing.T) {
	var started, stopped []string
	fw := newTestFramework(t, &started, &stopped)

	var before, after []*ToolCallEvent
	fw.Registry().addHook("test", HookBeforeToolCall, func(_ context.Context, data interface{}) error {
		before = append(before, data.(*ToolCallEvent))
		return nil
	})
	fw.Registry().addHook("test", HookAfterToolCall, func(_ context.Context, data interface{}) error {
		after = append(after, data.(*ToolCallEvent))
		return errors.New("hook errors are logged only")
	})

	res, err := fw.CallTool(context.Background(), "alpha_echo", map[string]interface{}{"text": "hi"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "hi", res.Text)

	require.Len(t, before, 1)
	require.Len(t, after, 1)
	assert.NotEmpty(t, before[0].CallID)
	assert.Equal(t, before[0].CallID, after[0].CallID)
	assert.Same(t, res, after[0].Result)
}

func TestCallToolConvertsFailures(t *testing.T) {
	var started, stopped []string
	fw := newTestFramework(t, &started, &stopped)

	res, err := fw.CallTool(context.Background(), "boom", nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "kaboom")

	res, err = fw.CallTool(context.Background(), "fail", nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "**Error:** upstream down", res.Text)

	res, err = fw.CallTool(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestCallToolUnknown(t *testing.T) {
	fw := (&Config{}).Complete().New()
	_, err := fw.CallTool(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestCustomErrorRenderer(t *testing.T) {
	fw := (&Config{ErrorRenderer: func(err error) string { return "oops: " + err.Error() }}).Complete().New()
	require.NoError(t, fw.RegisterFactory(Definition{ID: "tools-only"}, func(PluginArgs, Handle) (Plugin, error) {
		return toolsOnly{}, nil
	}, nil))
	require.NoError(t, fw.Init())

	res, err := fw.CallTool(context.Background(), "fail", nil)
	require.NoError(t, err)
	assert.Equal(t, "oops: upstream down", res.Text)
}

func TestNumberParam(t *testing.T) {
	v, ok, err := NumberParam(map[string]interface{}{"n": 3}, "n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok, err = NumberParam(map[string]interface{}{}, "n")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = NumberParam(map[string]interface{}{"n": "3"}, "n")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	var nilStatus *Status
	assert.True(t, nilStatus.IsSuccess())
	assert.NoError(t, NewStatus(Skip, "denied").Err())
	assert.Equal(t, "a, b", NewStatus(Error, "a", "b").Message())
	assert.Error(t, NewStatus(Error).WithPlugin("p").Err())
	assert.Equal(t, "Code(9)", Code(9).String())
}

func TestNotifierDefaultsToNop(t *testing.T) {
	api := NewRuntimeAPI(nil)
	assert.NoError(t, api.Notifier().Notify(context.Background(), NotifyInfo, "hello"))
}
