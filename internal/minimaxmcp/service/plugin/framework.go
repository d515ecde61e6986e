package plugin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/joshleblanc/pi-minimax/internal/pkg/metrics"
)

// ErrToolNotFound is returned by CallTool for an unregistered tool name.
var ErrToolNotFound = errors.New("tool not found")

// ErrorRenderer turns a handler error into user-facing text.
type ErrorRenderer func(err error) string

// Framework is the core plugin framework that manages plugin lifecycle.
// It orchestrates: factory registration → Init → Start → Stop, and is the
// single entry point through which hosts invoke tools.
//
// The Framework owns the Handle, so plugins can access shared runtime
// resources through it.
type Framework struct {
	registry    *Registry
	handle      *handleImpl
	factories   map[string]registeredFactory
	order       []string
	renderError ErrorRenderer
	initialized bool
}

// registeredFactory pairs a PluginFactory with its Definition and args.
type registeredFactory struct {
	definition Definition
	factory    PluginFactory
	args       PluginArgs
}

// Config holds the configuration for creating a Framework.
// Follows the Config → Complete() → New() pattern.
type Config struct {
	// RuntimeAPI provides plugins access to host services.
	RuntimeAPI RuntimeAPI

	// ErrorRenderer formats errors returned by tool handlers.
	ErrorRenderer ErrorRenderer
}

// CompletedConfig is the validated and completed framework configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills in defaults for the framework configuration.
func (c *Config) Complete() CompletedConfig {
	if c.RuntimeAPI == nil {
		c.RuntimeAPI = NewRuntimeAPI(nil)
	}
	if c.ErrorRenderer == nil {
		c.ErrorRenderer = func(err error) string { return "**Error:** " + err.Error() }
	}
	return CompletedConfig{c}
}

// New creates a new Framework from the completed configuration.
func (c CompletedConfig) New() *Framework {
	return &Framework{
		registry:    NewRegistry(),
		handle:      newHandle(c.RuntimeAPI),
		factories:   make(map[string]registeredFactory),
		renderError: c.ErrorRenderer,
	}
}

// --- Factory Registration (pre-init phase) ---

// RegisterFactory registers a PluginFactory with its Definition and optional args.
//
// Factories are registered before Init(); the Framework instantiates plugins
// from them during Init() in registration order.
func (f *Framework) RegisterFactory(def Definition, factory PluginFactory, args PluginArgs) error {
	if def.ID == "" {
		return fmt.Errorf("plugin definition has no ID")
	}
	if _, exists := f.factories[def.ID]; exists {
		return fmt.Errorf("plugin factory %q is already registered", def.ID)
	}
	f.factories[def.ID] = registeredFactory{
		definition: def,
		factory:    factory,
		args:       args,
	}
	f.order = append(f.order, def.ID)
	return nil
}

// skip records a plugin that will not be loaded.
func (f *Framework) skip(def Definition, reason string) {
	f.order = append(f.order, def.ID)
	f.registry.setStatus(def.ID, NewStatus(Skip, reason))
	logger.Info("[Plugin] skipping plugin %q: %s", def.ID, reason)
}

// --- Lifecycle ---

// Init instantiates all registered factories and calls Init on each plugin:
// 1. Iterate factories in registration order
// 2. Instantiate plugin via factory
// 3. Call InitPlugin.Init() if implemented (register Tool/Hook)
// 4. Auto-probe for ToolProvider/HookProvider interfaces
func (f *Framework) Init() error {
	if f.initialized {
		return fmt.Errorf("plugin framework already initialized")
	}
	logger.Info("[Plugin] initializing framework with %d plugin factories", len(f.factories))

	for _, id := range f.order {
		entry, ok := f.factories[id]
		if !ok {
			continue
		}
		if err := f.load(entry); err != nil {
			f.registry.setStatus(id, NewStatusWithError(err))
			return err
		}
		f.registry.setStatus(id, NewStatus(Success))
	}

	f.initialized = true
	logger.Info("[Plugin] framework initialized: %d plugins, %d tools",
		f.registry.Len(), len(f.registry.GetTools()))
	return nil
}

func (f *Framework) load(entry registeredFactory) error {
	def := entry.definition

	p, err := entry.factory(entry.args, f.handle)
	if err != nil {
		return fmt.Errorf("failed to create plugin %q: %w", def.ID, err)
	}

	if err := f.registry.registerPlugin(p.Name(), def, p); err != nil {
		return fmt.Errorf("failed to register plugin %q: %w", def.ID, err)
	}

	if initP, ok := p.(InitPlugin); ok {
		api := newPluginAPI(f.registry, p.Name())
		if err := initP.Init(api); err != nil {
			return fmt.Errorf("plugin %q Init() failed: %w", def.ID, err)
		}
	}

	f.probeAndRegister(p)

	logger.Info("[Plugin] loaded plugin %q", def.ID)
	return nil
}

// probeAndRegister checks if a plugin implements optional provider interfaces
// and auto-registers their capabilities.
func (f *Framework) probeAndRegister(p Plugin) {
	name := p.Name()

	if tp, ok := p.(ToolProvider); ok {
		for _, tool := range tp.Tools() {
			f.registry.addTool(name, tool)
		}
	}

	if hp, ok := p.(HookProvider); ok {
		for event, handler := range hp.Hooks() {
			f.registry.addHook(name, event, handler)
		}
	}
}

// Start starts lifecycle plugins and fires the ServerStart hook.
func (f *Framework) Start(ctx context.Context) error {
	for _, name := range f.registry.PluginNames() {
		p, _ := f.registry.GetPlugin(name)
		if lp, ok := p.(LifecyclePlugin); ok {
			logger.Info("[Plugin] starting lifecycle plugin %q", name)
			if err := lp.Start(ctx); err != nil {
				return fmt.Errorf("plugin %q Start() failed: %w", name, err)
			}
		}
	}

	if err := FireHooks(ctx, f.registry, HookServerStart, nil); err != nil {
		logger.Warn("[Plugin] server_start hook error: %v", err)
	}

	return nil
}

// Stop fires the ServerStop hook and stops lifecycle plugins in reverse order.
func (f *Framework) Stop(ctx context.Context) error {
	if err := FireHooks(ctx, f.registry, HookServerStop, nil); err != nil {
		logger.Warn("[Plugin] server_stop hook error: %v", err)
	}

	names := f.registry.PluginNames()
	for i := len(names) - 1; i >= 0; i-- {
		p, _ := f.registry.GetPlugin(names[i])
		if lp, ok := p.(LifecyclePlugin); ok {
			logger.Info("[Plugin] stopping lifecycle plugin %q", names[i])
			if err := lp.Stop(ctx); err != nil {
				logger.Warn("[Plugin] plugin %q Stop() error: %v", names[i], err)
			}
		}
	}

	return nil
}

// --- Tool invocation ---

// CallTool runs the named tool. The returned result is never nil when err
// is nil: handler errors and panics are converted into error results. Only
// an unknown tool name yields an error.
func (f *Framework) CallTool(ctx context.Context, name string, params map[string]interface{}) (*ToolResult, error) {
	tool, ok := f.registry.GetTool(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	event := &ToolCallEvent{
		CallID: uuid.NewString(),
		Tool:   name,
		Params: params,
	}
	if err := FireHooks(ctx, f.registry, HookBeforeToolCall, event); err != nil {
		logger.Warn("[Plugin] before_tool_call hook error for %s: %v", name, err)
	}

	logger.Debug("[Plugin] tool call %s started: %s", event.CallID, name)
	start := time.Now()
	result := f.invoke(ctx, tool, params)
	event.Duration = time.Since(start)
	event.Result = result

	metrics.RecordToolCall(name, result.IsError, event.Duration.Seconds())
	if result.IsError {
		logger.Warn("[Plugin] tool call %s (%s) failed after %s", event.CallID, name, event.Duration)
	} else {
		logger.Info("[Plugin] tool call %s (%s) finished in %s", event.CallID, name, event.Duration)
	}

	if err := FireHooks(ctx, f.registry, HookAfterToolCall, event); err != nil {
		logger.Warn("[Plugin] after_tool_call hook error for %s: %v", name, err)
	}
	return result, nil
}

func (f *Framework) invoke(ctx context.Context, tool ToolDefinition, params map[string]interface{}) (result *ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Plugin] tool %s panicked: %v", tool.Name, r)
			err := fmt.Errorf("tool %s panicked: %v", tool.Name, r)
			result = NewErrorResult(f.renderError(err), map[string]interface{}{"error": err.Error()})
		}
	}()

	if tool.Handler == nil {
		err := fmt.Errorf("tool %s has no handler", tool.Name)
		return NewErrorResult(f.renderError(err), map[string]interface{}{"error": err.Error()})
	}

	res, err := tool.Handler(ctx, params)
	if err != nil {
		return NewErrorResult(f.renderError(err), map[string]interface{}{"error": err.Error()})
	}
	if res == nil {
		return NewTextResult("", nil)
	}
	return res
}

// --- Accessors ---

// Registry returns the underlying plugin registry.
func (f *Framework) Registry() *Registry {
	return f.registry
}

// Statuses returns the load status of every factory in registration order.
func (f *Framework) Statuses() []*Status {
	result := make([]*Status, 0, len(f.order))
	for _, id := range f.order {
		if s, ok := f.registry.Status(id); ok {
			result = append(result, s)
		} else {
			result = append(result, NewStatus(Skip, "not initialized").WithPlugin(id))
		}
	}
	return result
}
