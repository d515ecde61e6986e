package plugin

import (
	"context"
)

// NotifyLevel is the severity of a host notification.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifyWarning NotifyLevel = "warning"
	NotifyError   NotifyLevel = "error"
)

// Notifier delivers short status messages to the host UI.
// Implementations must tolerate a ctx that has no host session attached.
type Notifier interface {
	Notify(ctx context.Context, level NotifyLevel, message string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, level NotifyLevel, message string) error

func (f NotifierFunc) Notify(ctx context.Context, level NotifyLevel, message string) error {
	return f(ctx, level, message)
}

// NopNotifier discards notifications.
var NopNotifier Notifier = NotifierFunc(func(context.Context, NotifyLevel, string) error { return nil })

// RuntimeAPI is the bridge between plugins and the hosting runtime.
type RuntimeAPI interface {
	// Notifier returns the host notification channel. Never nil.
	Notifier() Notifier
}

type runtimeAPIImpl struct {
	notifier Notifier
}

var _ RuntimeAPI = (*runtimeAPIImpl)(nil)

// NewRuntimeAPI creates a RuntimeAPI. A nil notifier discards notifications.
func NewRuntimeAPI(notifier Notifier) RuntimeAPI {
	if notifier == nil {
		notifier = NopNotifier
	}
	return &runtimeAPIImpl{notifier: notifier}
}

func (r *runtimeAPIImpl) Notifier() Notifier {
	return r.notifier
}

// PluginAPI is the registration interface given to plugins during Init().
type PluginAPI interface {
	// RegisterTool registers a host-callable tool.
	RegisterTool(tool ToolDefinition)

	// RegisterHook registers a lifecycle event hook.
	RegisterHook(event HookEvent, handler HookHandler)
}

// pluginAPIImpl implements PluginAPI, collecting registrations into the Registry.
type pluginAPIImpl struct {
	registry   *Registry
	pluginName string
}

var _ PluginAPI = (*pluginAPIImpl)(nil)

func newPluginAPI(registry *Registry, pluginName string) *pluginAPIImpl {
	return &pluginAPIImpl{
		registry:   registry,
		pluginName: pluginName,
	}
}

func (a *pluginAPIImpl) RegisterTool(tool ToolDefinition) {
	a.registry.addTool(a.pluginName, tool)
}

func (a *pluginAPIImpl) RegisterHook(event HookEvent, handler HookHandler) {
	a.registry.addHook(a.pluginName, event, handler)
}

type handleImpl struct {
	runtimeAPI RuntimeAPI
}

var _ Handle = (*handleImpl)(nil)

func newHandle(runtimeAPI RuntimeAPI) *handleImpl {
	if runtimeAPI == nil {
		runtimeAPI = NewRuntimeAPI(nil)
	}
	return &handleImpl{runtimeAPI: runtimeAPI}
}

func (h *handleImpl) RuntimeAPI() RuntimeAPI {
	return h.runtimeAPI
}

// FireHooks fires all registered hooks for the given event.
// Hooks are called in registration order. If any hook returns an error,
// subsequent hooks are still called but the first error is returned.
func FireHooks(ctx context.Context, registry *Registry, event HookEvent, data interface{}) error {
	handlers := registry.GetHooks(event)
	var firstErr error
	for _, h := range handlers {
		if err := h(ctx, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
