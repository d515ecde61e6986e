package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
)

// Registry is the central plugin registry that holds all loaded plugins
// and their registered capabilities (tools and hooks).
//
// Thread-safe: all mutations are guarded by a mutex. The MCP server reads
// tools concurrently while serving calls.
type Registry struct {
	mu sync.RWMutex

	// plugins holds all loaded plugins, keyed by plugin name.
	plugins map[string]Plugin

	// pluginOrder preserves the registration order of plugins.
	pluginOrder []string

	// definitions holds static metadata for each plugin.
	definitions map[string]Definition

	// statuses records the load outcome of every factory, including skipped ones.
	statuses map[string]*Status

	// tools maps tool name → ToolDefinition.
	tools map[string]ToolDefinition

	// toolOwners maps tool name → plugin name (for diagnostics).
	toolOwners map[string]string

	// hooks maps event → ordered list of handlers.
	hooks map[HookEvent][]hookEntry
}

// hookEntry tracks which plugin registered a hook handler.
type hookEntry struct {
	pluginName string
	handler    HookHandler
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins:     make(map[string]Plugin),
		definitions: make(map[string]Definition),
		statuses:    make(map[string]*Status),
		tools:       make(map[string]ToolDefinition),
		toolOwners:  make(map[string]string),
		hooks:       make(map[HookEvent][]hookEntry),
	}
}

// --- Registration methods (called by pluginAPIImpl) ---

func (r *Registry) addTool(pluginName string, tool ToolDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.toolOwners[tool.Name]; ok {
		logger.Warn("[Plugin] tool %q already registered by plugin %q, overriding with %q",
			tool.Name, existing, pluginName)
	}
	r.tools[tool.Name] = tool
	r.toolOwners[tool.Name] = pluginName
}

func (r *Registry) addHook(pluginName string, event HookEvent, handler HookHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks[event] = append(r.hooks[event], hookEntry{
		pluginName: pluginName,
		handler:    handler,
	})
}

func (r *Registry) setStatus(id string, s *Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = s.WithPlugin(id)
}

// --- Query methods ---

// GetPlugin returns a loaded plugin by name.
func (r *Registry) GetPlugin(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// GetTool returns a registered tool by name.
func (r *Registry) GetTool(name string) (ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// GetTools returns all registered tools.
func (r *Registry) GetTools() map[string]ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]ToolDefinition, len(r.tools))
	for k, v := range r.tools {
		result[k] = v
	}
	return result
}

// SortedTools returns all registered tools ordered by name.
func (r *Registry) SortedTools() []ToolDefinition {
	tools := r.GetTools()
	result := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ToolOwner returns the plugin that registered the tool.
func (r *Registry) ToolOwner(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.toolOwners[name]
}

// GetHooks returns all handlers registered for the given event.
func (r *Registry) GetHooks(event HookEvent) []HookHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.hooks[event]
	handlers := make([]HookHandler, 0, len(entries))
	for _, e := range entries {
		handlers = append(handlers, e.handler)
	}
	return handlers
}

// Status returns the load status of a plugin factory.
func (r *Registry) Status(id string) (*Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.statuses[id]
	return s, ok
}

// Definition returns the static metadata of a loaded plugin.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.definitions[name]
	return d, ok
}

// PluginNames returns the names of all loaded plugins in registration order.
func (r *Registry) PluginNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.pluginOrder))
	copy(result, r.pluginOrder)
	return result
}

// Len returns the number of loaded plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// --- Internal registration ---

// registerPlugin adds a plugin to the registry. Called by Framework.
func (r *Registry) registerPlugin(name string, def Definition, p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}

	r.plugins[name] = p
	r.definitions[name] = def
	r.pluginOrder = append(r.pluginOrder, name)
	return nil
}
