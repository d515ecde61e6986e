package builtin

import (
	"time"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
)

// NewInTreeRegistry creates a new in-tree plugin registry with the default plugins.
// Each plugin receives its config via PluginArgs["config"], built from base and
// overridden by plugins.entries.<id>.config.
// The default plugins are:
// - minimax-tools: web_search and understand_image
func NewInTreeRegistry(opts *genericoptions.PluginsOptions, base minimaxtools.Config) *plugin.InTreeRegistry {
	if opts == nil {
		opts = genericoptions.NewPluginsOptions()
	}
	registry := plugin.NewInTreeRegistry()

	registry.RegisterWithState(
		minimaxtools.PluginDefinition(),
		minimaxtools.Factory,
		plugin.PluginArgs{
			"config": resolveMiniMaxToolsConfig(opts, base),
		},
		opts.IsAllowed(minimaxtools.PluginName))

	return registry
}

// resolveMiniMaxToolsConfig applies plugins.entries.minimax-tools.config to base.
func resolveMiniMaxToolsConfig(opts *genericoptions.PluginsOptions, base minimaxtools.Config) *minimaxtools.Config {
	cfg := base
	entry, ok := opts.Entries[minimaxtools.PluginName]
	if !ok || entry.Config == nil {
		return &cfg
	}

	if v, ok := entry.Config["work_dir"]; ok {
		if s, ok := v.(string); ok {
			cfg.WorkDir = s
		}
	}
	if v, ok := entry.Config["timeout"]; ok {
		if s, ok := v.(string); ok {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.Timeout = d
			}
		}
	}
	if v, ok := entry.Config["source"]; ok {
		if s, ok := v.(string); ok && s != "" {
			cfg.MiniMax.Source = s
		}
	}
	return &cfg
}
