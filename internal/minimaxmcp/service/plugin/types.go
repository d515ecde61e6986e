package plugin

import (
	"context"
)

// Plugin is the fundamental interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier of this plugin.
	// Must be DNS-compatible (lowercase, hyphens, no spaces).
	Name() string
}

// InitPlugin is an optional interface for plugins that register capabilities
// through the PluginAPI during framework setup.
type InitPlugin interface {
	Plugin

	// Init is called once after the plugin is instantiated.
	Init(api PluginAPI) error
}

// LifecyclePlugin is an optional interface for plugins that have
// start/stop lifecycle.
type LifecyclePlugin interface {
	Plugin

	// Start is called after every plugin has been initialized.
	Start(ctx context.Context) error

	// Stop is called on shutdown, in reverse start order.
	Stop(ctx context.Context) error
}

// PluginFactory creates a plugin instance from its args and the framework handle.
type PluginFactory func(args PluginArgs, handle Handle) (Plugin, error)

// PluginArgs carries per-plugin configuration into a PluginFactory.
type PluginArgs map[string]interface{}

// Definition is the static metadata for a plugin.
type Definition struct {
	ID          string
	Name        string
	Description string
}

// Handle gives plugins access to the framework's runtime API.
type Handle interface {
	RuntimeAPI() RuntimeAPI
}
