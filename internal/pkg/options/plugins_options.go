package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// PluginsOptions holds the top-level configuration for the plugin system.
type PluginsOptions struct {
	// Enabled controls whether the plugin system is enabled. (default: true)
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Allow lists plugins that are explicitly allowed to be loaded.
	// Empty means every in-tree plugin is allowed.
	Allow []string `json:"allow" mapstructure:"allow"`
	// Deny lists plugins that must not be loaded. Deny wins over Allow.
	Deny []string `json:"deny" mapstructure:"deny"`
	// Entries holds per-plugin configuration, keyed by plugin ID.
	Entries map[string]PluginEntryConfig `json:"entries" mapstructure:"entries"`
}

// PluginEntryConfig holds per-plugin configuration.
type PluginEntryConfig struct {
	Enabled *bool                  `json:"enabled,omitempty" mapstructure:"enabled"`
	Config  map[string]interface{} `json:"config,omitempty" mapstructure:"config"`
}

// NewPluginsOptions returns a new instance of PluginsOptions.
func NewPluginsOptions() *PluginsOptions {
	return &PluginsOptions{
		Enabled: true,
		Allow:   []string{},
		Deny:    []string{},
		Entries: make(map[string]PluginEntryConfig),
	}
}

// IsAllowed reports whether the plugin with the given ID may be loaded.
func (o *PluginsOptions) IsAllowed(id string) bool {
	if !o.Enabled {
		return false
	}
	for _, d := range o.Deny {
		if d == id {
			return false
		}
	}
	if entry, ok := o.Entries[id]; ok && entry.Enabled != nil && !*entry.Enabled {
		return false
	}
	if len(o.Allow) == 0 {
		return true
	}
	for _, a := range o.Allow {
		if a == id {
			return true
		}
	}
	return false
}

// Validate checks PluginsOptions fields.
func (o *PluginsOptions) Validate() []error {
	var errs []error
	for _, list := range [][]string{o.Allow, o.Deny} {
		for _, id := range list {
			if !isPluginID(id) {
				errs = append(errs, fmt.Errorf("invalid plugin id %q", id))
			}
		}
	}
	return errs
}

// isPluginID reports whether id is DNS-compatible.
func isPluginID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}

// AddFlags adds flags for the plugins options.
// Per-plugin configuration is only read from the config file.
func (o *PluginsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "plugins.enabled", o.Enabled, "Enable the plugin system.")
	fs.StringSliceVar(&o.Allow, "plugins.allow", o.Allow, "Plugin IDs allowed to load. Empty allows all.")
	fs.StringSliceVar(&o.Deny, "plugins.deny", o.Deny, "Plugin IDs that must not load.")
}
