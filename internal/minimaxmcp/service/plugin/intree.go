package plugin

// InTreeRegistry is a pre-configured set of built-in plugin factories,
// registered together in a single function.
//
// Out-of-tree plugins can be added via Framework.RegisterFactory() directly.
type InTreeRegistry struct {
	entries []inTreeEntry
}

type inTreeEntry struct {
	def     Definition
	factory PluginFactory
	args    PluginArgs
	enabled bool
}

// NewInTreeRegistry creates a new in-tree plugin registry.
func NewInTreeRegistry() *InTreeRegistry {
	return &InTreeRegistry{}
}

// Register adds an enabled plugin factory to the in-tree registry.
func (r *InTreeRegistry) Register(def Definition, factory PluginFactory, args PluginArgs) {
	r.RegisterWithState(def, factory, args, true)
}

// RegisterWithState adds a plugin factory. Disabled factories are recorded
// with a Skip status and never instantiated.
func (r *InTreeRegistry) RegisterWithState(def Definition, factory PluginFactory, args PluginArgs, enabled bool) {
	r.entries = append(r.entries, inTreeEntry{
		def:     def,
		factory: factory,
		args:    args,
		enabled: enabled,
	})
}

// Len returns the number of registered factories.
func (r *InTreeRegistry) Len() int {
	return len(r.entries)
}

// ApplyTo registers all in-tree plugin factories into the given Framework.
func (r *InTreeRegistry) ApplyTo(f *Framework) error {
	for _, entry := range r.entries {
		if !entry.enabled {
			f.skip(entry.def, "disabled by plugins configuration")
			continue
		}
		if err := f.RegisterFactory(entry.def, entry.factory, entry.args); err != nil {
			return err
		}
	}
	return nil
}
