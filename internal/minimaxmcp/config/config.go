package config

import (
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/options"
)

// Config is the running configuration structure of the tool server.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on the given options.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	if err := opts.Complete(); err != nil {
		return nil, err
	}
	return &Config{opts}, nil
}
