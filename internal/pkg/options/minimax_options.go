package options

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	// DefaultAPIHost is the public MiniMax endpoint.
	DefaultAPIHost = "https://api.minimax.io"

	// DefaultAPISource is sent in the MM-API-Source header.
	DefaultAPISource = "pi-minimax"
)

// MiniMaxOptions holds the upstream API settings.
type MiniMaxOptions struct {
	// APIKey is the bearer token. Required, no default. A value of the form
	// "${NAME}" is resolved from the environment.
	APIKey string `json:"api-key" mapstructure:"api-key"`
	// APIHost is the scheme and host of the API, without a path.
	APIHost string `json:"api-host" mapstructure:"api-host"`
	// Source is the vendor-source header value.
	Source string `json:"source" mapstructure:"source"`
	// Timeout bounds each upstream request. Zero means no client timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewMiniMaxOptions returns options with defaults applied.
func NewMiniMaxOptions() *MiniMaxOptions {
	return &MiniMaxOptions{
		APIHost: DefaultAPIHost,
		Source:  DefaultAPISource,
	}
}

// ResolvedAPIKey returns the API key with "${NAME}" references expanded.
func (o *MiniMaxOptions) ResolvedAPIKey() string {
	return ResolveEnvValue(o.APIKey)
}

// Validate checks MiniMaxOptions for malformed values. A missing API key is
// not reported here: it surfaces as a configuration error on each tool call.
func (o *MiniMaxOptions) Validate() []error {
	var errs []error
	if o.APIHost != "" {
		u, err := url.Parse(o.APIHost)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid minimax api-host %q, expected http(s)://host", o.APIHost))
		}
	}
	if o.Timeout < 0 {
		errs = append(errs, fmt.Errorf("minimax timeout must not be negative, got %s", o.Timeout))
	}
	return errs
}

// Complete fills empty fields with defaults.
func (o *MiniMaxOptions) Complete() {
	if o.APIHost == "" {
		o.APIHost = DefaultAPIHost
	}
	o.APIHost = strings.TrimRight(o.APIHost, "/")
	if o.Source == "" {
		o.Source = DefaultAPISource
	}
}

// AddFlags adds flags for the MiniMax options.
func (o *MiniMaxOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.APIKey, "minimax.api-key", o.APIKey, "MiniMax API key (env: MINIMAX_API_KEY).")
	fs.StringVar(&o.APIHost, "minimax.api-host", o.APIHost, "MiniMax API host (env: MINIMAX_API_HOST).")
	fs.StringVar(&o.Source, "minimax.source", o.Source, "Value of the MM-API-Source request header.")
	fs.DurationVar(&o.Timeout, "minimax.timeout", o.Timeout, "Per-request timeout for MiniMax API calls, 0 disables it.")
}

// ResolveEnvValue expands a "${NAME}" value from the environment. Other values
// are returned unchanged.
func ResolveEnvValue(v string) string {
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(v, "${"), "}"))
	}
	return v
}
