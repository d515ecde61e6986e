package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// ServerOptions holds options for exposing the tools to a host.
type ServerOptions struct {
	// Transport is one of "stdio", "sse" or "http". Default: "stdio".
	Transport string `json:"transport" mapstructure:"transport"`
	// Addr is the listen address for the sse and http transports.
	Addr string `json:"addr" mapstructure:"addr"`
	// AuthToken, when set, is required as a bearer token on sse/http requests.
	AuthToken string `json:"auth-token" mapstructure:"auth-token"`
	// AllowLocal lets loopback clients skip the bearer token.
	AllowLocal bool `json:"allow-local" mapstructure:"allow-local"`
	// EnableMetrics mounts /metrics on the sse/http transports.
	EnableMetrics bool `json:"enable-metrics" mapstructure:"enable-metrics"`
	// EnableProfiling mounts /debug/pprof on the sse/http transports.
	EnableProfiling bool `json:"enable-profiling" mapstructure:"enable-profiling"`
}

// NewServerOptions returns the default server options.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Transport:     TransportStdio,
		Addr:          "127.0.0.1:11790",
		EnableMetrics: true,
	}
}

// Validate checks ServerOptions for correctness.
func (o *ServerOptions) Validate() []error {
	var errs []error
	switch o.Transport {
	case TransportStdio:
	case TransportSSE, TransportHTTP:
		if _, _, err := net.SplitHostPort(o.Addr); err != nil {
			errs = append(errs, fmt.Errorf("invalid server addr %q: %w", o.Addr, err))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported transport %q (must be 'stdio', 'sse' or 'http')", o.Transport))
	}
	return errs
}

// AddFlags adds flags for the server options.
func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Transport, "server.transport", o.Transport, "Transport used to talk to the host: stdio, sse or http.")
	fs.StringVar(&o.Addr, "server.addr", o.Addr, "Listen address for the sse and http transports.")
	fs.StringVar(&o.AuthToken, "server.auth-token", o.AuthToken, "Bearer token required by the sse and http transports.")
	fs.BoolVar(&o.AllowLocal, "server.allow-local", o.AllowLocal, "Let loopback clients skip the bearer token.")
	fs.BoolVar(&o.EnableMetrics, "server.enable-metrics", o.EnableMetrics, "Expose Prometheus metrics at /metrics.")
	fs.BoolVar(&o.EnableProfiling, "server.enable-profiling", o.EnableProfiling, "Expose pprof handlers at /debug/pprof.")
}
