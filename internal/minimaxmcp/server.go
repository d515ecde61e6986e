package minimaxmcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/config"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/handler/middleware"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/mcp"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax/render"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
	"github.com/joshleblanc/pi-minimax/internal/pkg/version"
)

const (
	serverName   = "pi-minimax"
	instructions = "Use web_search for current information from the web and understand_image " +
		"to describe or answer questions about an image given by URL, local path or data URL."

	shutdownTimeout = 10 * time.Second
)

type toolServer struct {
	cfg             *config.Config
	pluginFramework *plugin.Framework
	mcpModule       *mcp.Module
}

// NewFramework builds and initializes the plugin framework from cfg.
// notifier receives the tools' progress messages; nil discards them.
func NewFramework(cfg *config.Config, notifier plugin.Notifier) (*plugin.Framework, error) {
	pluginCfg := &plugin.Config{
		RuntimeAPI:    plugin.NewRuntimeAPI(notifier),
		ErrorRenderer: render.Error,
	}
	fw := pluginCfg.Complete().New()

	if !cfg.PluginOptions.Enabled {
		logger.Info("[MiniMaxMCP] plugin framework disabled (plugins.enabled=false), no tools will be exposed")
		return fw, fw.Init()
	}

	inTreeRegistry := builtin.NewInTreeRegistry(cfg.PluginOptions, toolsConfig(cfg.MiniMaxOptions))
	if err := inTreeRegistry.ApplyTo(fw); err != nil {
		return nil, fmt.Errorf("failed to register in-tree plugins: %w", err)
	}
	if err := fw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize plugin framework: %w", err)
	}
	return fw, nil
}

// toolsConfig reads the upstream settings once into the explicit struct
// threaded into every tool call.
func toolsConfig(o *genericoptions.MiniMaxOptions) minimaxtools.Config {
	return minimaxtools.Config{
		MiniMax: minimax.Config{
			APIKey:  o.ResolvedAPIKey(),
			APIHost: o.APIHost,
			Source:  o.Source,
		},
		Timeout: o.Timeout,
	}
}

func createToolServer(cfg *config.Config) (*toolServer, error) {
	mcpCfg := &mcp.Config{
		Name:         serverName,
		Version:      version.Get().GitVersion,
		Instructions: instructions,
	}
	mcpModule := mcpCfg.Complete().New()

	fw, err := NewFramework(cfg, mcpModule.Notifier())
	if err != nil {
		return nil, err
	}
	mcpModule.Bind(fw)

	if cfg.MiniMaxOptions.ResolvedAPIKey() == "" {
		logger.Warn("[MiniMaxMCP] MiniMax API key is not set; tool calls will return a configuration error")
	}

	return &toolServer{
		cfg:             cfg,
		pluginFramework: fw,
		mcpModule:       mcpModule,
	}, nil
}

// Run serves on the configured transport until ctx is cancelled or, for
// stdio, the host closes stdin.
func (s *toolServer) Run(ctx context.Context) error {
	if err := s.pluginFramework.Start(ctx); err != nil {
		return fmt.Errorf("failed to start plugin framework: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.pluginFramework.Stop(stopCtx)
	}()

	logger.Info("[MiniMaxMCP] %d plugins loaded, %d tools exposed over %s",
		s.pluginFramework.Registry().Len(), len(s.mcpModule.Tools()), s.cfg.ServerOptions.Transport)

	switch s.cfg.ServerOptions.Transport {
	case genericoptions.TransportStdio:
		return s.serveStdio(ctx, os.Stdin, os.Stdout)
	case genericoptions.TransportSSE, genericoptions.TransportHTTP:
		return s.serveHTTP(ctx)
	default:
		return fmt.Errorf("unsupported transport %q", s.cfg.ServerOptions.Transport)
	}
}

func (s *toolServer) serveStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	err := s.mcpModule.ServeStdio(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func newAuthConfig(o *genericoptions.ServerOptions) *middleware.AuthConfig {
	return &middleware.AuthConfig{
		Enabled:    true,
		Token:      o.AuthToken,
		AllowLocal: o.AllowLocal,
	}
}

func (s *toolServer) serveHTTP(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	deps := &routerDeps{
		serverOptions: s.cfg.ServerOptions,
		mcpModule:     s.mcpModule,
		authConfig:    newAuthConfig(s.cfg.ServerOptions),
	}
	sse := initRouter(engine, deps)

	srv := &http.Server{
		Addr:              s.cfg.ServerOptions.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[MiniMaxMCP] listening on http://%s (%s transport)", srv.Addr, s.cfg.ServerOptions.Transport)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("[MiniMaxMCP] shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if sse != nil {
		if err := sse.Shutdown(shutdownCtx); err != nil {
			logger.Warn("[MiniMaxMCP] sse shutdown: %v", err)
		}
	}
	return srv.Shutdown(shutdownCtx)
}
