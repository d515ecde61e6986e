package minimaxmcp

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/handler/middleware"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/mcp"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
	"github.com/joshleblanc/pi-minimax/internal/pkg/version"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	serverOptions *genericoptions.ServerOptions
	mcpModule     *mcp.Module
	authConfig    *middleware.AuthConfig
}

// initRouter installs middleware and routes. It returns the SSE server when
// the sse transport is mounted so the caller can shut it down.
func initRouter(g *gin.Engine, deps *routerDeps) *server.SSEServer {
	installMiddleware(g, deps)
	return installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())

	if deps.authConfig != nil {
		g.Use(middleware.BearerAuth(deps.authConfig))
	}
}

func installController(g *gin.Engine, deps *routerDeps) *server.SSEServer {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	if deps.serverOptions.EnableMetrics {
		g.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if deps.serverOptions.EnableProfiling {
		pprof.Register(g)
	}

	switch deps.serverOptions.Transport {
	case genericoptions.TransportSSE:
		sse := deps.mcpModule.SSEHandler()
		g.GET(mcp.SSEPath, gin.WrapH(sse))
		g.POST(mcp.SSEMessagePath, gin.WrapH(sse))
		return sse
	default:
		g.Any(mcp.StreamableHTTPPath, gin.WrapH(deps.mcpModule.StreamableHTTPHandler()))
		return nil
	}
}
