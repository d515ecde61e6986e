package mcp

import (
	"context"
	"io"
	"net/http"

	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// StreamableHTTPPath is where the streamable HTTP transport is mounted.
	StreamableHTTPPath = "/mcp"
	// SSEPath and SSEMessagePath are the endpoints of the SSE transport.
	SSEPath        = "/sse"
	SSEMessagePath = "/message"
)

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is done
// or in reaches EOF. Nothing else may write to out.
func (m *Module) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("[MCP] serving over stdio")
	return server.NewStdioServer(m.Server).Listen(ctx, in, out)
}

// StreamableHTTPHandler returns the streamable HTTP transport handler.
func (m *Module) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(m.Server, server.WithEndpointPath(StreamableHTTPPath))
}

// SSEHandler returns the SSE transport handler. It serves SSEPath and
// SSEMessagePath and must be mounted at the root.
func (m *Module) SSEHandler() *server.SSEServer {
	return server.NewSSEServer(m.Server,
		server.WithSSEEndpoint(SSEPath),
		server.WithMessageEndpoint(SSEMessagePath),
	)
}
