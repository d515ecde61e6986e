package mcp

import (
	"context"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	methodLogMessage = "notifications/message"
	notifierLogger   = "pi-minimax"
)

type notifier struct {
	server *server.MCPServer
}

var _ plugin.Notifier = (*notifier)(nil)

// Notify sends a notifications/message to the client of the session in ctx.
// Calls outside a client session are dropped.
func (n *notifier) Notify(ctx context.Context, level plugin.NotifyLevel, message string) error {
	if server.ClientSessionFromContext(ctx) == nil {
		logger.Debug("[MCP] no client session, dropping notification: %s", message)
		return nil
	}
	return n.server.SendNotificationToClient(ctx, methodLogMessage, map[string]any{
		"level":  toLoggingLevel(level),
		"logger": notifierLogger,
		"data":   message,
	})
}

func toLoggingLevel(level plugin.NotifyLevel) mcp.LoggingLevel {
	switch level {
	case plugin.NotifyWarning:
		return mcp.LoggingLevelWarning
	case plugin.NotifyError:
		return mcp.LoggingLevelError
	default:
		return mcp.LoggingLevelInfo
	}
}
