// Package mcp serves plugin tools to hosts over the Model Context Protocol.
package mcp

import (
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

type Config struct {
	// Name and Version are reported to clients during initialize.
	Name    string
	Version string
	// Instructions is an optional hint for the host model.
	Instructions string
}

// CompletedConfig is the completed configuration for MCP.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Name == "" {
		c.Name = "pi-minimax"
	}
	if c.Version == "" {
		c.Version = "0.0.0"
	}
	return CompletedConfig{c}
}

// Module is the top-level MCP module.
type Module struct {
	Server *server.MCPServer

	bound []string
}

// New creates the MCP server. Tools are added later with Bind, once the
// plugin framework that needs this module's Notifier has been initialized.
func (c CompletedConfig) New() *Module {
	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	}
	if c.Instructions != "" {
		opts = append(opts, server.WithInstructions(c.Instructions))
	}
	s := server.NewMCPServer(c.Name, c.Version, opts...)
	logger.Info("[MCP] server %s %s created", c.Name, c.Version)
	return &Module{Server: s}
}

// Bind registers every tool of fw on the server.
func (m *Module) Bind(fw *plugin.Framework) {
	for _, def := range fw.Registry().SortedTools() {
		m.Server.AddTool(toMCPTool(def), toolHandler(fw, def.Name))
		m.bound = append(m.bound, def.Name)
		logger.Info("[MCP] exposed tool %q", def.Name)
	}
}

// Tools returns the names of the bound tools.
func (m *Module) Tools() []string {
	result := make([]string, len(m.bound))
	copy(result, m.bound)
	return result
}

// Notifier returns a plugin.Notifier that sends MCP log notifications.
func (m *Module) Notifier() plugin.Notifier {
	return &notifier{server: m.Server}
}
