package plugin

import (
	"context"
	"time"
)

// HookEvent identifies a lifecycle event that plugins can subscribe to.
type HookEvent string

const (
	// HookServerStart is fired once plugins have started.
	HookServerStart HookEvent = "server_start"

	// HookServerStop is fired during graceful shutdown.
	HookServerStop HookEvent = "server_stop"

	// HookBeforeToolCall is fired before a tool handler runs.
	// data is *ToolCallEvent with Result unset.
	HookBeforeToolCall HookEvent = "before_tool_call"

	// HookAfterToolCall is fired after a tool handler returns.
	// data is *ToolCallEvent with Result and Duration set.
	HookAfterToolCall HookEvent = "after_tool_call"
)

// HookHandler is the callback function for lifecycle hooks.
// The data parameter is event-specific; plugins should type-assert as needed.
type HookHandler func(ctx context.Context, data interface{}) error

// HookProvider is an optional plugin interface for plugins that want to
// register hooks declaratively.
type HookProvider interface {
	Plugin
	// Hooks returns a mapping of events to handlers.
	Hooks() map[HookEvent]HookHandler
}

// ToolCallEvent is the payload of the tool call hooks.
type ToolCallEvent struct {
	CallID   string
	Tool     string
	Params   map[string]interface{}
	Result   *ToolResult
	Duration time.Duration
}
