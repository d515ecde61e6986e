package minimaxmcp

import (
	"context"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/config"
)

// Run serves the tools until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	server, err := createToolServer(cfg)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
