package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/util"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/spf13/cobra"
)

var serveExample = heredoc.Doc(`
		# Serve over stdio for a local host such as an editor or agent
		MINIMAX_API_KEY=sk-... minimaxctl serve

		# Serve streamable HTTP on a custom address behind a bearer token
		minimaxctl serve --server.transport=http --server.addr=0.0.0.0:11790 --server.auth-token=s3cret

		# Serve the legacy SSE transport
		minimaxctl serve --server.transport=sse
`)

// ServeOptions is an options struct to support 'serve' sub command.
type ServeOptions struct {
	factory util.Factory
	util.IOStreams
}

// NewCmdServe returns new initialized instance of 'serve' sub command.
func NewCmdServe(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &ServeOptions{factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "serve",
		DisableFlagsInUseLine: true,
		Short:                 "Serve web_search and understand_image over MCP",
		Long: heredoc.Doc(`
			Expose the MiniMax tools to a host over the Model Context Protocol.

			The default stdio transport reads requests from stdin and writes responses to
			stdout, so logs always go to stderr or the --log.output-path file.
			`),
		Example: serveExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	return cmd
}

// Run executes a serve sub command using the specified options.
func (o *ServeOptions) Run(ctx context.Context, args []string) error {
	cfg, err := o.factory.Config()
	if err != nil {
		return err
	}
	defer logger.FlushLog()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("[Serve] options: %s", cfg.String())
	return minimaxmcp.Run(ctx, cfg)
}
