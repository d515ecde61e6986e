package search

import (
	"context"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/util"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	"github.com/spf13/cobra"
)

var searchExample = heredoc.Doc(`
		# Search the web
		minimaxctl search "golang generics tutorial"

		# Limit the number of results
		minimaxctl search --num-results=3 "kubernetes operators"

		# Print the structured result
		minimaxctl search -o json "rust async"
`)

// SearchOptions is an options struct to support 'search' sub command.
type SearchOptions struct {
	NumResults int
	Output     string

	factory util.Factory
	util.IOStreams
}

// NewSearchOptions returns an initialized SearchOptions instance.
func NewSearchOptions(f util.Factory, ioStreams util.IOStreams) *SearchOptions {
	return &SearchOptions{
		NumResults: minimaxtools.DefaultNumResults,
		Output:     util.OutputMarkdown,
		factory:    f,
		IOStreams:  ioStreams,
	}
}

// NewCmdSearch returns new initialized instance of 'search' sub command.
func NewCmdSearch(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewSearchOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "search QUERY...",
		DisableFlagsInUseLine: true,
		Short:                 "Search the web with MiniMax",
		Long: heredoc.Doc(`
			Run the web_search tool once and print the result.

			The query is every argument joined by spaces.
			`),
		Example: searchExample,
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	cmd.Flags().IntVarP(&o.NumResults, "num-results", "n", o.NumResults, "Number of results to show (1-20).")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: markdown, raw or json.")

	return cmd
}

// Run executes a search sub command using the specified options.
func (o *SearchOptions) Run(ctx context.Context, args []string) error {
	params := map[string]interface{}{
		"query":       strings.Join(args, " "),
		"num_results": float64(o.NumResults),
	}
	return util.RunTool(ctx, o.factory, o.IOStreams, minimaxtools.ToolWebSearch, params, o.Output)
}
