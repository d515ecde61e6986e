package vision

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/util"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	"github.com/spf13/cobra"
)

var visionExample = heredoc.Doc(`
		# Describe a local image
		minimaxctl vision ./screenshot.png

		# Ask a question about a remote image
		minimaxctl vision --prompt="What breed is this dog?" https://example.com/dog.jpg
`)

// VisionOptions is an options struct to support 'vision' sub command.
type VisionOptions struct {
	Prompt string
	Output string

	factory util.Factory
	util.IOStreams
}

// NewVisionOptions returns an initialized VisionOptions instance.
func NewVisionOptions(f util.Factory, ioStreams util.IOStreams) *VisionOptions {
	return &VisionOptions{
		Prompt:    minimaxtools.DefaultPrompt,
		Output:    util.OutputMarkdown,
		factory:   f,
		IOStreams: ioStreams,
	}
}

// NewCmdVision returns new initialized instance of 'vision' sub command.
func NewCmdVision(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewVisionOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "vision IMAGE",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"understand-image"},
		Short:                 "Analyze an image with the MiniMax vision model",
		Long: heredoc.Doc(`
			Run the understand_image tool once and print the result.

			IMAGE is an http(s) URL, a local path (optionally prefixed with @) or a data URL.
			`),
		Example: visionExample,
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	cmd.Flags().StringVarP(&o.Prompt, "prompt", "p", o.Prompt, "Question or instruction about the image.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: markdown, raw or json.")

	return cmd
}

// Run executes a vision sub command using the specified options.
func (o *VisionOptions) Run(ctx context.Context, args []string) error {
	params := map[string]interface{}{
		"image":  args[0],
		"prompt": o.Prompt,
	}
	return util.RunTool(ctx, o.factory, o.IOStreams, minimaxtools.ToolUnderstandImage, params, o.Output)
}
