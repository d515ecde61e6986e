package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/gg/gslice"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/util"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/spf13/cobra"
)

var toolsExample = heredoc.Doc(`
		# List the tools and plugins
		minimaxctl tools
`)

// ToolsOptions is an options struct to support 'tools' sub command.
type ToolsOptions struct {
	factory util.Factory
	util.IOStreams
}

// NewCmdTools returns new initialized instance of 'tools' sub command.
func NewCmdTools(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &ToolsOptions{factory: f, IOStreams: ioStreams}

	cmd := &cobra.Command{
		Use:                   "tools",
		DisableFlagsInUseLine: true,
		Short:                 "List the tools exposed to hosts",
		Long:                  "List every registered tool with its parameters, then the load status of every plugin.",
		Example:               toolsExample,
		Args:                  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	return cmd
}

// Run executes a tools sub command using the specified options.
func (o *ToolsOptions) Run(ctx context.Context, args []string) error {
	fw, err := o.factory.Framework(nil)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("TOOL", "PLUGIN", "PARAMETERS", "DESCRIPTION")
	for _, def := range fw.Registry().SortedTools() {
		table.AddRow(def.Name, fw.Registry().ToolOwner(def.Name), formatParams(def.Parameters), def.Description)
	}
	fmt.Fprintln(o.Out, table)
	fmt.Fprintln(o.Out)

	table = uitable.New()
	table.AddRow("PLUGIN", "NAME", "STATUS", "MESSAGE")
	for _, s := range fw.Statuses() {
		def, _ := fw.Registry().Definition(s.Plugin())
		table.AddRow(s.Plugin(), def.Name, statusColor(s.Code()), s.Message())
	}
	fmt.Fprintln(o.Out, table)
	return nil
}

func formatParams(params []plugin.ParameterDef) string {
	return strings.Join(gslice.Map(params, func(p plugin.ParameterDef) string {
		if p.Required {
			return p.Name + ":" + p.Type
		}
		return p.Name + "?:" + p.Type
	}), ", ")
}

func statusColor(c plugin.Code) string {
	switch c {
	case plugin.Success:
		return color.GreenString(c.String())
	case plugin.Skip:
		return color.YellowString(c.String())
	default:
		return color.RedString(c.String())
	}
}
