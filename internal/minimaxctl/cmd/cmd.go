package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/search"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/serve"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/tools"
	cmdutil "github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/util"
	"github.com/joshleblanc/pi-minimax/internal/minimaxctl/cmd/vision"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/options"
	"github.com/joshleblanc/pi-minimax/internal/pkg/cliflag"
	"github.com/joshleblanc/pi-minimax/internal/pkg/json"
	"github.com/joshleblanc/pi-minimax/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDefaultMiniMaxCtlCommand creates the `minimaxctl` command with default arguments.
func NewDefaultMiniMaxCtlCommand() *cobra.Command {
	return NewMiniMaxCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewMiniMaxCtlCommand(in io.Reader, out, err io.Writer) *cobra.Command {
	v := viper.New()

	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "minimaxctl",
		Short: "minimaxctl exposes MiniMax web search and image understanding to agent hosts",
		Long: fmt.Sprintf("%s\n%s", Banner(), heredoc.Doc(`
			minimaxctl serves the web_search and understand_image tools over the Model
			Context Protocol, and runs either tool once from the command line.

			The API key is read from MINIMAX_API_KEY, --minimax.api-key or the config file.
			The API host defaults to https://api.minimax.io and can be changed with
			MINIMAX_API_HOST.
			`)),
		SilenceUsage: true,
		Run:          runHelp,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(v, globalConfigFile)
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(err)

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc) // Warn for "_" flags

	addGlobalFlags(flags)
	namedFlagSets := options.NewOptions().Flags()
	namedFlagSets.AddTo(flags)

	_ = v.BindPFlags(flags)
	_ = v.BindEnv("minimax.api-key", envAPIKey)
	_ = v.BindEnv("minimax.api-host", envAPIHost)

	ioStreams := cmdutil.IOStreams{In: in, Out: out, ErrOut: err}
	f := cmdutil.NewDefaultFactory(v)

	cmds.AddCommand(
		serve.NewCmdServe(f, ioStreams),
		search.NewCmdSearch(f, ioStreams),
		vision.NewCmdVision(f, ioStreams),
		tools.NewCmdTools(f, ioStreams),
		newCmdVersion(ioStreams),
	)

	return cmds
}

// loadConfig reads the config file, if one is given, into v.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if ext := strings.TrimPrefix(filepath.Ext(cfgFile), "."); ext == "yml" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file %q: %w", cfgFile, err)
	}
	return nil
}

func newCmdVersion(ioStreams cmdutil.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(version.Get(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(ioStreams.Out, string(data))
			return err
		},
	}
}

func runHelp(cmd *cobra.Command, args []string) {
	if globalShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		return
	}
	_ = cmd.Help()
}
