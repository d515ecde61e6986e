package cmd

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig = "config"

	envAPIKey  = "MINIMAX_API_KEY"
	envAPIHost = "MINIMAX_API_HOST"
)

var (
	globalConfigFile  string
	globalShowVersion bool
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&globalConfigFile,
		flagConfig, "c",
		"",
		"Read configuration from this file (yaml, json or toml).")
	flags.BoolVar(&globalShowVersion, "version", false, "Print version information and quit.")
}
