package options

import (
	"github.com/jinzhu/copier"
	"github.com/joshleblanc/pi-minimax/internal/pkg/cliflag"
	"github.com/joshleblanc/pi-minimax/internal/pkg/json"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
)

type Options struct {
	MiniMaxOptions *genericoptions.MiniMaxOptions `json:"minimax"  mapstructure:"minimax"`
	ServerOptions  *genericoptions.ServerOptions  `json:"server"   mapstructure:"server"`
	LogOptions     *genericoptions.LogOptions     `json:"log"      mapstructure:"log"`
	PluginOptions  *genericoptions.PluginsOptions `json:"plugins"  mapstructure:"plugins"`
}

func NewOptions() *Options {
	return &Options{
		MiniMaxOptions: genericoptions.NewMiniMaxOptions(),
		ServerOptions:  genericoptions.NewServerOptions(),
		LogOptions:     genericoptions.NewLogOptions(),
		PluginOptions:  genericoptions.NewPluginsOptions(),
	}
}

func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.MiniMaxOptions.AddFlags(fss.FlagSet("minimax"))
	o.ServerOptions.AddFlags(fss.FlagSet("server"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.PluginOptions.AddFlags(fss.FlagSet("plugins"))
	return fss
}

// Validate checks every option group and collects all errors.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.MiniMaxOptions.Validate()...)
	errs = append(errs, o.ServerOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.PluginOptions.Validate()...)
	return errs
}

// Complete set default Options.
func (o *Options) Complete() error {
	o.MiniMaxOptions.Complete()
	return nil
}

// String renders the options as JSON with secrets masked.
func (o *Options) String() string {
	masked := &Options{}
	if err := copier.CopyWithOption(masked, o, copier.Option{DeepCopy: true}); err != nil {
		return "{}"
	}
	if masked.MiniMaxOptions != nil && masked.MiniMaxOptions.APIKey != "" {
		masked.MiniMaxOptions.APIKey = secretMask
	}
	if masked.ServerOptions != nil && masked.ServerOptions.AuthToken != "" {
		masked.ServerOptions.AuthToken = secretMask
	}

	data, _ := json.Marshal(masked)
	return string(data)
}

const secretMask = "******"
