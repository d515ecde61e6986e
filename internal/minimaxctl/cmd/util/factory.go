package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/config"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/options"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/spf13/viper"
)

// IOStreams provides the standard names for iostreams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Factory provides the pieces every minimaxctl subcommand needs.
type Factory interface {
	// Config loads options from flags, environment and config file.
	Config() (*config.Config, error)
	// Framework builds the plugin framework, reporting progress to notifier.
	Framework(notifier plugin.Notifier) (*plugin.Framework, error)
}

type defaultFactory struct {
	v *viper.Viper
}

// NewDefaultFactory returns a Factory reading from v. A nil v uses the
// global viper instance.
func NewDefaultFactory(v *viper.Viper) Factory {
	if v == nil {
		v = viper.GetViper()
	}
	return &defaultFactory{v: v}
}

func (f *defaultFactory) Config() (*config.Config, error) {
	opts := options.NewOptions()
	if err := f.v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if errs := opts.Validate(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	if err := opts.LogOptions.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return config.CreateConfigFromOptions(opts)
}

func (f *defaultFactory) Framework(notifier plugin.Notifier) (*plugin.Framework, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	return minimaxmcp.NewFramework(cfg, notifier)
}

// ErrExit may be passed to CheckErr to exit with status 1 without printing.
var ErrExit = errors.New("exit")

// CheckErr prints err in red and exits with status 1 when err is not nil.
func CheckErr(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, ErrExit) {
		msg := err.Error()
		if !strings.HasPrefix(msg, "error: ") {
			msg = "error: " + msg
		}
		fmt.Fprintln(os.Stderr, color.RedString(msg))
	}
	os.Exit(1)
}
