package options

import (
	"fmt"

	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/spf13/pflag"
)

// LogOptions configures the global logger.
type LogOptions struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	// OutputPath is a log file. Empty means stderr.
	OutputPath string `json:"output-path" mapstructure:"output-path"`
}

func NewLogOptions() *LogOptions {
	return &LogOptions{
		Level:  "info",
		Format: logger.FormatText,
	}
}

func (o *LogOptions) Validate() []error {
	var errs []error
	if o.Format != logger.FormatText && o.Format != logger.FormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format %q", o.Format))
	}
	return errs
}

// Init applies the options to the global logger.
func (o *LogOptions) Init() error {
	return logger.InitLog(o.OutputPath, o.Level, o.Format)
}

func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: debug, info, warn, error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: text or json.")
	fs.StringVar(&o.OutputPath, "log.output-path", o.OutputPath, "Log file path. Logs go to stderr when empty.")
}
