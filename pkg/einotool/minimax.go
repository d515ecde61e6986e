package einotool

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/config"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/options"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
)

// Config configures the MiniMax tools for an eino host.
type Config struct {
	// APIKey is the MiniMax key. "${NAME}" is read from the environment.
	APIKey string
	// APIHost defaults to https://api.minimax.io.
	APIHost string
	// Source is sent as MM-API-Source. Defaults to pi-minimax.
	Source string
	// Timeout bounds each upstream call. Zero means none.
	Timeout time.Duration
	// WorkDir anchors relative image paths.
	WorkDir string
	// OnNotify receives progress messages such as "Analyzing image...".
	OnNotify func(ctx context.Context, level, message string)
}

// NewMiniMaxTools builds the minimax-tools plugin and returns web_search and
// understand_image as eino tools.
func NewMiniMaxTools(cfg Config) ([]tool.BaseTool, error) {
	opts := options.NewOptions()
	opts.MiniMaxOptions.APIKey = cfg.APIKey
	if cfg.APIHost != "" {
		opts.MiniMaxOptions.APIHost = cfg.APIHost
	}
	if cfg.Source != "" {
		opts.MiniMaxOptions.Source = cfg.Source
	}
	opts.MiniMaxOptions.Timeout = cfg.Timeout
	if cfg.WorkDir != "" {
		opts.PluginOptions.Entries[minimaxtools.PluginName] = genericoptions.PluginEntryConfig{
			Config: map[string]interface{}{"work_dir": cfg.WorkDir},
		}
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	completed, err := config.CreateConfigFromOptions(opts)
	if err != nil {
		return nil, err
	}

	var notifier plugin.Notifier
	if cfg.OnNotify != nil {
		notifier = plugin.NotifierFunc(func(ctx context.Context, level plugin.NotifyLevel, message string) error {
			cfg.OnNotify(ctx, string(level), message)
			return nil
		})
	}

	fw, err := minimaxmcp.NewFramework(completed, notifier)
	if err != nil {
		return nil, err
	}
	return Adapt(fw, nil), nil
}
