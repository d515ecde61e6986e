// Package minimaxtools is the built-in plugin registering the web_search
// and understand_image tools backed by the MiniMax coding-plan API.
package minimaxtools

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax/imageref"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax/render"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
)

const (
	PluginName = "minimax-tools"

	ToolWebSearch       = "web_search"
	ToolUnderstandImage = "understand_image"

	DefaultNumResults = 10
	MinNumResults     = 1
	MaxNumResults     = 20

	DefaultPrompt = "Describe this image in detail."
)

// Config is threaded into every tool call.
type Config struct {
	MiniMax minimax.Config
	// Timeout bounds each upstream request and image download. Zero means none.
	Timeout time.Duration
	// WorkDir anchors relative image paths. Empty means the process working directory.
	WorkDir string
	// HTTPClient overrides the client used for both upstream calls and downloads.
	HTTPClient *http.Client
}

// PluginDefinition returns the static metadata of the plugin.
func PluginDefinition() plugin.Definition {
	return plugin.Definition{
		ID:          PluginName,
		Name:        "MiniMax Tools",
		Description: "Web search and image understanding via the MiniMax coding-plan API",
	}
}

// Factory creates the plugin from PluginArgs["config"] (*Config).
func Factory(args plugin.PluginArgs, handle plugin.Handle) (plugin.Plugin, error) {
	cfg, _ := args["config"].(*Config)
	if cfg == nil {
		return nil, fmt.Errorf("%s: missing *minimaxtools.Config in plugin args", PluginName)
	}
	return New(cfg, handle), nil
}

// Plugin implements plugin.InitPlugin.
type Plugin struct {
	client   *minimax.Client
	resolver *imageref.Resolver
	notifier plugin.Notifier
}

var _ plugin.InitPlugin = (*Plugin)(nil)

// New creates the plugin. A nil handle disables notifications.
func New(cfg *Config, handle plugin.Handle) *Plugin {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	notifier := plugin.NopNotifier
	if handle != nil {
		notifier = handle.RuntimeAPI().Notifier()
	}
	return &Plugin{
		client:   minimax.NewClient(cfg.MiniMax, httpClient, cfg.Timeout),
		resolver: imageref.New(httpClient, cfg.WorkDir),
		notifier: notifier,
	}
}

func (p *Plugin) Name() string {
	return PluginName
}

func (p *Plugin) Init(api plugin.PluginAPI) error {
	api.RegisterTool(p.webSearchTool())
	api.RegisterTool(p.understandImageTool())
	return nil
}

func (p *Plugin) webSearchTool() plugin.ToolDefinition {
	return plugin.ToolDefinition{
		Name: ToolWebSearch,
		Description: "Search the web using MiniMax. Returns organic results with titles, links and snippets, " +
			"plus related searches. Use for current events, documentation and anything beyond training data.",
		Parameters: []plugin.ParameterDef{
			{Name: "query", Type: "string", Description: "The search query.", Required: true},
			{
				Name:        "num_results",
				Type:        "number",
				Description: fmt.Sprintf("Number of results to return (%d-%d, default %d).", MinNumResults, MaxNumResults, DefaultNumResults),
				Minimum:     plugin.Float(MinNumResults),
				Maximum:     plugin.Float(MaxNumResults),
				Default:     DefaultNumResults,
			},
		},
		Handler: p.webSearch,
	}
}

func (p *Plugin) understandImageTool() plugin.ToolDefinition {
	return plugin.ToolDefinition{
		Name: ToolUnderstandImage,
		Description: "Analyze an image with the MiniMax vision model. Accepts an http(s) URL, a local file path " +
			"(optionally prefixed with @) or a data URL. Supports JPEG, PNG and WebP.",
		Parameters: []plugin.ParameterDef{
			{Name: "image", Type: "string", Description: "Image URL, local path or data URL.", Required: true},
			{Name: "prompt", Type: "string", Description: "What to ask about the image.", Default: DefaultPrompt},
		},
		Handler: p.understandImage,
	}
}

// SearchDetails is the structured detail object of web_search.
type SearchDetails struct {
	Query           string                  `json:"query"`
	Results         []minimax.OrganicResult `json:"results"`
	RelatedSearches []string                `json:"related_searches"`
}

// ImageDetails is the structured detail object of understand_image.
type ImageDetails struct {
	ImageSource string `json:"image_source"`
	Prompt      string `json:"prompt"`
	Content     string `json:"content"`
}

// ErrorDetails is the structured detail object of a failed call.
type ErrorDetails struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (p *Plugin) webSearch(ctx context.Context, params map[string]interface{}) (*plugin.ToolResult, error) {
	if err := p.client.CheckConfig(); err != nil {
		return errorResult(err), nil
	}

	query, _ := plugin.StringParam(params, "query")
	query = strings.TrimSpace(query)
	if query == "" {
		return errorResult(errorx.InvalidInput("query is required")), nil
	}

	n, err := numResults(params)
	if err != nil {
		return errorResult(err), nil
	}

	p.notify(ctx, plugin.NotifyInfo, "Searching the web: "+query)

	resp, err := p.client.Search(ctx, query)
	if err != nil {
		return errorResult(err), nil
	}

	details := SearchDetails{
		Query:           query,
		Results:         render.Limit(resp, n),
		RelatedSearches: render.RelatedQueries(resp),
	}
	if details.Results == nil {
		details.Results = []minimax.OrganicResult{}
	}
	if details.RelatedSearches == nil {
		details.RelatedSearches = []string{}
	}
	return plugin.NewTextResult(render.Search(query, resp, n), details), nil
}

func (p *Plugin) understandImage(ctx context.Context, params map[string]interface{}) (*plugin.ToolResult, error) {
	if err := p.client.CheckConfig(); err != nil {
		return errorResult(err), nil
	}

	ref, _ := plugin.StringParam(params, "image")
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "@" {
		return errorResult(errorx.InvalidInput("image is required")), nil
	}

	prompt, _ := plugin.StringParam(params, "prompt")
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}

	p.notify(ctx, plugin.NotifyInfo, "Analyzing image...")

	img, err := p.resolver.Resolve(ctx, ref)
	if err != nil {
		return errorResult(err), nil
	}

	resp, err := p.client.UnderstandImage(ctx, img.DataURL, prompt)
	if err != nil {
		return errorResult(err), nil
	}

	return plugin.NewTextResult(render.Vision(resp), ImageDetails{
		ImageSource: string(img.Source),
		Prompt:      prompt,
		Content:     resp.Content,
	}), nil
}

func (p *Plugin) notify(ctx context.Context, level plugin.NotifyLevel, msg string) {
	if err := p.notifier.Notify(ctx, level, msg); err != nil {
		logger.Warn("[MiniMaxTools] notification failed: %v", err)
	}
}

// numResults reads num_results, clamping it into [MinNumResults, MaxNumResults].
func numResults(params map[string]interface{}) (int, error) {
	v, ok, err := plugin.NumberParam(params, "num_results")
	if err != nil {
		return 0, errorx.InvalidInput("%v", err)
	}
	if !ok || math.IsNaN(v) {
		return DefaultNumResults, nil
	}
	switch {
	case v < MinNumResults:
		return MinNumResults, nil
	case v > MaxNumResults:
		return MaxNumResults, nil
	default:
		return int(v), nil
	}
}

func errorResult(err error) *plugin.ToolResult {
	return plugin.NewErrorResult(render.Error(err), ErrorDetails{
		Error: err.Error(),
		Kind:  errorx.KindOf(err).String(),
	})
}
