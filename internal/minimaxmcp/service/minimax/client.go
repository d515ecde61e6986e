// Package minimax binds the MiniMax coding-plan search and VLM endpoints.
package minimax

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
	"github.com/joshleblanc/pi-minimax/internal/pkg/json"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/joshleblanc/pi-minimax/internal/pkg/metrics"
)

const (
	searchPath = "/v1/coding_plan/search"
	vlmPath    = "/v1/coding_plan/vlm"

	// sourceHeader identifies the calling integration to MiniMax.
	sourceHeader = "MM-API-Source"

	// maxErrorBody caps how much of a failed response body is echoed back.
	maxErrorBody = 512
)

// Config holds the settings needed to reach the API.
type Config struct {
	APIKey  string
	APIHost string
	Source  string
}

// BaseResp is the status envelope returned by every endpoint.
// A non-zero StatusCode signals failure regardless of the HTTP status.
type BaseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// Client calls the MiniMax API. It holds no per-request state and is safe
// for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient uses a client with the given
// timeout (zero means none).
func NewClient(cfg Config, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.APIHost = strings.TrimRight(cfg.APIHost, "/")
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// CheckConfig reports a configuration error when a required setting is missing.
func (c *Client) CheckConfig() error {
	if c.cfg.APIKey == "" {
		return errorx.Configuration("MiniMax API key is not configured; set MINIMAX_API_KEY or --minimax.api-key")
	}
	if c.cfg.APIHost == "" {
		return errorx.Configuration("MiniMax API host is not configured")
	}
	return nil
}

// post sends body as JSON to path and decodes the response into out.
// out must expose its envelope through envelope().
func (c *Client) post(ctx context.Context, path string, body interface{}, out enveloped) (err error) {
	if err := c.CheckConfig(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.UpstreamErrorsTotal.WithLabelValues(path, errorx.KindOf(err).String()).Inc()
		}
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return errorx.Wrap(errorx.KindAPI, err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIHost+path, bytes.NewReader(payload))
	if err != nil {
		return errorx.Network(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set(sourceHeader, c.cfg.Source)

	logger.Debug("[MiniMax] POST %s (%d bytes)", path, len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorx.Network(err, "request %s", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorx.Network(err, "read response from %s", path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorx.New(errorx.KindNetwork, "%s returned HTTP %d: %s", path, resp.StatusCode, excerpt(respBody)).
			WithCode(resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errorx.Wrap(errorx.KindAPI, err, "decode response from %s", path)
	}

	if env := out.envelope(); env.StatusCode != 0 {
		return errorx.API(env.StatusCode, "MiniMax API error %d: %s", env.StatusCode, env.StatusMsg)
	}
	return nil
}

type enveloped interface {
	envelope() BaseResp
}

func excerpt(b []byte) string {
	return truncate(strings.TrimSpace(string(b)), maxErrorBody)
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
