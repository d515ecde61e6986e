package minimaxmcp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/config"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/options"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin/builtin/minimaxtools"
	genericoptions "github.com/joshleblanc/pi-minimax/internal/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.CreateConfigFromOptions(options.NewOptions())
	require.NoError(t, err)
	return cfg
}

func TestNewFrameworkRegistersTools(t *testing.T) {
	fw, err := NewFramework(newTestConfig(t), nil)
	require.NoError(t, err)

	_, ok := fw.Registry().GetTool(minimaxtools.ToolWebSearch)
	assert.True(t, ok)
	_, ok = fw.Registry().GetTool(minimaxtools.ToolUnderstandImage)
	assert.True(t, ok)
}

func TestNewFrameworkDisabled(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.PluginOptions.Enabled = false

	fw, err := NewFramework(cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, fw.Registry().GetTools())
}

func TestToolCallWithoutKeyIsConfigurationError(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MiniMaxOptions.APIKey = ""
	fw, err := NewFramework(cfg, nil)
	require.NoError(t, err)

	res, err := fw.CallTool(context.Background(), minimaxtools.ToolWebSearch, map[string]interface{}{"query": "go"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(res.Text, "**Error (Configuration):**"))
}

func newTestEngine(t *testing.T, transport, token string, opts ...func(*genericoptions.ServerOptions)) *gin.Engine {
	t.Helper()
	cfg := newTestConfig(t)
	cfg.ServerOptions.Transport = transport
	cfg.ServerOptions.AuthToken = token
	for _, opt := range opts {
		opt(cfg.ServerOptions)
	}
	s, err := createToolServer(cfg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	g := gin.New()
	initRouter(g, &routerDeps{
		serverOptions: cfg.ServerOptions,
		mcpModule:     s.mcpModule,
		authConfig:    newAuthConfig(cfg.ServerOptions),
	})
	return g
}

func TestRouterHealthAndMetrics(t *testing.T) {
	g := newTestEngine(t, genericoptions.TransportHTTP, "tok")

	for _, path := range []string{"/healthz", "/version"} {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterMCPRequiresToken(t *testing.T) {
	g := newTestEngine(t, genericoptions.TransportHTTP, "tok")

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"t","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:4000"
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pi-minimax")
}

func TestRouterAllowLocal(t *testing.T) {
	g := newTestEngine(t, genericoptions.TransportHTTP, "tok", func(o *genericoptions.ServerOptions) {
		o.AllowLocal = true
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "203.0.113.7:4000"
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeStdioStopsOnEOF(t *testing.T) {
	s, err := createToolServer(newTestConfig(t))
	require.NoError(t, err)

	in, stdin := io.Pipe()
	out := &lockedBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- s.serveStdio(context.Background(), in, out)
	}()

	_, err = io.WriteString(stdin, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"t","version":"1"}}}`+"\n")
	require.NoError(t, err)
	_, err = io.WriteString(stdin, `{"jsonrpc":"2.0","id":2,"method":"tools/list","params":{}}`+"\n")
	require.NoError(t, err)
	require.NoError(t, stdin.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serveStdio did not return after stdin EOF")
	}

	got := out.String()
	assert.Contains(t, got, "pi-minimax")
	assert.Contains(t, got, minimaxtools.ToolWebSearch)
	assert.Contains(t, got, minimaxtools.ToolUnderstandImage)
}
