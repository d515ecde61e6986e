package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(cfg *AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(BearerAuth(cfg))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	g.GET("/healthz", ok)
	g.POST("/mcp", ok)
	return g
}

func do(g *gin.Engine, method, path, remote, auth string) int {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remote
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w.Code
}

func TestBearerAuth(t *testing.T) {
	g := newEngine(&AuthConfig{Enabled: true, Token: "s3cret"})
	const remote = "203.0.113.7:4000"

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{name: "valid token", method: http.MethodPost, path: "/mcp", auth: "Bearer s3cret", want: http.StatusOK},
		{name: "missing header", method: http.MethodPost, path: "/mcp", want: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodPost, path: "/mcp", auth: "Basic s3cret", want: http.StatusUnauthorized},
		{name: "wrong token", method: http.MethodPost, path: "/mcp", auth: "Bearer nope", want: http.StatusUnauthorized},
		{name: "health whitelisted", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(g, tt.method, tt.path, remote, tt.auth))
		})
	}
}

func TestBearerAuthDisabled(t *testing.T) {
	g := newEngine(&AuthConfig{Enabled: false, Token: "s3cret"})
	assert.Equal(t, http.StatusOK, do(g, http.MethodPost, "/mcp", "203.0.113.7:4000", ""))
}

func TestBearerAuthAllowLocal(t *testing.T) {
	g := newEngine(&AuthConfig{Enabled: true, Token: "s3cret", AllowLocal: true})
	assert.Equal(t, http.StatusOK, do(g, http.MethodPost, "/mcp", "127.0.0.1:4000", ""))
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/mcp", "203.0.113.7:4000", ""))
}

func TestResolveTokenFromEnv(t *testing.T) {
	t.Setenv(TokenEnv, "from-env")
	assert.Equal(t, "from-env", (&AuthConfig{}).ResolveToken())
	assert.Equal(t, "explicit", (&AuthConfig{Token: "explicit"}).ResolveToken())
}
