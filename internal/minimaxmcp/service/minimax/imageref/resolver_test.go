package imageref

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestResolveDataURLIsIdentity(t *testing.T) {
	r := New(nil, "")
	inputs := []string{
		"data:image/png;base64,iVBORw0KGgo=",
		"data:image/gif;base64,R0lGOD",
		"data:,noformat",
	}
	for _, in := range inputs {
		got, err := r.ResolveDataURL(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		got, err = r.ResolveDataURL(context.Background(), "@"+in)
		require.NoError(t, err)
		assert.Equal(t, in, got, "leading @ must be dropped")
	}
}

func TestResolveFileFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		want Format
	}{
		{"shot.png", FormatPNG},
		{"SHOT.PNG", FormatPNG},
		{"photo.webp", FormatWebP},
		{"photo.jpg", FormatJPEG},
		{"photo.jpeg", FormatJPEG},
		{"anim.gif", FormatJPEG},
		{"noext", FormatJPEG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, pngBytes, 0o644))

			img, err := New(nil, "").Resolve(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, SourceFile, img.Source)
			assert.Equal(t, tt.want, img.Format)
			assert.Equal(t, "data:image/"+string(tt.want)+";base64,"+base64.StdEncoding.EncodeToString(pngBytes), img.DataURL)
		})
	}
}

func TestResolveRelativePathWithAtPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "a.png"), pngBytes, 0o644))

	img, err := New(nil, dir).Resolve(context.Background(), "@img/a.png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, img.Format)
	assert.True(t, strings.HasPrefix(img.DataURL, "data:image/png;base64,"))
}

func TestResolveMissingFile(t *testing.T) {
	_, err := New(nil, "").Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Equal(t, errorx.KindIO, errorx.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveURLContentTypes(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"image/png", FormatPNG},
		{"IMAGE/PNG", FormatPNG},
		{"image/webp", FormatWebP},
		{"image/webp; charset=binary", FormatWebP},
		{"image/jpeg", FormatJPEG},
		{"image/jpg", FormatJPEG},
		{"image/gif", FormatJPEG},
		{"application/octet-stream", FormatJPEG},
		{"", FormatJPEG},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType == "" {
					w.Header()["Content-Type"] = nil
				} else {
					w.Header().Set("Content-Type", tt.contentType)
				}
				_, _ = w.Write(pngBytes)
			}))
			defer srv.Close()

			img, err := New(srv.Client(), "").Resolve(context.Background(), srv.URL+"/image")
			require.NoError(t, err)
			assert.Equal(t, SourceURL, img.Source)
			assert.Equal(t, tt.want, img.Format)
			assert.Equal(t, DataURL(tt.want, pngBytes), img.DataURL)
		})
	}
}

func TestResolveURLNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	got, err := New(srv.Client(), "").ResolveDataURL(context.Background(), "@"+srv.URL+"/gone.png")
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, errorx.KindNetwork, errorx.KindOf(err))
	assert.Contains(t, err.Error(), "404")
}

func TestResolveURLUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(nil, "").Resolve(context.Background(), url+"/a.png")
	require.Error(t, err)
	assert.Equal(t, errorx.KindNetwork, errorx.KindOf(err))
}
