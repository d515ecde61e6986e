// Package imageref normalizes user-supplied image references into base64
// data URLs accepted by the vision endpoint.
//
// A reference is one of:
//   - an inline data URL ("data:..."), returned unchanged
//   - an http(s) URL, downloaded
//   - a local path, read from disk
//
// Any of them may carry a leading "@", which is dropped.
package imageref

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
	"github.com/joshleblanc/pi-minimax/internal/pkg/logger"
	"github.com/joshleblanc/pi-minimax/internal/pkg/metrics"
)

// Format is the image subtype written into the data URL.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"

	// DefaultFormat is used whenever detection fails.
	DefaultFormat = FormatJPEG
)

// Source tells where the image bytes came from.
type Source string

const (
	SourceData Source = "data"
	SourceURL  Source = "url"
	SourceFile Source = "file"
)

// Image is a resolved reference.
type Image struct {
	// DataURL is "data:image/<format>;base64,<payload>", or the caller's
	// input for SourceData.
	DataURL string
	Source  Source
	// Format is empty for SourceData.
	Format Format
}

// rule maps a substring of the content type or file extension to a format.
// Rules are evaluated in order; the first match wins.
type rule struct {
	match  func(string) bool
	format Format
}

var contentTypeRules = []rule{
	{match: contains("png"), format: FormatPNG},
	{match: contains("webp"), format: FormatWebP},
	{match: anyOf(contains("jpeg"), contains("jpg")), format: FormatJPEG},
}

var extensionRules = []rule{
	{match: equals(".png"), format: FormatPNG},
	{match: equals(".webp"), format: FormatWebP},
	{match: anyOf(equals(".jpg"), equals(".jpeg")), format: FormatJPEG},
}

// Resolver turns references into data URLs. The zero value uses
// http.DefaultClient and the process working directory.
type Resolver struct {
	// HTTPClient downloads URL references.
	HTTPClient *http.Client
	// WorkDir anchors relative paths. Empty means the process working directory.
	WorkDir string
}

// New creates a Resolver.
func New(httpClient *http.Client, workDir string) *Resolver {
	return &Resolver{HTTPClient: httpClient, WorkDir: workDir}
}

// Resolve normalizes ref. Network failures and non-2xx responses are
// reported as errorx.KindNetwork, unreadable files as errorx.KindIO. There
// is no retry.
func (r *Resolver) Resolve(ctx context.Context, ref string) (Image, error) {
	ref = strings.TrimPrefix(ref, "@")

	var (
		img Image
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		img = Image{DataURL: ref, Source: SourceData}
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		img, err = r.fetch(ctx, ref)
	default:
		img, err = r.readFile(ref)
	}
	if err != nil {
		return Image{}, err
	}

	metrics.ImageResolutionsTotal.WithLabelValues(string(img.Source), string(img.Format)).Inc()
	return img, nil
}

// ResolveDataURL is Resolve returning only the data URL.
func (r *Resolver) ResolveDataURL(ctx context.Context, ref string) (string, error) {
	img, err := r.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	return img.DataURL, nil
}

func (r *Resolver) fetch(ctx context.Context, url string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, errorx.Network(err, "fetch image %s", url)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return Image{}, errorx.Network(err, "fetch image %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, errorx.New(errorx.KindNetwork, "fetch image %s: HTTP %d %s",
			url, resp.StatusCode, http.StatusText(resp.StatusCode)).WithCode(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, errorx.Network(err, "read image body from %s", url)
	}

	format := detect(contentTypeRules, strings.ToLower(resp.Header.Get("Content-Type")))
	logger.Debug("[ImageRef] fetched %s (%d bytes, format=%s)", url, len(data), format)

	return Image{DataURL: DataURL(format, data), Source: SourceURL, Format: format}, nil
}

func (r *Resolver) readFile(ref string) (Image, error) {
	path, err := r.absPath(ref)
	if err != nil {
		return Image{}, errorx.IO(err, "resolve image path %q", ref)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, errorx.IO(err, "read image file %s", path)
	}

	format := detect(extensionRules, strings.ToLower(filepath.Ext(path)))
	logger.Debug("[ImageRef] read %s (%d bytes, format=%s)", path, len(data), format)

	return Image{DataURL: DataURL(format, data), Source: SourceFile, Format: format}, nil
}

func (r *Resolver) absPath(ref string) (string, error) {
	if filepath.IsAbs(ref) || r.WorkDir == "" {
		return filepath.Abs(ref)
	}
	return filepath.Abs(filepath.Join(r.WorkDir, ref))
}

func (r *Resolver) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}

// DataURL builds a data URL for raw image bytes.
func DataURL(format Format, data []byte) string {
	return "data:image/" + string(format) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func detect(rules []rule, s string) Format {
	for _, r := range rules {
		if r.match(s) {
			return r.format
		}
	}
	return DefaultFormat
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func equals(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}
