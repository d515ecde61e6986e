package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax"
	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
	"github.com/stretchr/testify/assert"
)

func sampleSearch() *minimax.SearchResponse {
	return &minimax.SearchResponse{
		Organic: []minimax.OrganicResult{
			{Title: "Go", Link: "https://go.dev", Snippet: "The Go language.", Date: "2024-01-02"},
			{Title: "", Link: "https://pkg.go.dev", Snippet: ""},
			{Title: "Tour", Link: "https://go.dev/tour", Snippet: "A tour."},
		},
		RelatedSearches: []minimax.RelatedSearch{{Query: "go modules"}, {Query: "  "}},
	}
}

func TestSearchMarkdown(t *testing.T) {
	out := Search("golang", sampleSearch(), 2)

	assert.True(t, strings.HasPrefix(out, "## Search Results: golang\n\n"))
	assert.Contains(t, out, "### 1. [Go](https://go.dev)\n\nThe Go language.\n\n*Date: 2024-01-02*")
	assert.Contains(t, out, "### 2. [https://pkg.go.dev](https://pkg.go.dev)")
	assert.NotContains(t, out, "Tour")
	assert.Contains(t, out, "### Related Searches\n\n- go modules\n")
	assert.Equal(t, 1, strings.Count(out, "\n- "))
}

func TestSearchEmpty(t *testing.T) {
	out := Search("nothing", &minimax.SearchResponse{}, 5)
	assert.Equal(t, "## Search Results: nothing\n\nNo results found.\n", out)

	assert.NotPanics(t, func() { Search("nil", nil, 5) })
}

func TestLimit(t *testing.T) {
	resp := sampleSearch()
	assert.Len(t, Limit(resp, 0), 3)
	assert.Len(t, Limit(resp, 1), 1)
	assert.Len(t, Limit(resp, 20), 3)
	assert.Nil(t, Limit(nil, 3))
}

func TestVision(t *testing.T) {
	assert.Equal(t, "## Image Analysis\n\nA cat.\n", Vision(&minimax.VLMResponse{Content: " A cat. "}))
	assert.Contains(t, Vision(nil), "no description")
}

func TestError(t *testing.T) {
	assert.Equal(t, "**Error (Configuration):** key missing\n", Error(errorx.Configuration("key missing")))
	assert.Equal(t, "**Error:** boom\n", Error(errors.New("boom")))
	assert.Empty(t, Error(nil))
}
