// Package render turns MiniMax responses into markdown for the host.
package render

import (
	"fmt"
	"strings"

	"github.com/bytedance/gg/gslice"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/minimax"
	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
)

const noResults = "No results found."

// Search renders at most limit organic results followed by related searches.
// A non-positive limit renders every result.
func Search(query string, resp *minimax.SearchResponse, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Search Results: %s\n\n", query)

	organic := Limit(resp, limit)
	if len(organic) == 0 {
		b.WriteString(noResults)
		b.WriteString("\n")
	}

	for i, r := range organic {
		title := r.Title
		if title == "" {
			title = r.Link
		}
		fmt.Fprintf(&b, "### %d. [%s](%s)\n\n", i+1, title, r.Link)
		if r.Snippet != "" {
			b.WriteString(r.Snippet)
			b.WriteString("\n\n")
		}
		if r.Date != "" {
			fmt.Fprintf(&b, "*Date: %s*\n\n", r.Date)
		}
	}

	related := RelatedQueries(resp)
	if len(related) > 0 {
		b.WriteString("### Related Searches\n\n")
		for _, q := range related {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Limit returns the first limit organic results. A nil response yields none.
func Limit(resp *minimax.SearchResponse, limit int) []minimax.OrganicResult {
	if resp == nil {
		return nil
	}
	if limit <= 0 || limit >= len(resp.Organic) {
		return resp.Organic
	}
	return resp.Organic[:limit]
}

// RelatedQueries returns the non-empty related search queries.
func RelatedQueries(resp *minimax.SearchResponse) []string {
	if resp == nil {
		return nil
	}
	queries := gslice.Map(resp.RelatedSearches, func(r minimax.RelatedSearch) string {
		return strings.TrimSpace(r.Query)
	})
	return gslice.Filter(queries, func(q string) bool { return q != "" })
}

// Vision renders a vision model answer.
func Vision(resp *minimax.VLMResponse) string {
	content := ""
	if resp != nil {
		content = strings.TrimSpace(resp.Content)
	}
	if content == "" {
		content = "_The model returned no description._"
	}
	return "## Image Analysis\n\n" + content + "\n"
}

// Error renders err for display to the user.
func Error(err error) string {
	if err == nil {
		return ""
	}
	kind := errorx.KindOf(err)
	if kind == errorx.KindUnknown {
		return fmt.Sprintf("**Error:** %s\n", err.Error())
	}
	return fmt.Sprintf("**Error (%s):** %s\n", kind, err.Error())
}
