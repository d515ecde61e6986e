package minimax

import (
	"context"
	"strings"

	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
)

// SearchRequest is the body of the search endpoint.
type SearchRequest struct {
	Query string `json:"q"`
}

// OrganicResult is a single web result.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

// RelatedSearch is a suggested follow-up query.
type RelatedSearch struct {
	Query string `json:"query"`
}

// SearchResponse is the decoded search endpoint response.
type SearchResponse struct {
	Organic         []OrganicResult `json:"organic"`
	RelatedSearches []RelatedSearch `json:"related_searches"`
	BaseResp        BaseResp        `json:"base_resp"`
}

func (r *SearchResponse) envelope() BaseResp { return r.BaseResp }

// Search runs a web search for query.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errorx.InvalidInput("search query must not be empty")
	}

	var resp SearchResponse
	if err := c.post(ctx, searchPath, SearchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
