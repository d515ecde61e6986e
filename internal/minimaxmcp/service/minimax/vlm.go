package minimax

import (
	"context"
	"strings"

	"github.com/joshleblanc/pi-minimax/internal/pkg/errorx"
)

// VLMRequest is the body of the vision endpoint. ImageURL must be a data URL.
type VLMRequest struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

// VLMResponse is the decoded vision endpoint response.
type VLMResponse struct {
	Content  string   `json:"content"`
	BaseResp BaseResp `json:"base_resp"`
}

func (r *VLMResponse) envelope() BaseResp { return r.BaseResp }

// UnderstandImage asks the vision model about an already-normalized image.
func (c *Client) UnderstandImage(ctx context.Context, imageURL, prompt string) (*VLMResponse, error) {
	if !strings.HasPrefix(imageURL, "data:") {
		return nil, errorx.InvalidInput("image must be a data URL, got %q", truncate(imageURL, 32))
	}

	var resp VLMResponse
	if err := c.post(ctx, vlmPath, VLMRequest{ImageURL: imageURL, Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
