package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// VideoTitle looks up a video's title via the oEmbed endpoint. Title lookup
// is cosmetic; callers treat a failure as non-fatal.
func (c *Client) VideoTitle(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("url", defaultBaseURL+"/watch?v="+videoID)

	body, err := c.get(ctx, c.baseURL+"/oembed?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("fetch oembed: %w", err)
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return "", fmt.Errorf("decode oembed: %w", err)
	}
	if payload.Title == "" {
		return "", fmt.Errorf("oembed response has no title")
	}
	return payload.Title, nil
}
