package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

const summaryBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

// thumbSizeRe matches the pixel-width segment of a Wikipedia thumbnail URL.
var thumbSizeRe = regexp.MustCompile(`/\d+px-`)

// Client looks up hero portraits via the Wikipedia REST summary API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: summaryBaseURL}
}

type summaryResponse struct {
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// FindPortrait returns a portrait URL for the hero, upscaled to 800px, or
// an empty string when the page or its thumbnail does not exist.
func (c *Client) FindPortrait(ctx context.Context, heroName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(heroName), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var payload summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode wikipedia summary: %w", err)
	}
	if payload.Thumbnail.Source == "" {
		return "", nil
	}
	return thumbSizeRe.ReplaceAllString(payload.Thumbnail.Source, "/800px-"), nil
}
