package media

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/alexivanou/weathertrack/internal/upstream"
)

const defaultSearchURL = "https://www.googleapis.com/youtube/v3/search"

// DisabledResponse is returned when no API key is configured. The endpoint
// stays functional so a client can probe it without failing.
type DisabledResponse struct {
	Items []json.RawMessage `json:"items"`
	Note  string            `json:"note"`
}

// VideoSearcher finds weather-related videos for a query string.
type VideoSearcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// YouTubeService proxies search requests to the YouTube Data API. The
// upstream response body is passed through unchanged.
type YouTubeService struct {
	client  *upstream.Client
	apiKey  string
	baseURL string
}

func NewYouTubeService(client *upstream.Client, apiKey string) *YouTubeService {
	return &YouTubeService{
		client:  client,
		apiKey:  apiKey,
		baseURL: defaultSearchURL,
	}
}

func (s *YouTubeService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return json.Marshal(DisabledResponse{
			Items: []json.RawMessage{},
			Note:  "Set YOUTUBE_API_KEY to enable",
		})
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("maxResults", "6")
	params.Set("type", "video")
	params.Set("safeSearch", "moderate")

	return s.client.GetRaw(ctx, s.baseURL, params)
}
