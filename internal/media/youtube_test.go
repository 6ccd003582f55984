package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/weathertrack/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYouTubeService_Search_NoAPIKey(t *testing.T) {
	svc := NewYouTubeService(upstream.NewClient("youtube", time.Second, "test"), "")

	data, err := svc.Search(context.Background(), "storm timelapse")
	require.NoError(t, err)

	var resp DisabledResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Empty(t, resp.Items)
	assert.Contains(t, resp.Note, "YOUTUBE_API_KEY")
}

func TestYouTubeService_Search_Passthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "aurora", r.URL.Query().Get("q"))
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "6", r.URL.Query().Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":{"videoId":"abc"}}]}`))
	}))
	defer srv.Close()

	svc := NewYouTubeService(upstream.NewClient("youtube", time.Second, "test"), "secret")
	svc.baseURL = srv.URL

	data, err := svc.Search(context.Background(), "aurora")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":{"videoId":"abc"}}]}`, string(data))
}
