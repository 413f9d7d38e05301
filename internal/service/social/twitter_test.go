package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	trendsBody = `[{"trends": [{"name": "#WeLoveTheEarth", "tweet_volume": 1000}], "as_of": "2019-04-24T09:36:54Z"}]`
	searchBody = `{"statuses": [{"text": "RT @artist: earth", "lang": "en", "retweet_count": 5}], "search_metadata": {}}`
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/trends/place.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(trendsBody))
	})
	mux.HandleFunc("/search/tweets.json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(searchBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchTrends(t *testing.T) {
	api := newTestAPI(t)
	client := NewClient(ClientConfig{BearerToken: "token", BaseURL: api.URL})

	body, err := client.FetchTrends(context.Background(), "1")
	require.NoError(t, err)
	assert.JSONEq(t, trendsBody, string(body))
}

func TestClient_SearchTweets_UnwrapsStatuses(t *testing.T) {
	api := newTestAPI(t)
	client := NewClient(ClientConfig{BearerToken: "token", BaseURL: api.URL})

	body, err := client.SearchTweets(context.Background(), "#WeLoveTheEarth", 10)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text": "RT @artist: earth", "lang": "en", "retweet_count": 5}]`, string(body))
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(ClientConfig{})

	_, err := client.FetchTrends(context.Background(), "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_APIError(t *testing.T) {
	api := newTestAPI(t)
	client := NewClient(ClientConfig{BearerToken: "wrong", BaseURL: api.URL})

	_, err := client.FetchTrends(context.Background(), "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate() { f.calls++ }

func TestRefresher_WritesAllThreeFiles(t *testing.T) {
	api := newTestAPI(t)
	client := NewClient(ClientConfig{BearerToken: "token", BaseURL: api.URL})

	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "WWTrends.json"),
		filepath.Join(dir, "USTrends.json"),
		filepath.Join(dir, "WeLoveTheEarth.json"),
	}
	invalidator := &fakeInvalidator{}
	refresher := NewRefresher(client, RefresherConfig{
		WorldWoeID:  "1",
		RegionWoeID: "23424977",
		Query:       "#WeLoveTheEarth",
		SearchCount: 10,
	}, paths, invalidator)

	require.NoError(t, refresher.Refresh(context.Background()))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	assert.Equal(t, 1, invalidator.calls)
}

func TestRefresher_NotConfigured(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "w.json"),
		filepath.Join(dir, "r.json"),
		filepath.Join(dir, "t.json"),
	}
	refresher := NewRefresher(NewClient(ClientConfig{}), RefresherConfig{}, paths, nil)

	err := refresher.Refresh(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)

	// No file is touched when the client cannot fetch.
	for _, path := range paths {
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	}
}
