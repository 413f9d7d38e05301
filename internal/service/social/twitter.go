package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ErrNotConfigured indicates no bearer token is available, so the
// refresher cannot reach the Twitter API.
var ErrNotConfigured = errors.New("twitter bearer token not configured")

// Client is a bearer-token client for the Twitter v1.1 REST API. It is
// used only to regenerate the local corpus files; the dashboard itself
// never reads from the network.
type Client struct {
	BearerToken string
	BaseURL     string
	HTTPClient  *http.Client
}

// ClientConfig contains configuration for the Twitter client.
type ClientConfig struct {
	BearerToken string
	BaseURL     string
	Timeout     time.Duration
}

// NewClient creates a new Twitter API client.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.twitter.com/1.1"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		BearerToken: config.BearerToken,
		BaseURL:     config.BaseURL,
		HTTPClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Configured reports whether the client has a bearer token.
func (c *Client) Configured() bool {
	return c.BearerToken != ""
}

// FetchTrends fetches the raw trends/place document for a location.
// Defaults to worldwide (woeid 1). The response body is returned
// verbatim so the corpus file keeps the exact envelope shape.
func (c *Client) FetchTrends(ctx context.Context, woeid string) ([]byte, error) {
	if woeid == "" {
		woeid = "1"
	}
	return c.get(ctx, fmt.Sprintf("%s/trends/place.json?id=%s", c.BaseURL, woeid))
}

// SearchTweets fetches recent tweets matching query and returns the
// statuses array as raw JSON, which is the tweet-corpus shape.
func (c *Client) SearchTweets(ctx context.Context, query string, count int) ([]byte, error) {
	if count <= 0 {
		count = 100
	}

	endpoint := fmt.Sprintf("%s/search/tweets.json?q=%s&count=%d&result_type=recent",
		c.BaseURL, url.QueryEscape(query), count)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Statuses json.RawMessage `json:"statuses"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if envelope.Statuses == nil {
		return nil, fmt.Errorf("search response has no statuses")
	}

	return envelope.Statuses, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+c.BearerToken)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter API returned status code %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// RefresherConfig contains configuration for the dataset refresher.
type RefresherConfig struct {
	// WorldWoeID and RegionWoeID select the two trend locations.
	WorldWoeID  string
	RegionWoeID string

	// Query is the campaign search query for the tweet corpus.
	Query string

	// SearchCount caps the number of tweets fetched per refresh.
	SearchCount int
}

// Invalidator drops a cached snapshot after the corpus files change.
type Invalidator interface {
	Invalidate()
}

// Refresher regenerates the three corpus files from the Twitter API
// and invalidates the snapshot so the next request recomputes.
type Refresher struct {
	client      *Client
	config      RefresherConfig
	invalidator Invalidator

	worldPath  string
	regionPath string
	tweetsPath string
}

// NewRefresher creates a dataset refresher writing to the given paths
// (world trends, region trends, tweets — the store's fixed order).
func NewRefresher(client *Client, config RefresherConfig, paths []string, invalidator Invalidator) *Refresher {
	return &Refresher{
		client:      client,
		config:      config,
		invalidator: invalidator,
		worldPath:   paths[0],
		regionPath:  paths[1],
		tweetsPath:  paths[2],
	}
}

// Refresh fetches all three corpora and replaces the local files.
// All three fetches must succeed before any file is touched; each file
// is then replaced atomically (temp file + rename).
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.client.Configured() {
		return ErrNotConfigured
	}

	world, err := r.client.FetchTrends(ctx, r.config.WorldWoeID)
	if err != nil {
		return fmt.Errorf("fetching world trends: %w", err)
	}

	region, err := r.client.FetchTrends(ctx, r.config.RegionWoeID)
	if err != nil {
		return fmt.Errorf("fetching region trends: %w", err)
	}

	tweets, err := r.client.SearchTweets(ctx, r.config.Query, r.config.SearchCount)
	if err != nil {
		return fmt.Errorf("searching tweets: %w", err)
	}

	files := []struct {
		path string
		data []byte
	}{
		{r.worldPath, world},
		{r.regionPath, region},
		{r.tweetsPath, tweets},
	}
	for _, f := range files {
		if err := writeFileAtomic(f.path, f.data); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(f.path), err)
		}
	}

	if r.invalidator != nil {
		r.invalidator.Invalidate()
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
