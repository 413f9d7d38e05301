package dataset

import (
	"errors"
	"time"
)

// Sentinel errors for corpus loading. Both are terminal for a load
// cycle: callers must not render any product when either is returned.
var (
	// ErrDataUnavailable indicates a corpus file is missing, unreadable
	// or not valid JSON.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrMalformedTrendDocument indicates a trend corpus parsed as JSON
	// but lacks the expected envelope shape.
	ErrMalformedTrendDocument = errors.New("malformed trend document")
)

// Trend is one trending-topic entry inside a trend document.
type Trend struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Query       string `json:"query"`
	TweetVolume int    `json:"tweet_volume"`
}

// TrendDocument is the envelope returned by the trends/place endpoint:
// a top-level array whose first element carries the trend list.
type TrendDocument []struct {
	Trends    []Trend   `json:"trends"`
	AsOf      time.Time `json:"as_of"`
	CreatedAt time.Time `json:"created_at"`
	Locations []struct {
		Name  string `json:"name"`
		WoeID int    `json:"woeid"`
	} `json:"locations"`
}

// User is the subset of a tweet author consumed by the dashboard.
type User struct {
	ScreenName     string `json:"screen_name"`
	FollowersCount int    `json:"followers_count"`
}

// RetweetedStatus is the reshared original tweet nested inside a
// retweet record.
type RetweetedStatus struct {
	FavoriteCount int  `json:"favorite_count"`
	User          User `json:"user"`
}

// Tweet is one entry of the campaign tweet corpus. A tweet qualifies
// for engagement analysis iff RetweetedStatus is present.
type Tweet struct {
	Text            string           `json:"text"`
	Lang            string           `json:"lang"`
	RetweetCount    int              `json:"retweet_count"`
	RetweetedStatus *RetweetedStatus `json:"retweeted_status"`
}

// IsRetweet reports whether the tweet carries a reshared original.
func (t Tweet) IsRetweet() bool {
	return t.RetweetedStatus != nil
}

// Corpus bundles the three decoded source documents of one load cycle.
type Corpus struct {
	WorldTrends  TrendDocument
	RegionTrends TrendDocument
	Tweets       []Tweet

	// Fingerprint is a content hash over the raw bytes of the three
	// files in fixed order. Identical inputs yield identical values.
	Fingerprint string
}
