package insight

import (
	"time"
)

// TrendOverlap holds the world and region trend sets plus their
// intersection, each sorted lexicographically for deterministic output.
type TrendOverlap struct {
	World  []string `json:"world"`
	Region []string `json:"region"`
	Common []string `json:"common"`

	WorldSize  int `json:"world_size"`
	RegionSize int `json:"region_size"`
	CommonSize int `json:"common_size"`
}

// EngagementRow is one qualifying retweet record, pre-aggregation.
type EngagementRow struct {
	Retweets   int    `json:"retweets"`
	Favorites  int    `json:"favorites"`
	Followers  int    `json:"followers"`
	ScreenName string `json:"screen_name"`
	Text       string `json:"text"`
	Lang       string `json:"lang"`
}

// AccountEngagement is one aggregated row of the engagement table,
// grouped by (ScreenName, Text, Followers).
type AccountEngagement struct {
	ScreenName      string  `json:"screen_name"`
	Text            string  `json:"text"`
	Followers       int     `json:"followers"`
	TotalRetweets   int     `json:"total_retweets"`
	TotalFavorites  int     `json:"total_favorites"`
	TotalEngagement int     `json:"total_engagement"`
	EngagementRate  float64 `json:"engagement_rate"`
}

// LanguageCount is one row of the language-frequency table.
type LanguageCount struct {
	Lang  string `json:"lang"`
	Count int    `json:"count"`
}

// Snapshot is the immutable result of one full load cycle: the five
// derived data products plus identity and provenance. Snapshots are
// never mutated after creation; a new load produces a new snapshot.
type Snapshot struct {
	ID          string    `json:"id"`
	LoadedAt    time.Time `json:"loaded_at"`
	Fingerprint string    `json:"fingerprint"`

	Overlap    TrendOverlap        `json:"overlap"`
	Engagement []AccountEngagement `json:"engagement"`
	Languages  []LanguageCount     `json:"languages"`

	// QualifyingTweets is the number of retweet records that fed the
	// engagement and language tables.
	QualifyingTweets int `json:"qualifying_tweets"`
}

// Meta is the lightweight snapshot summary served by the API.
type Meta struct {
	ID               string    `json:"id"`
	LoadedAt         time.Time `json:"loaded_at"`
	Fingerprint      string    `json:"fingerprint"`
	WorldTrends      int       `json:"world_trends"`
	RegionTrends     int       `json:"region_trends"`
	CommonTrends     int       `json:"common_trends"`
	Accounts         int       `json:"accounts"`
	Languages        int       `json:"languages"`
	QualifyingTweets int       `json:"qualifying_tweets"`
}

// Meta derives the summary view of a snapshot.
func (s *Snapshot) Meta() Meta {
	return Meta{
		ID:               s.ID,
		LoadedAt:         s.LoadedAt,
		Fingerprint:      s.Fingerprint,
		WorldTrends:      s.Overlap.WorldSize,
		RegionTrends:     s.Overlap.RegionSize,
		CommonTrends:     s.Overlap.CommonSize,
		Accounts:         len(s.Engagement),
		Languages:        len(s.Languages),
		QualifyingTweets: s.QualifyingTweets,
	}
}
