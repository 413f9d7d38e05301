package insight

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"trendboard/internal/domain/dataset"
	"trendboard/internal/domain/insight"
)

// CorpusReader loads the three corpora from their backing store.
type CorpusReader interface {
	ReadCorpus(ctx context.Context) (*dataset.Corpus, error)
	Fingerprint(ctx context.Context) (string, error)
}

// Analyzer derives the dashboard's data products from a corpus. All
// derivations are pure functions of their inputs; the analyzer itself
// holds no state beyond its reader.
type Analyzer struct {
	reader CorpusReader
}

// NewAnalyzer creates a new analyzer over reader.
func NewAnalyzer(reader CorpusReader) *Analyzer {
	return &Analyzer{
		reader: reader,
	}
}

// BuildSnapshot performs one full load cycle: read the three corpora
// and derive the five data products. All-or-nothing: any load or shape
// error yields no snapshot.
func (a *Analyzer) BuildSnapshot(ctx context.Context) (*insight.Snapshot, error) {
	corpus, err := a.reader.ReadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	world, err := ExtractTrendSet(corpus.WorldTrends)
	if err != nil {
		return nil, fmt.Errorf("world trends: %w", err)
	}

	region, err := ExtractTrendSet(corpus.RegionTrends)
	if err != nil {
		return nil, fmt.Errorf("region trends: %w", err)
	}

	rows := CollectRetweets(corpus.Tweets)

	return &insight.Snapshot{
		ID:               uuid.New().String(),
		LoadedAt:         time.Now(),
		Fingerprint:      corpus.Fingerprint,
		Overlap:          BuildTrendOverlap(world, region),
		Engagement:       AggregateEngagement(rows),
		Languages:        CountLanguages(rows),
		QualifyingTweets: len(rows),
	}, nil
}

// ExtractTrendSet pulls the name set out of a trend document. The
// document must be a non-empty top-level array whose first element
// carries the trend list.
func ExtractTrendSet(doc dataset.TrendDocument) (map[string]struct{}, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty top-level sequence", dataset.ErrMalformedTrendDocument)
	}
	if doc[0].Trends == nil {
		return nil, fmt.Errorf("%w: first element has no trends key", dataset.ErrMalformedTrendDocument)
	}

	set := make(map[string]struct{}, len(doc[0].Trends))
	for _, t := range doc[0].Trends {
		set[t.Name] = struct{}{}
	}
	return set, nil
}

// BuildTrendOverlap intersects the world and region trend sets. Output
// slices are sorted so identical inputs serialize identically.
func BuildTrendOverlap(world, region map[string]struct{}) insight.TrendOverlap {
	common := make([]string, 0)
	for name := range world {
		if _, ok := region[name]; ok {
			common = append(common, name)
		}
	}

	overlap := insight.TrendOverlap{
		World:      sortedNames(world),
		Region:     sortedNames(region),
		Common:     common,
		WorldSize:  len(world),
		RegionSize: len(region),
		CommonSize: len(common),
	}
	sort.Strings(overlap.Common)
	return overlap
}

// CollectRetweets filters the tweet corpus down to qualifying records:
// tweets carrying a reshared original. Non-retweets are skipped on
// purpose; the dashboard reports retweet activity only. Corpus order
// is preserved.
func CollectRetweets(tweets []dataset.Tweet) []insight.EngagementRow {
	rows := make([]insight.EngagementRow, 0, len(tweets))
	for _, t := range tweets {
		if !t.IsRetweet() {
			continue
		}
		rows = append(rows, insight.EngagementRow{
			Retweets:   t.RetweetCount,
			Favorites:  t.RetweetedStatus.FavoriteCount,
			Followers:  t.RetweetedStatus.User.FollowersCount,
			ScreenName: t.RetweetedStatus.User.ScreenName,
			Text:       t.Text,
			Lang:       t.Lang,
		})
	}
	return rows
}

// groupKey identifies one original tweet: a given account+text+follower
// triple is assumed to name exactly one original.
type groupKey struct {
	ScreenName string
	Text       string
	Followers  int
}

// AggregateEngagement groups rows by (ScreenName, Text, Followers),
// sums retweets and favorites per group, and computes the engagement
// totals and the follower-normalized rate. Groups with a non-positive
// follower count are excluded: the rate is undefined for them and no
// infinite or NaN value may reach the rendered table. The result is
// sorted by Followers descending; equal follower counts keep
// first-seen order.
func AggregateEngagement(rows []insight.EngagementRow) []insight.AccountEngagement {
	index := make(map[groupKey]int)
	agg := make([]insight.AccountEngagement, 0)

	for _, row := range rows {
		key := groupKey{ScreenName: row.ScreenName, Text: row.Text, Followers: row.Followers}
		i, ok := index[key]
		if !ok {
			i = len(agg)
			index[key] = i
			agg = append(agg, insight.AccountEngagement{
				ScreenName: row.ScreenName,
				Text:       row.Text,
				Followers:  row.Followers,
			})
		}
		agg[i].TotalRetweets += row.Retweets
		agg[i].TotalFavorites += row.Favorites
	}

	out := make([]insight.AccountEngagement, 0, len(agg))
	for _, row := range agg {
		if row.Followers <= 0 {
			continue
		}
		row.TotalEngagement = row.TotalRetweets + row.TotalFavorites
		row.EngagementRate = float64(row.TotalEngagement) / float64(row.Followers) * 100
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Followers > out[j].Followers
	})
	return out
}

// CountLanguages tallies language codes across all qualifying rows,
// including those excluded from the aggregate table. Counts are sorted
// descending; equal counts keep first-encountered order.
func CountLanguages(rows []insight.EngagementRow) []insight.LanguageCount {
	index := make(map[string]int)
	counts := make([]insight.LanguageCount, 0)

	for _, row := range rows {
		i, ok := index[row.Lang]
		if !ok {
			i = len(counts)
			index[row.Lang] = i
			counts = append(counts, insight.LanguageCount{Lang: row.Lang})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
