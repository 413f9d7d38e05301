package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/insight"
)

func TestTrendOverlap(t *testing.T) {
	overlap := insight.TrendOverlap{
		World:      []string{"a", "b", "c"},
		Region:     []string{"b", "c", "d"},
		Common:     []string{"b", "c"},
		WorldSize:  3,
		RegionSize: 3,
		CommonSize: 2,
	}

	venn := TrendOverlap(overlap)

	assert.Equal(t, 1, venn.WorldOnly)
	assert.Equal(t, 1, venn.RegionOnly)
	assert.Equal(t, 2, venn.Common)
	assert.Equal(t, []string{"b", "c"}, venn.CommonTrends)
}

func TestEngagementScatter(t *testing.T) {
	rows := []insight.AccountEngagement{
		{ScreenName: "big", Followers: 1000, TotalRetweets: 50, TotalFavorites: 200},
		{ScreenName: "small", Followers: 10, TotalRetweets: 5, TotalFavorites: 3},
	}

	d := EngagementScatter(rows)

	assert.Equal(t, "scatter", d.Type)
	require.Len(t, d.Series, 1)
	assert.Equal(t, []string{"big", "small"}, d.Series[0].Labels)
	assert.Equal(t, []float64{50, 5}, d.Series[0].X)
	assert.Equal(t, []float64{200, 3}, d.Series[0].Y)
	assert.Equal(t, []float64{1000, 10}, d.Series[0].Sizes)
	require.NotNil(t, d.Axes)
	assert.True(t, d.Axes.XLog)
	assert.True(t, d.Axes.YLog)
}

func TestEngagementRateBar_SortsByRate(t *testing.T) {
	rows := []insight.AccountEngagement{
		{ScreenName: "huge_but_flat", Followers: 1000000, EngagementRate: 0.5},
		{ScreenName: "tiny_but_viral", Followers: 100, EngagementRate: 90.0},
	}

	d := EngagementRateBar(rows)

	assert.Equal(t, "bar", d.Type)
	require.Len(t, d.Series, 1)
	assert.Equal(t, []string{"tiny_but_viral", "huge_but_flat"}, d.Series[0].Labels)
	assert.Equal(t, []float64{90.0, 0.5}, d.Series[0].Y)
	// Input order is untouched.
	assert.Equal(t, "huge_but_flat", rows[0].ScreenName)
}

func TestLanguageMap_KeepsOnlyMappedLanguages(t *testing.T) {
	counts := []insight.LanguageCount{
		{Lang: "en", Count: 1820},
		{Lang: "und", Count: 1048},
		{Lang: "es", Count: 530},
		{Lang: "xx", Count: 2},
	}

	d := LanguageMap(counts)

	assert.Equal(t, "choropleth", d.Type)
	require.Len(t, d.Series, 1)
	// und and unknown codes have no single country and are omitted.
	assert.Equal(t, []string{"en", "es"}, d.Series[0].Labels)
	assert.Equal(t, []string{"USA", "Spain"}, d.Series[0].Locations)
	assert.Equal(t, []float64{1820, 530}, d.Series[0].Values)
}

func TestLanguageBar_IncludesUndetermined(t *testing.T) {
	counts := []insight.LanguageCount{
		{Lang: "en", Count: 1820},
		{Lang: "und", Count: 1048},
	}

	d := LanguageBar(counts)

	require.Len(t, d.Series, 1)
	assert.Equal(t, []string{"en", "und"}, d.Series[0].Labels)
	assert.Equal(t, []float64{1820, 1048}, d.Series[0].Y)
}
