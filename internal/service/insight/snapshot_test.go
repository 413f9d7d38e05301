package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendboard/internal/domain/dataset"
)

// fakeReader serves a fixed corpus and counts reads.
type fakeReader struct {
	corpus      *dataset.Corpus
	err         error
	reads       int
	fingerprint int
}

func (f *fakeReader) ReadCorpus(ctx context.Context) (*dataset.Corpus, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.corpus, nil
}

func (f *fakeReader) Fingerprint(ctx context.Context) (string, error) {
	f.fingerprint++
	if f.err != nil {
		return "", f.err
	}
	return f.corpus.Fingerprint, nil
}

func fixtureCorpus(fingerprint string) *dataset.Corpus {
	return &dataset.Corpus{
		WorldTrends:  trendDoc("a", "b", "c"),
		RegionTrends: trendDoc("b", "c", "d"),
		Tweets: []dataset.Tweet{
			retweet("artist", "big tweet", "en", 5, 10, 100),
			retweet("artist", "big tweet", "en", 3, 2, 100),
			{Text: "original, not counted", Lang: "es"},
		},
		Fingerprint: fingerprint,
	}
}

func TestBuildSnapshot(t *testing.T) {
	reader := &fakeReader{corpus: fixtureCorpus("fp1")}
	analyzer := NewAnalyzer(reader)

	snapshot, err := analyzer.BuildSnapshot(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.ID)
	assert.Equal(t, "fp1", snapshot.Fingerprint)
	assert.Equal(t, []string{"b", "c"}, snapshot.Overlap.Common)
	assert.Equal(t, 2, snapshot.QualifyingTweets)
	require.Len(t, snapshot.Engagement, 1)
	assert.Equal(t, 20, snapshot.Engagement[0].TotalEngagement)
	require.Len(t, snapshot.Languages, 1)
	assert.Equal(t, 2, snapshot.Languages[0].Count)
}

func TestBuildSnapshot_Idempotent(t *testing.T) {
	reader := &fakeReader{corpus: fixtureCorpus("fp1")}
	analyzer := NewAnalyzer(reader)

	first, err := analyzer.BuildSnapshot(context.Background())
	require.NoError(t, err)
	second, err := analyzer.BuildSnapshot(context.Background())
	require.NoError(t, err)

	// Identical inputs yield identical products; only identity fields
	// differ between cycles.
	assert.Equal(t, first.Overlap, second.Overlap)
	assert.Equal(t, first.Engagement, second.Engagement)
	assert.Equal(t, first.Languages, second.Languages)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestBuildSnapshot_MalformedTrendDocument(t *testing.T) {
	corpus := fixtureCorpus("fp1")
	corpus.RegionTrends = dataset.TrendDocument{}
	analyzer := NewAnalyzer(&fakeReader{corpus: corpus})

	snapshot, err := analyzer.BuildSnapshot(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMalformedTrendDocument)
	assert.Nil(t, snapshot)
}

func TestBuildSnapshot_DataUnavailable(t *testing.T) {
	analyzer := NewAnalyzer(&fakeReader{err: dataset.ErrDataUnavailable})

	snapshot, err := analyzer.BuildSnapshot(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
	assert.Nil(t, snapshot)
}

func TestSnapshotService_Memoizes(t *testing.T) {
	reader := &fakeReader{corpus: fixtureCorpus("fp1")}
	service := NewSnapshotService(NewAnalyzer(reader), reader)

	first, err := service.Current(context.Background())
	require.NoError(t, err)
	second, err := service.Current(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reader.reads, "corpus should be decoded once while the fingerprint is unchanged")
}

func TestSnapshotService_RecomputesWhenContentChanges(t *testing.T) {
	reader := &fakeReader{corpus: fixtureCorpus("fp1")}
	service := NewSnapshotService(NewAnalyzer(reader), reader)

	first, err := service.Current(context.Background())
	require.NoError(t, err)

	reader.corpus = fixtureCorpus("fp2")

	second, err := service.Current(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "fp2", second.Fingerprint)
}

func TestSnapshotService_Invalidate(t *testing.T) {
	reader := &fakeReader{corpus: fixtureCorpus("fp1")}
	service := NewSnapshotService(NewAnalyzer(reader), reader)

	first, err := service.Current(context.Background())
	require.NoError(t, err)

	service.Invalidate()

	second, err := service.Current(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, reader.reads)
}

func TestSnapshotService_DoesNotCacheFailures(t *testing.T) {
	reader := &fakeReader{err: dataset.ErrDataUnavailable}
	service := NewSnapshotService(NewAnalyzer(reader), reader)

	_, err := service.Current(context.Background())
	require.Error(t, err)

	// Corpus becomes available; the next call must succeed.
	reader.err = nil
	reader.corpus = fixtureCorpus("fp1")

	snapshot, err := service.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fp1", snapshot.Fingerprint)
}
