// internal/adapter/storage/dataset_store.go

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"trendboard/internal/domain/dataset"
)

// DatasetStore reads the three JSON corpora from a local directory.
// All reads happen per call; callers layer caching on top.
type DatasetStore struct {
	dir        string
	worldFile  string
	regionFile string
	tweetsFile string
}

// NewDatasetStore creates a new dataset store over dir.
func NewDatasetStore(dir, worldFile, regionFile, tweetsFile string) *DatasetStore {
	return &DatasetStore{
		dir:        dir,
		worldFile:  worldFile,
		regionFile: regionFile,
		tweetsFile: tweetsFile,
	}
}

// Paths returns the absolute paths of the three corpus files in fixed
// order: world trends, region trends, tweets.
func (s *DatasetStore) Paths() []string {
	return []string{
		filepath.Join(s.dir, s.worldFile),
		filepath.Join(s.dir, s.regionFile),
		filepath.Join(s.dir, s.tweetsFile),
	}
}

// ReadCorpus loads and decodes all three corpora. The load is
// all-or-nothing: any missing, unreadable or unparseable file fails the
// whole read with dataset.ErrDataUnavailable.
func (s *DatasetStore) ReadCorpus(ctx context.Context) (*dataset.Corpus, error) {
	paths := s.Paths()

	raw := make([][]byte, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", dataset.ErrDataUnavailable, filepath.Base(path), err)
		}
		raw[i] = data
	}

	var world dataset.TrendDocument
	if err := json.Unmarshal(raw[0], &world); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", dataset.ErrDataUnavailable, s.worldFile, err)
	}

	var region dataset.TrendDocument
	if err := json.Unmarshal(raw[1], &region); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", dataset.ErrDataUnavailable, s.regionFile, err)
	}

	var tweets []dataset.Tweet
	if err := json.Unmarshal(raw[2], &tweets); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", dataset.ErrDataUnavailable, s.tweetsFile, err)
	}

	return &dataset.Corpus{
		WorldTrends:  world,
		RegionTrends: region,
		Tweets:       tweets,
		Fingerprint:  fingerprint(raw),
	}, nil
}

// Fingerprint hashes the current file contents without decoding them.
// Used by the snapshot cache to decide whether a reload is needed.
func (s *DatasetStore) Fingerprint(ctx context.Context) (string, error) {
	paths := s.Paths()

	raw := make([][]byte, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: reading %s: %v", dataset.ErrDataUnavailable, filepath.Base(path), err)
		}
		raw[i] = data
	}

	return fingerprint(raw), nil
}

// fingerprint hashes the raw corpus bytes in the fixed read order.
func fingerprint(raw [][]byte) string {
	h := sha256.New()
	for _, data := range raw {
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
