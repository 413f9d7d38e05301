package insight

import (
	"context"
	"log"
	"sync"

	"trendboard/internal/domain/insight"
)

// SnapshotService memoizes the result of a full load cycle for the
// process lifetime. The cached snapshot is reused until the corpus
// fingerprint changes or Invalidate is called; load failures are never
// cached.
type SnapshotService struct {
	analyzer *Analyzer
	reader   CorpusReader

	mu      sync.Mutex
	current *insight.Snapshot
}

// NewSnapshotService creates a snapshot service over analyzer and its
// corpus reader.
func NewSnapshotService(analyzer *Analyzer, reader CorpusReader) *SnapshotService {
	return &SnapshotService{
		analyzer: analyzer,
		reader:   reader,
	}
}

// Current returns the memoized snapshot, rebuilding it when none is
// cached, when the service was invalidated, or when the corpus content
// changed on disk since the cached build.
func (s *SnapshotService) Current(ctx context.Context) (*insight.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		fp, err := s.reader.Fingerprint(ctx)
		if err == nil && fp == s.current.Fingerprint {
			return s.current, nil
		}
	}

	snapshot, err := s.analyzer.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("Snapshot %s built (fingerprint %.12s, %d qualifying tweets)",
		snapshot.ID, snapshot.Fingerprint, snapshot.QualifyingTweets)

	s.current = snapshot
	return s.current, nil
}

// Invalidate drops the memoized snapshot. The next Current call will
// reload and recompute.
func (s *SnapshotService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
