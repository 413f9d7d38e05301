package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	calls atomic.Int64
}

func (c *countingInvalidator) Invalidate() { c.calls.Add(1) }

type countingNotifier struct {
	events atomic.Int64
}

func (c *countingNotifier) Broadcast(event string) { c.events.Add(1) }

func TestRelevant(t *testing.T) {
	w := NewWatcher(WatcherConfig{
		Dir:   "data",
		Files: []string{"WWTrends.json", "USTrends.json"},
	}, nil, nil)

	assert.True(t, w.relevant(fsnotify.Event{
		Name: filepath.Join("data", "WWTrends.json"),
		Op:   fsnotify.Write,
	}))
	assert.True(t, w.relevant(fsnotify.Event{
		Name: filepath.Join("data", "USTrends.json"),
		Op:   fsnotify.Rename,
	}))
	assert.False(t, w.relevant(fsnotify.Event{
		Name: filepath.Join("data", "unrelated.json"),
		Op:   fsnotify.Write,
	}), "events on other files are ignored")
	assert.False(t, w.relevant(fsnotify.Event{
		Name: filepath.Join("data", "WWTrends.json"),
		Op:   fsnotify.Chmod,
	}), "chmod does not change content")
}

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "WWTrends.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	invalidator := &countingInvalidator{}
	notifier := &countingNotifier{}
	w := NewWatcher(WatcherConfig{
		Dir:      dir,
		Files:    []string{"WWTrends.json"},
		Debounce: 20 * time.Millisecond,
	}, invalidator, notifier)

	require.NoError(t, w.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		w.Stop(ctx)
	}()

	require.NoError(t, os.WriteFile(path, []byte(`[{"trends": []}]`), 0o644))

	assert.Eventually(t, func() bool {
		return invalidator.calls.Load() >= 1 && notifier.events.Load() >= 1
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "WWTrends.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	invalidator := &countingInvalidator{}
	w := NewWatcher(WatcherConfig{
		Dir:      dir,
		Files:    []string{"WWTrends.json"},
		Debounce: 150 * time.Millisecond,
	}, invalidator, nil)

	require.NoError(t, w.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		w.Stop(ctx)
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return invalidator.calls.Load() == 1
	}, 3*time.Second, 20*time.Millisecond)

	// The burst collapses to one invalidation.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int64(1), invalidator.calls.Load())
}
